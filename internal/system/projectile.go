// internal/system/projectile.go
package system

import (
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
)

// ProjectileSystem управляет движением снарядов и нанесением урона
type ProjectileSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	status          *StatusEffectSystem
}

func NewProjectileSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, status *StatusEffectSystem) *ProjectileSystem {
	return &ProjectileSystem{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
		status:          status,
	}
}

func (s *ProjectileSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Projectiles) {
		proj := s.ecs.Projectiles[id]
		pos, ok := s.ecs.Positions[id]
		if !ok {
			s.ecs.RemoveProjectile(id)
			continue
		}

		// Цель пропала: снаряд исчезает без урона.
		if _, alive := s.ecs.Enemies[proj.Target]; !alive {
			s.ecs.RemoveProjectile(id)
			continue
		}
		targetPos, ok := s.ecs.Positions[proj.Target]
		if !ok {
			s.ecs.RemoveProjectile(id)
			continue
		}

		step := proj.Speed * deltaTime
		dist := pos.Dist(targetPos.Vec2)
		if dist <= step || dist <= config.ProjectileHitRadius {
			s.ecs.RemoveProjectile(id)
			strike(s.ecs, s.eventDispatcher, s.status, proj.Source, proj.Target, defs.CombatStats{
				Style:        proj.Style,
				Damage:       proj.Damage,
				SlowPercent:  proj.SlowPercent,
				SlowDuration: proj.SlowDuration,
			})
			continue
		}
		pos.Vec2 = pos.Add(targetPos.Sub(pos.Vec2).Scale(step / dist))
	}
}
