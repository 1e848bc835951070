// internal/system/combat.go
package system

import (
	"math"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

// CombatSystem управляет атакой башен
type CombatSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	status          *StatusEffectSystem
}

func NewCombatSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher, status *StatusEffectSystem) *CombatSystem {
	return &CombatSystem{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
		status:          status,
	}
}

func (s *CombatSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Combats) {
		combat, ok := s.ecs.Combats[id]
		if !ok {
			continue
		}
		tower, ok := s.ecs.Towers[id]
		if !ok {
			continue
		}
		if combat.FireCooldown > 0 {
			combat.FireCooldown -= deltaTime
		}
		if up, busy := s.ecs.Upgrades[id]; busy && up.Mode == component.UpgradeMorph {
			continue // башня в процессе слияния не стреляет
		}
		if combat.FireCooldown > 0 {
			continue
		}

		stats := tower.Stats()
		if stats.Damage <= 0 || stats.FireRate <= 0 {
			continue
		}
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		target := s.nearestEnemy(pos.Vec2, stats.Range)
		if target == 0 {
			combat.FireCooldown = 0
			continue
		}
		s.fire(id, pos.Vec2, target, stats)
		combat.FireCooldown = 1 / stats.FireRate
	}
}

// nearestEnemy returns the closest active enemy within r. Ties go to the lower ID.
func (s *CombatSystem) nearestEnemy(from grid.Vec2, r float64) types.EntityID {
	var best types.EntityID
	bestDist := math.Inf(1)
	for _, id := range entity.SortedIDs(s.ecs.Enemies) {
		if !s.ecs.Enemies[id].Active() {
			continue
		}
		pos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		if d := from.Dist(pos.Vec2); d <= r && d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}

// fire resolves one shot according to the attack style.
func (s *CombatSystem) fire(towerID types.EntityID, from grid.Vec2, target types.EntityID, stats defs.CombatStats) {
	switch stats.Style {
	case defs.StyleBeam:
		strike(s.ecs, s.eventDispatcher, s.status, towerID, target, stats)
	case defs.StyleCone:
		for _, id := range s.inCone(from, target, stats) {
			strike(s.ecs, s.eventDispatcher, s.status, towerID, id, stats)
		}
	case defs.StyleAura, defs.StyleWall:
		for _, id := range s.inRange(from, stats.Range) {
			strike(s.ecs, s.eventDispatcher, s.status, towerID, id, stats)
		}
	default:
		if stats.Instant {
			strike(s.ecs, s.eventDispatcher, s.status, towerID, target, stats)
			return
		}
		s.launch(towerID, from, target, stats)
	}
}

// inRange lists active enemies within r at the moment of firing.
func (s *CombatSystem) inRange(from grid.Vec2, r float64) []types.EntityID {
	var out []types.EntityID
	for _, id := range entity.SortedIDs(s.ecs.Enemies) {
		if !s.ecs.Enemies[id].Active() {
			continue
		}
		if pos, ok := s.ecs.Positions[id]; ok && from.Dist(pos.Vec2) <= r {
			out = append(out, id)
		}
	}
	return out
}

// inCone lists enemies in range whose bearing is within half the cone angle of
// the target's bearing. Without a cone angle only the target is hit.
func (s *CombatSystem) inCone(from grid.Vec2, target types.EntityID, stats defs.CombatStats) []types.EntityID {
	targetPos, ok := s.ecs.Positions[target]
	if !ok {
		return nil
	}
	if stats.ConeAngle <= 0 {
		return []types.EntityID{target}
	}
	half := stats.ConeAngle * math.Pi / 360
	bearing := targetPos.Sub(from)

	var out []types.EntityID
	for _, id := range s.inRange(from, stats.Range) {
		if id == target {
			out = append(out, id)
			continue
		}
		offset := s.ecs.Positions[id].Sub(from)
		if offset.Len() == 0 || angleBetween(bearing, offset) <= half {
			out = append(out, id)
		}
	}
	return out
}

func angleBetween(a, b grid.Vec2) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := (a.X*b.X + a.Y*b.Y) / (la * lb)
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}

// launch создаёт самонаводящийся снаряд.
func (s *CombatSystem) launch(towerID types.EntityID, from grid.Vec2, target types.EntityID, stats defs.CombatStats) {
	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &component.Position{Vec2: from}
	s.ecs.Projectiles[id] = &component.Projectile{
		Source:       towerID,
		Target:       target,
		Speed:        stats.ProjectileSpeed,
		Damage:       stats.Damage,
		Style:        stats.Style,
		SlowPercent:  stats.SlowPercent,
		SlowDuration: stats.SlowDuration,
	}
}
