// internal/system/status_effect.go
package system

import (
	"go-lane-defense/internal/component"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/utils"
)

// StatusEffectSystem управляет жизненным циклом эффектов, таких как замедление.
type StatusEffectSystem struct {
	ecs *entity.ECS
}

func NewStatusEffectSystem(ecs *entity.ECS) *StatusEffectSystem {
	return &StatusEffectSystem{ecs: ecs}
}

// ApplySlow slows an enemy by percent (0..1) for duration seconds, scaled by the
// enemy's slow effectiveness. Slows never stack: the strongest multiplier wins
// and the remaining time becomes the longer of the two.
func (s *StatusEffectSystem) ApplySlow(id types.EntityID, percent, duration float64) bool {
	enemy, ok := s.ecs.Enemies[id]
	if !ok || percent <= 0 || duration <= 0 {
		return false
	}
	effective := utils.Clamp(percent*enemy.Type.SlowFactor(), 0, 1)
	if effective <= 0 {
		return false
	}
	multiplier := 1 - effective

	effect, ok := s.ecs.SlowEffects[id]
	if !ok {
		s.ecs.SlowEffects[id] = &component.SlowEffect{Multiplier: multiplier, Remaining: duration}
		return true
	}
	if multiplier < effect.Multiplier {
		effect.Multiplier = multiplier
	}
	if duration > effect.Remaining {
		effect.Remaining = duration
	}
	return true
}

// Decay ticks the slow on one enemy. An expired slow is removed, which puts the
// multiplier back to 1.
func (s *StatusEffectSystem) Decay(id types.EntityID, deltaTime float64) {
	effect, ok := s.ecs.SlowEffects[id]
	if !ok {
		return
	}
	effect.Remaining -= deltaTime
	if effect.Remaining <= 0 {
		delete(s.ecs.SlowEffects, id)
	}
}

// SpeedMultiplier returns the current slow multiplier, 1 when unslowed.
func (s *StatusEffectSystem) SpeedMultiplier(id types.EntityID) float64 {
	if effect, ok := s.ecs.SlowEffects[id]; ok {
		return effect.Multiplier
	}
	return 1
}
