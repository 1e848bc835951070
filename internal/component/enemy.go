// internal/component/enemy.go
package component

import (
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

// Enemy представляет вражескую сущность.
type Enemy struct {
	Type           *defs.EnemyType
	Health         float64
	Goal           grid.Vec2
	SpawnDelay     float64        // seconds until the enemy becomes active
	AttackCooldown float64        // seconds until the next tower hit
	AttackTarget   types.EntityID // tower being hit this tick, zero while walking
}

// Active reports whether the spawn delay has elapsed.
func (e *Enemy) Active() bool {
	return e.SpawnDelay <= 0
}
