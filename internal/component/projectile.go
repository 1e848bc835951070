// internal/component/projectile.go
package component

import (
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/types"
)

// Projectile представляет летящий снаряд.
type Projectile struct {
	Source       types.EntityID
	Target       types.EntityID
	Speed        float64
	Damage       float64
	Style        defs.AttackStyle
	SlowPercent  float64
	SlowDuration float64
}
