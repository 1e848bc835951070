// internal/component/tower.go
package component

import (
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

// Tower is a placed tower. Type is swapped in place when a fusion morph completes.
type Tower struct {
	Type        *defs.TowerType
	Cell        grid.Cell
	Health      float64
	Tier        int            // completed upgrade tiers
	Kills       int
	RepairCarry float64        // fractional gold owed by this tower's repair aura
	LockedBy    types.EntityID // fusion host that will consume this tower
}

// Stats returns the combat stats for the current tier.
func (t *Tower) Stats() defs.CombatStats {
	return t.Type.StatsAt(t.Tier)
}

// MaxHealth returns the health cap of the current type.
func (t *Tower) MaxHealth() float64 {
	return t.Type.MaxHealth
}

// Missing returns how much health the tower lacks.
func (t *Tower) Missing() float64 {
	if m := t.MaxHealth() - t.Health; m > 0 {
		return m
	}
	return 0
}
