// internal/component/upgrade.go
package component

import (
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/types"
)

// UpgradeMode is what a busy tower is doing.
type UpgradeMode int

const (
	UpgradeIdle UpgradeMode = iota
	UpgradeTier
	UpgradeMorph
	UpgradeRepair
)

func (m UpgradeMode) String() string {
	switch m {
	case UpgradeTier:
		return "upgrading"
	case UpgradeMorph:
		return "morphing"
	case UpgradeRepair:
		return "repairing"
	default:
		return "idle"
	}
}

// Upgrade is present only while a tower is busy.
type Upgrade struct {
	Mode      UpgradeMode
	Remaining float64
	Duration  float64
	MorphInto *defs.TowerType
	Partner   types.EntityID // fusion partner destroyed when the morph completes
}

// Progress returns completion in [0,1].
func (u *Upgrade) Progress() float64 {
	if u == nil || u.Duration <= 0 {
		return 1
	}
	p := 1 - u.Remaining/u.Duration
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
