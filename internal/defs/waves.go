// internal/defs/waves.go
package defs

import (
	"go-lane-defense/internal/config"
	"go-lane-defense/pkg/utils"
)

// CommonTier is a family of everyday enemies unlocked at MinWave.
type CommonTier struct {
	MinWave    int      `json:"min_wave" yaml:"min_wave"`
	Candidates []string `json:"candidates" yaml:"candidates"`
}

// WaveTable maps wave numbers to enemy families. Each list is an ordered
// fallback chain; Default ends every chain.
type WaveTable struct {
	Common    []CommonTier `json:"common" yaml:"common"`
	Objective []string     `json:"objective,omitempty" yaml:"objective"` // every 7th wave
	Elite     []string     `json:"elite,omitempty" yaml:"elite"`         // every 5th wave
	Boss      []string     `json:"boss,omitempty" yaml:"boss"`           // every 10th wave from 10
	Default   string       `json:"default" yaml:"default"`
}

// Family names the tier a wave draws from.
type Family string

const (
	FamilyCommon    Family = "common"
	FamilyObjective Family = "objective"
	FamilyElite     Family = "elite"
	FamilyBoss      Family = "boss"
)

// FamilyFor returns which tier wave belongs to.
func FamilyFor(wave int) Family {
	switch {
	case wave >= 10 && wave%10 == 0:
		return FamilyBoss
	case wave > 0 && wave%7 == 0:
		return FamilyObjective
	case wave > 0 && wave%5 == 0:
		return FamilyElite
	default:
		return FamilyCommon
	}
}

// Candidates returns the full fallback chain for wave, ending with Default.
func (w WaveTable) Candidates(wave int) []string {
	var chain []string
	switch FamilyFor(wave) {
	case FamilyBoss:
		chain = w.Boss
	case FamilyObjective:
		chain = w.Objective
	case FamilyElite:
		chain = w.Elite
	default:
		chain = w.commonTier(wave)
	}
	out := make([]string, 0, len(chain)+1)
	out = append(out, chain...)
	if w.Default != "" {
		out = append(out, w.Default)
	}
	return out
}

// commonTier picks the highest tier whose MinWave has been reached, or the first
// tier when none has.
func (w WaveTable) commonTier(wave int) []string {
	if len(w.Common) == 0 {
		return nil
	}
	best := -1
	for i, tier := range w.Common {
		if tier.MinWave <= wave && (best < 0 || tier.MinWave >= w.Common[best].MinWave) {
			best = i
		}
	}
	if best < 0 {
		best = 0
	}
	return w.Common[best].Candidates
}

// EnemyCount is the burst size for wave.
func EnemyCount(wave int) int {
	return utils.ClampInt(config.BaseEnemiesPerWave+wave, config.MinEnemiesPerWave, config.MaxEnemiesPerWave)
}

// WavePreview describes what a future wave will contain.
type WavePreview struct {
	Wave    int
	Family  Family
	EnemyID string
	Count   int
}
