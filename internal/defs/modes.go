// internal/defs/modes.go
package defs

// GameMode configures how leaks end a match. Zero thresholds are disabled.
type GameMode struct {
	ID                string  `json:"id" yaml:"id" jsonschema:"required"`
	Name              string  `json:"name" yaml:"name"`
	StartingLives     int     `json:"starting_lives" yaml:"starting_lives"`
	MaxEscapes        int     `json:"max_escapes,omitempty" yaml:"max_escapes"`
	MaxDamage         float64 `json:"max_damage,omitempty" yaml:"max_damage"`
	DamagePerEscape   float64 `json:"damage_per_escape,omitempty" yaml:"damage_per_escape"`
	DefeatOnFirstLeak bool    `json:"defeat_on_first_leak,omitempty" yaml:"defeat_on_first_leak"`
	VictoryWave       int     `json:"victory_wave,omitempty" yaml:"victory_wave"`
}

// DefaultGameMode is used when the configured mode is missing.
func DefaultGameMode() *GameMode {
	return &GameMode{
		ID:              "classic",
		Name:            "Classic",
		StartingLives:   20,
		DamagePerEscape: 1,
	}
}
