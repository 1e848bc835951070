// internal/config/settings.go
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CellConfig is a grid coordinate in settings files.
type CellConfig struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Settings are the per-match tunables supplied by the bootstrap layer.
type Settings struct {
	GridWidth  int        `yaml:"grid_width"`
	GridHeight int        `yaml:"grid_height"`
	CellSize   float64    `yaml:"cell_size"`
	OriginX    float64    `yaml:"origin_x"`
	OriginY    float64    `yaml:"origin_y"`
	Spawn      CellConfig `yaml:"spawn"`
	Goal       CellConfig `yaml:"goal"`

	ManualWaves      bool    `yaml:"manual_waves"`
	InitialCountdown float64 `yaml:"initial_countdown"`
	WaveCountdown    float64 `yaml:"wave_countdown"`
	Intermission     float64 `yaml:"intermission"`
	SpawnStagger     float64 `yaml:"spawn_stagger"`

	StartingGold          int     `yaml:"starting_gold"`
	PassiveIncome         int     `yaml:"passive_income"`
	PassiveIncomeInterval float64 `yaml:"passive_income_interval"`
	WaveBonus             int     `yaml:"wave_bonus"`
	SellRefundRatio       float64 `yaml:"sell_refund_ratio"`

	GameMode string `yaml:"game_mode"`
	Seed     int64  `yaml:"seed"`
}

// DefaultSettings returns a 16x10 lane with the spawn on the left edge and the
// goal on the right edge.
func DefaultSettings() Settings {
	return Settings{
		GridWidth:             16,
		GridHeight:            10,
		CellSize:              1,
		Spawn:                 CellConfig{X: 0, Y: 5},
		Goal:                  CellConfig{X: 15, Y: 5},
		InitialCountdown:      5,
		WaveCountdown:         8,
		Intermission:          4,
		SpawnStagger:          0.8,
		StartingGold:          150,
		PassiveIncome:         1,
		PassiveIncomeInterval: 2,
		WaveBonus:             20,
		SellRefundRatio:       0.5,
		GameMode:              "classic",
	}
}

// LoadSettings reads a YAML settings file on top of DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return s, nil
}

// Validate reports every problem found in s.
func (s Settings) Validate() error {
	var errs []error
	if s.GridWidth <= 0 || s.GridHeight <= 0 {
		errs = append(errs, fmt.Errorf("grid size must be positive, got %dx%d", s.GridWidth, s.GridHeight))
	}
	if s.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell size must be positive, got %v", s.CellSize))
	}
	if !s.inBounds(s.Spawn) {
		errs = append(errs, fmt.Errorf("spawn %v outside grid", s.Spawn))
	}
	if !s.inBounds(s.Goal) {
		errs = append(errs, fmt.Errorf("goal %v outside grid", s.Goal))
	}
	if s.Spawn == s.Goal {
		errs = append(errs, errors.New("spawn and goal share a cell"))
	}
	if s.SpawnStagger < 0 || s.Intermission < 0 || s.WaveCountdown < 0 || s.InitialCountdown < 0 {
		errs = append(errs, errors.New("wave timers must not be negative"))
	}
	if s.SellRefundRatio < 0 || s.SellRefundRatio > 1 {
		errs = append(errs, fmt.Errorf("sell refund ratio %v outside [0,1]", s.SellRefundRatio))
	}
	return errors.Join(errs...)
}

func (s Settings) inBounds(c CellConfig) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < s.GridWidth && c.Y < s.GridHeight
}
