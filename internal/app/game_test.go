package app

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"go-lane-defense/internal/config"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/system"
	"go-lane-defense/pkg/grid"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// laneSettings is a 6x3 lane with the spawn and goal on the middle row.
func laneSettings() config.Settings {
	s := config.DefaultSettings()
	s.GridWidth, s.GridHeight = 6, 3
	s.Spawn = config.CellConfig{X: 0, Y: 1}
	s.Goal = config.CellConfig{X: 5, Y: 1}
	s.ManualWaves = true
	s.WaveCountdown = 0.5
	return s
}

func newTestGame(t *testing.T, mutate func(*config.Settings)) *Game {
	t.Helper()
	settings := laneSettings()
	if mutate != nil {
		mutate(&settings)
	}
	catalog, err := defs.DefaultCatalog(quietLogger())
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	g, err := NewGame(settings, catalog, quietLogger())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.Initialize()
	t.Cleanup(g.Teardown)
	return g
}

func run(g *Game, seconds float64) {
	for elapsed := 0.0; elapsed < seconds; elapsed += config.FixedTimeStep {
		g.Tick(config.FixedTimeStep)
	}
}

func TestNewGameValidation(t *testing.T) {
	catalog, err := defs.DefaultCatalog(quietLogger())
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	bad := laneSettings()
	bad.Goal = bad.Spawn
	if _, err := NewGame(bad, catalog, quietLogger()); err == nil {
		t.Errorf("invalid settings accepted")
	}
	if _, err := NewGame(laneSettings(), nil, quietLogger()); err == nil {
		t.Errorf("nil catalog accepted")
	}

	unknown := laneSettings()
	unknown.GameMode = "marathon"
	g, err := NewGame(unknown, catalog, quietLogger())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if g.Session().Mode != "classic" {
		t.Errorf("mode = %s, want classic fallback", g.Session().Mode)
	}
	if g.ID().String() == "" {
		t.Errorf("match has no id")
	}
}

func TestPlaceTower(t *testing.T) {
	g := newTestGame(t, nil)
	rec := []event.EventType{}
	for _, k := range []event.EventType{event.TowerPlaced, event.GridChanged} {
		g.EventDispatcher.Subscribe(k, event.ListenerFunc(func(e event.Event) { rec = append(rec, e.Type) }))
	}

	cell := grid.Cell{X: 2, Y: 0}
	id, err := g.PlaceTower(cell, "wolf_sentinel")
	if err != nil {
		t.Fatalf("PlaceTower: %v", err)
	}
	if g.Gold() != 100 {
		t.Errorf("gold = %d, want 100", g.Gold())
	}
	if !g.Grid.IsBlocked(cell) {
		t.Errorf("cell not blocked")
	}
	if owner, ok := g.ECS.TowerAt(cell); !ok || owner != id {
		t.Errorf("TowerAt = %d %v", owner, ok)
	}
	if _, ok := g.ECS.Combats[id]; !ok {
		t.Errorf("armed tower without combat component")
	}
	if len(rec) != 2 || rec[0] != event.GridChanged || rec[1] != event.TowerPlaced {
		t.Errorf("events = %v", rec)
	}
}

func TestPlaceTowerRejections(t *testing.T) {
	g := newTestGame(t, func(s *config.Settings) { s.StartingGold = 60 })
	if _, err := g.PlaceTower(grid.Cell{X: 2, Y: 0}, "bulwark"); err != nil {
		t.Fatalf("PlaceTower: %v", err)
	}
	if _, err := g.PlaceTower(grid.Cell{X: 2, Y: 2}, "bulwark"); err != nil {
		t.Fatalf("PlaceTower: %v", err)
	}

	tests := []struct {
		name   string
		cell   grid.Cell
		typeID string
		want   error
	}{
		{"unknown type", grid.Cell{X: 3, Y: 0}, "catapult", ErrUnknownTowerType},
		{"fusion only", grid.Cell{X: 3, Y: 0}, "dire_wolf", ErrNotBuildable},
		{"out of bounds", grid.Cell{X: 6, Y: 0}, "bulwark", ErrOutOfBounds},
		{"spawn", grid.Cell{X: 0, Y: 1}, "bulwark", ErrReservedCell},
		{"goal", grid.Cell{X: 5, Y: 1}, "bulwark", ErrReservedCell},
		{"occupied", grid.Cell{X: 2, Y: 0}, "bulwark", ErrCellOccupied},
		{"seals the lane", grid.Cell{X: 2, Y: 1}, "bulwark", ErrPathBlocked},
		{"too expensive", grid.Cell{X: 3, Y: 0}, "mender", system.ErrInsufficientGold},
	}
	for _, tt := range tests {
		gold, version := g.Gold(), g.Grid.Version()
		if _, err := g.PlaceTower(tt.cell, tt.typeID); !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
		if g.Gold() != gold || g.Grid.Version() != version {
			t.Errorf("%s: rejected placement changed state", tt.name)
		}
	}
	if g.CanPlaceTower(grid.Cell{X: 2, Y: 1}) || !g.CanPlaceTower(grid.Cell{X: 4, Y: 0}) {
		t.Errorf("CanPlaceTower disagrees with PlaceTower")
	}
}

func TestSellTower(t *testing.T) {
	g := newTestGame(t, nil)
	cell := grid.Cell{X: 2, Y: 0}
	id, err := g.PlaceTower(cell, "wolf_sentinel")
	if err != nil {
		t.Fatalf("PlaceTower: %v", err)
	}
	if err := g.UpgradeTower(id); err != nil {
		t.Fatalf("UpgradeTower: %v", err)
	}
	if _, err := g.SellTower(id); !errors.Is(err, system.ErrTowerBusy) {
		t.Fatalf("busy sell err = %v, want ErrTowerBusy", err)
	}
	run(g, 3.1)

	gold := g.Gold()
	refund, err := g.SellTower(id)
	if err != nil {
		t.Fatalf("SellTower: %v", err)
	}
	if refund != 25 || g.Gold() != gold+25 {
		t.Errorf("refund = %d gold = %d, want 25 on top of %d", refund, g.Gold(), gold)
	}
	if g.Grid.IsBlocked(cell) {
		t.Errorf("sold tower cell still blocked")
	}
	if _, err := g.SellTower(id); !errors.Is(err, system.ErrUnknownTower) {
		t.Errorf("double sell err = %v", err)
	}
}

func TestTickClampsAndWaitsForInitialize(t *testing.T) {
	catalog, _ := defs.DefaultCatalog(quietLogger())
	g, err := NewGame(laneSettings(), catalog, quietLogger())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.Tick(0.05)
	if g.GameTime() != 0 {
		t.Fatalf("ticked before Initialize")
	}
	g.Initialize()
	g.Initialize()
	g.Tick(1)
	if g.GameTime() != config.MaxDeltaTime {
		t.Errorf("game time = %v, want clamped %v", g.GameTime(), config.MaxDeltaTime)
	}
	g.Tick(-1)
	if g.GameTime() != config.MaxDeltaTime {
		t.Errorf("negative delta advanced time")
	}
}

func TestUndefendedWaveLeaks(t *testing.T) {
	g := newTestGame(t, nil)
	if !g.RequestNextWave() {
		t.Fatalf("first wave refused")
	}
	if g.RequestNextWave() {
		t.Fatalf("second request accepted during countdown")
	}
	run(g, 1)
	if info := g.WaveInfo(); info.Number != 1 || info.Alive != 4 {
		t.Fatalf("wave info = %+v", info)
	}
	if len(g.Enemies()) != 4 {
		t.Fatalf("enemies = %d", len(g.Enemies()))
	}

	run(g, 20)
	s := g.Session()
	if s.Escapes != 4 || s.Lives != 16 || s.Defeated {
		t.Errorf("session = %+v, want 4 escapes and 16 lives", s)
	}
	if info := g.WaveInfo(); info.Alive != 0 || info.State != "waiting" || !info.CanRequest {
		t.Errorf("wave info = %+v, want waiting for input", info)
	}
	if g.Gold() < 170 {
		t.Errorf("gold = %d, want wave bonus and passive income on top of 150", g.Gold())
	}
}

func TestDefendedWaveAccountsForEveryEnemy(t *testing.T) {
	g := newTestGame(t, nil)
	kills := 0
	g.EventDispatcher.Subscribe(event.EnemyKilled, event.ListenerFunc(func(event.Event) { kills++ }))

	for _, cell := range []grid.Cell{{X: 2, Y: 0}, {X: 3, Y: 2}} {
		if _, err := g.PlaceTower(cell, "falcon_spire"); err != nil {
			t.Fatalf("PlaceTower(%v): %v", cell, err)
		}
	}
	g.RequestNextWave()
	run(g, 20)

	if kills == 0 {
		t.Errorf("towers killed nothing")
	}
	if got := kills + g.Session().Escapes; got != 4 {
		t.Errorf("kills %d + escapes %d = %d, want 4", kills, g.Session().Escapes, got)
	}
	total := 0
	for _, info := range g.Towers() {
		total += info.Kills
	}
	if total != kills {
		t.Errorf("tower kill counters = %d, want %d", total, kills)
	}
}

func TestMatchOverFreezesCommands(t *testing.T) {
	g := newTestGame(t, func(s *config.Settings) { s.GameMode = "hardcore" })
	id, err := g.PlaceTower(grid.Cell{X: 2, Y: 0}, "bulwark")
	if err != nil {
		t.Fatalf("PlaceTower: %v", err)
	}
	g.SessionSystem.RecordEscape()
	if !g.Over() || g.Session().Reason != "leak" {
		t.Fatalf("hardcore leak did not end the match: %+v", g.Session())
	}

	now := g.GameTime()
	g.Tick(0.05)
	if g.GameTime() != now {
		t.Errorf("finished match kept ticking")
	}
	if _, err := g.PlaceTower(grid.Cell{X: 3, Y: 0}, "bulwark"); !errors.Is(err, ErrMatchOver) {
		t.Errorf("place err = %v", err)
	}
	if _, err := g.SellTower(id); !errors.Is(err, ErrMatchOver) {
		t.Errorf("sell err = %v", err)
	}
	if err := g.UpgradeTower(id); !errors.Is(err, ErrMatchOver) {
		t.Errorf("upgrade err = %v", err)
	}
	if err := g.RepairTower(id); !errors.Is(err, ErrMatchOver) {
		t.Errorf("repair err = %v", err)
	}
	if _, err := g.FuseTowers(id, id); !errors.Is(err, ErrMatchOver) {
		t.Errorf("fuse err = %v", err)
	}
	if g.RequestNextWave() {
		t.Errorf("wave requested after the match ended")
	}
}

func TestTeardownDropsEverything(t *testing.T) {
	g := newTestGame(t, nil)
	if _, err := g.PlaceTower(grid.Cell{X: 2, Y: 0}, "bulwark"); err != nil {
		t.Fatalf("PlaceTower: %v", err)
	}
	g.Teardown()

	if len(g.ECS.Towers) != 0 || len(g.ECS.Positions) != 0 {
		t.Errorf("entities survived teardown")
	}
	gold := g.Gold()
	g.EventDispatcher.Dispatch(event.Event{Type: event.WaveCompleted, Data: event.WaveData{Number: 1}})
	if g.Gold() != gold {
		t.Errorf("economy still subscribed after teardown")
	}
	changes := 0
	g.EventDispatcher.Subscribe(event.GridChanged, event.ListenerFunc(func(event.Event) { changes++ }))
	g.Grid.SetBlocked(grid.Cell{X: 4, Y: 0}, true)
	if changes != 0 {
		t.Errorf("grid listener survived teardown")
	}
}
