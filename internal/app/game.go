// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"go-lane-defense/internal/config"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/system"
	"go-lane-defense/pkg/grid"
)

var ErrMatchOver = errors.New("match is over")

// Game holds one match: the world, its systems and the event bus they share.
type Game struct {
	Settings           config.Settings
	Catalog            *defs.Catalog
	Grid               *grid.Grid
	ECS                *entity.ECS
	EventDispatcher    *event.Dispatcher
	Economy            *system.EconomySystem
	WaveSystem         *system.WaveSystem
	StatusEffectSystem *system.StatusEffectSystem
	EnemySystem        *system.EnemySystem
	UpgradeSystem      *system.UpgradeSystem
	CombatSystem       *system.CombatSystem
	ProjectileSystem   *system.ProjectileSystem
	RepairAuraSystem   *system.RepairAuraSystem
	FusionSystem       *system.FusionSystem
	SessionSystem      *system.SessionSystem

	id          uuid.UUID
	logger      *slog.Logger
	spawn, goal grid.Cell
	initialized bool
	ticks       uint64
}

// NewGame builds a match from settings and a definition catalog. Nothing runs
// until Initialize is called.
func NewGame(settings config.Settings, catalog *defs.Catalog, logger *slog.Logger) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New()
	logger = logger.With("match", id.String())

	mode, ok := catalog.Mode(settings.GameMode)
	if !ok {
		logger.Warn("game mode not found, using default", "mode", settings.GameMode, "default", mode.ID)
	}

	ecs := entity.NewECS()
	eventDispatcher := event.NewDispatcher()
	g := &Game{
		Settings:        settings,
		Catalog:         catalog,
		Grid:            grid.New(settings.GridWidth, settings.GridHeight, grid.Vec2{X: settings.OriginX, Y: settings.OriginY}, settings.CellSize),
		ECS:             ecs,
		EventDispatcher: eventDispatcher,
		id:              id,
		logger:          logger,
		spawn:           grid.Cell{X: settings.Spawn.X, Y: settings.Spawn.Y},
		goal:            grid.Cell{X: settings.Goal.X, Y: settings.Goal.Y},
	}

	g.Economy = system.NewEconomySystem(system.EconomyConfig{
		StartingGold:          settings.StartingGold,
		PassiveIncome:         settings.PassiveIncome,
		PassiveIncomeInterval: settings.PassiveIncomeInterval,
		WaveBonus:             settings.WaveBonus,
	}, eventDispatcher)
	g.WaveSystem = system.NewWaveSystem(ecs, g.Grid, eventDispatcher, catalog, system.WaveConfig{
		Manual:           settings.ManualWaves,
		InitialCountdown: settings.InitialCountdown,
		WaveCountdown:    settings.WaveCountdown,
		Intermission:     settings.Intermission,
		SpawnStagger:     settings.SpawnStagger,
		Spawn:            g.spawn,
		Goal:             g.goal,
	}, logger)
	g.StatusEffectSystem = system.NewStatusEffectSystem(ecs)
	g.EnemySystem = system.NewEnemySystem(ecs, g.Grid, eventDispatcher, g.StatusEffectSystem, logger)
	g.UpgradeSystem = system.NewUpgradeSystem(ecs, g.Grid, eventDispatcher, g.Economy, logger)
	g.CombatSystem = system.NewCombatSystem(ecs, eventDispatcher, g.StatusEffectSystem)
	g.ProjectileSystem = system.NewProjectileSystem(ecs, eventDispatcher, g.StatusEffectSystem)
	g.RepairAuraSystem = system.NewRepairAuraSystem(ecs, g.Economy)
	g.FusionSystem = system.NewFusionSystem(ecs, catalog, g.Economy, g.UpgradeSystem, eventDispatcher, logger)
	g.SessionSystem = system.NewSessionSystem(mode, eventDispatcher, logger)

	listener := &GameEventListener{game: g}
	eventDispatcher.Subscribe(event.TowerDestroyed, listener)
	eventDispatcher.Subscribe(event.WaveCompleted, listener)
	eventDispatcher.Subscribe(event.Defeat, listener)
	eventDispatcher.Subscribe(event.Victory, listener)

	return g, nil
}

// ID identifies the match in logs and reports.
func (g *Game) ID() uuid.UUID { return g.id }

// Logger returns the match-scoped logger.
func (g *Game) Logger() *slog.Logger { return g.logger }

// Initialize starts the match. Calling it again is a no-op.
func (g *Game) Initialize() {
	if g.initialized {
		return
	}
	g.Grid.OnChange(func(c grid.Cell, blocked bool) {
		g.EventDispatcher.Dispatch(event.Event{Type: event.GridChanged, Data: event.GridChangedData{Cell: c, Blocked: blocked}})
	})
	g.WaveSystem.Initialize()
	g.initialized = true
	g.logger.Info("match initialized",
		"mode", g.SessionSystem.Mode().ID,
		"grid", fmt.Sprintf("%dx%d", g.Grid.Width, g.Grid.Height),
		"gold", g.Economy.Gold())
}

// Tick advances the simulation by deltaTime seconds, clamped to MaxDeltaTime.
// Order: scheduler, enemies, towers, economy. Session rules react to events
// as they happen. A finished match no longer advances.
func (g *Game) Tick(deltaTime float64) {
	if !g.initialized || g.SessionSystem.Over() || deltaTime <= 0 {
		return
	}
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	g.ticks++
	g.ECS.GameTime += deltaTime

	g.WaveSystem.Update(deltaTime)
	g.EnemySystem.Update(deltaTime)
	g.UpgradeSystem.Update(deltaTime)
	g.CombatSystem.Update(deltaTime)
	g.ProjectileSystem.Update(deltaTime)
	g.RepairAuraSystem.Update(deltaTime)
	g.Economy.Update(deltaTime)
}

// Teardown drops every subscription and entity. The Game is unusable afterwards.
func (g *Game) Teardown() {
	g.EventDispatcher.Reset()
	g.Grid.ClearListeners()
	g.ECS.Clear()
	g.initialized = false
	g.logger.Info("match torn down", "ticks", g.ticks)
}

// Over reports whether the match reached defeat or victory.
func (g *Game) Over() bool { return g.SessionSystem.Over() }

// GameTime returns simulated seconds since Initialize.
func (g *Game) GameTime() float64 { return g.ECS.GameTime }

// GameEventListener обрабатывает события, важные для основного игрового цикла.
type GameEventListener struct {
	game *Game
}

// OnEvent реализует интерфейс event.Listener.
func (l *GameEventListener) OnEvent(e event.Event) {
	switch e.Type {
	case event.TowerDestroyed:
		if data, ok := e.Data.(event.TowerData); ok {
			l.game.logger.Info("tower destroyed", "tower", data.ID, "type", data.TypeID, "cell", data.Cell)
		}
	case event.WaveCompleted:
		if data, ok := e.Data.(event.WaveData); ok {
			l.game.logger.Info("wave completed", "wave", data.Number, "gold", l.game.Economy.Gold())
		}
	case event.Defeat, event.Victory:
		if data, ok := e.Data.(event.OutcomeData); ok {
			l.game.logger.Info("match over", "outcome", string(e.Type), "reason", data.Reason, "wave", data.Wave)
		}
	}
}
