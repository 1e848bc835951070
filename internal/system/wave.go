// internal/system/wave.go
package system

import (
	"log/slog"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

// WaveState: состояние планировщика волн.
type WaveState int

const (
	WaitingForInput WaveState = iota
	Countdown
	Spawning
	Intermission
)

func (s WaveState) String() string {
	switch s {
	case WaitingForInput:
		return "waiting"
	case Countdown:
		return "countdown"
	case Spawning:
		return "spawning"
	case Intermission:
		return "intermission"
	default:
		return "unknown"
	}
}

// WaveConfig are the scheduler timings and lane endpoints.
type WaveConfig struct {
	Manual           bool
	InitialCountdown float64
	WaveCountdown    float64
	Intermission     float64
	SpawnStagger     float64
	Spawn            grid.Cell
	Goal             grid.Cell
}

// WaveSystem is the wave scheduler. It has no terminal state; the match ends
// outside of it.
type WaveSystem struct {
	ecs             *entity.ECS
	grid            *grid.Grid
	eventDispatcher *event.Dispatcher
	catalog         *defs.Catalog
	logger          *slog.Logger
	cfg             WaveConfig

	state   WaveState
	wave    int
	timer   float64
	alive   int
	tracked map[types.EntityID]struct{} // spawned and not yet removed
}

func NewWaveSystem(ecs *entity.ECS, g *grid.Grid, eventDispatcher *event.Dispatcher, catalog *defs.Catalog, cfg WaveConfig, logger *slog.Logger) *WaveSystem {
	if logger == nil {
		logger = slog.Default()
	}
	ws := &WaveSystem{
		ecs:             ecs,
		grid:            g,
		eventDispatcher: eventDispatcher,
		catalog:         catalog,
		logger:          logger,
		cfg:             cfg,
		tracked:         make(map[types.EntityID]struct{}),
	}
	ws.reset()
	eventDispatcher.Subscribe(event.EnemyRemoved, ws)
	return ws
}

// Initialize puts the scheduler into its starting state.
func (s *WaveSystem) Initialize() {
	s.reset()
}

func (s *WaveSystem) reset() {
	s.wave = 0
	s.alive = 0
	clear(s.tracked)
	if s.cfg.Manual {
		s.state = WaitingForInput
		s.timer = 0
		return
	}
	s.state = Countdown
	s.timer = s.cfg.InitialCountdown
}

func (s *WaveSystem) State() WaveState { return s.state }
func (s *WaveSystem) Wave() int { return s.wave }
func (s *WaveSystem) Alive() int { return s.alive }

// Timer returns the seconds left on the countdown or intermission.
func (s *WaveSystem) Timer() float64 {
	if s.timer < 0 {
		return 0
	}
	return s.timer
}

// CanRequestNextWave reports whether RequestNextWave would be accepted.
func (s *WaveSystem) CanRequestNextWave() bool {
	switch s.state {
	case WaitingForInput:
		return true
	case Intermission:
		return s.timer <= 0 && s.alive == 0
	}
	return false
}

// RequestNextWave starts the countdown to the next wave. It is refused unless
// the scheduler is waiting or idling in an elapsed intermission.
func (s *WaveSystem) RequestNextWave() bool {
	if !s.CanRequestNextWave() {
		return false
	}
	s.startCountdown()
	return true
}

func (s *WaveSystem) Update(deltaTime float64) {
	switch s.state {
	case Countdown:
		s.timer -= deltaTime
		if s.timer <= 0 {
			s.startWave()
		}
	case Spawning:
		if s.alive == 0 {
			s.enterIntermission()
		}
	case Intermission:
		if s.alive > 0 {
			s.setState(Spawning)
			return
		}
		s.timer -= deltaTime
		if s.timer > 0 {
			return
		}
		s.timer = 0
		if s.cfg.Manual {
			s.setState(WaitingForInput)
			return
		}
		s.startCountdown()
	}
}

func (s *WaveSystem) OnEvent(e event.Event) {
	if e.Type != event.EnemyRemoved {
		return
	}
	data, ok := e.Data.(event.EnemyRemovedData)
	if !ok {
		return
	}
	if _, ok := s.tracked[data.ID]; !ok {
		return
	}
	delete(s.tracked, data.ID)
	if s.alive > 0 {
		s.alive--
	}
	if s.alive == 0 && s.state == Spawning {
		s.enterIntermission()
	}
}

func (s *WaveSystem) startCountdown() {
	s.timer = s.cfg.WaveCountdown
	s.setState(Countdown)
}

func (s *WaveSystem) startWave() {
	s.wave++
	s.timer = 0
	s.setState(Spawning)
	count := s.spawnBurst()
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveStarted, Data: event.WaveData{Number: s.wave, Count: count}})
	if s.alive == 0 && s.state == Spawning {
		s.enterIntermission()
	}
}

func (s *WaveSystem) enterIntermission() {
	s.timer = s.cfg.Intermission
	s.setState(Intermission)
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveCompleted, Data: event.WaveData{Number: s.wave}})
}

func (s *WaveSystem) setState(next WaveState) {
	if next == s.state {
		return
	}
	prev := s.state
	s.state = next
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveStateChanged, Data: event.WaveStateData{From: prev.String(), To: next.String()}})
}

// spawnBurst создаёт всех врагов волны сразу, разнося их появление по времени.
func (s *WaveSystem) spawnBurst() int {
	if s.grid == nil {
		s.logger.Error("wave spawner has no grid, skipping spawn", "wave", s.wave)
		return 0
	}
	enemyType, ok := s.catalog.SelectEnemy(s.wave)
	if !ok {
		s.logger.Warn("no spawnable enemy type for wave", "wave", s.wave)
		return 0
	}
	count := defs.EnemyCount(s.wave)
	for i := 0; i < count; i++ {
		s.spawnEnemy(enemyType, float64(i)*s.cfg.SpawnStagger)
	}
	s.logger.Info("wave started", "wave", s.wave, "enemy", enemyType.ID, "count", count)
	return count
}

func (s *WaveSystem) spawnEnemy(enemyType *defs.EnemyType, delay float64) {
	id := s.ecs.NewEntity()
	s.ecs.Positions[id] = &component.Position{Vec2: s.grid.GridToWorld(s.cfg.Spawn)}
	s.ecs.Enemies[id] = &component.Enemy{
		Type:       enemyType,
		Health:     enemyType.Health,
		Goal:       s.grid.GridToWorld(s.cfg.Goal),
		SpawnDelay: delay,
	}
	s.tracked[id] = struct{}{}
	s.alive++
	s.eventDispatcher.Dispatch(event.Event{Type: event.EnemySpawned, Data: event.EnemySpawnedData{ID: id, TypeID: enemyType.ID, Wave: s.wave}})
}
