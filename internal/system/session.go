// internal/system/session.go
package system

import (
	"log/slog"
	"math"

	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/event"
)

// SessionSystem следит за условиями поражения и победы для выбранного режима.
// Both outcomes are terminal.
type SessionSystem struct {
	mode            *defs.GameMode
	eventDispatcher *event.Dispatcher
	logger          *slog.Logger

	lives      int
	escapes    int
	damage     float64
	wave       int
	defeated   bool
	victorious bool
	reason     string
}

func NewSessionSystem(mode *defs.GameMode, eventDispatcher *event.Dispatcher, logger *slog.Logger) *SessionSystem {
	if mode == nil {
		mode = defs.DefaultGameMode()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &SessionSystem{
		mode:            mode,
		eventDispatcher: eventDispatcher,
		logger:          logger,
		lives:           mode.StartingLives,
	}
	eventDispatcher.Subscribe(event.EnemyReachedGoal, s)
	eventDispatcher.Subscribe(event.WaveStarted, s)
	eventDispatcher.Subscribe(event.WaveCompleted, s)
	return s
}

func (s *SessionSystem) Mode() *defs.GameMode { return s.mode }
func (s *SessionSystem) Lives() int { return max(s.lives, 0) }
func (s *SessionSystem) Escapes() int { return s.escapes }
func (s *SessionSystem) Damage() float64 { return s.damage }
func (s *SessionSystem) Defeated() bool { return s.defeated }
func (s *SessionSystem) Victorious() bool { return s.victorious }
func (s *SessionSystem) Reason() string { return s.reason }
func (s *SessionSystem) Wave() int { return s.wave }
func (s *SessionSystem) Over() bool { return s.defeated || s.victorious }

func (s *SessionSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemyReachedGoal:
		s.RecordEscape()
	case event.WaveStarted:
		if data, ok := e.Data.(event.WaveData); ok && !s.Over() {
			s.wave = data.Number
		}
	case event.WaveCompleted:
		if data, ok := e.Data.(event.WaveData); ok {
			s.RecordWave(data.Number)
		}
	}
}

// RecordEscape учитывает прорыв врага. The first satisfied threshold ends the match.
func (s *SessionSystem) RecordEscape() {
	if s.Over() {
		return
	}
	s.escapes++
	s.damage += s.mode.DamagePerEscape
	if s.mode.DefeatOnFirstLeak {
		s.defeat("leak")
		return
	}
	loss := int(math.Round(s.mode.DamagePerEscape))
	if loss < 1 {
		loss = 1
	}
	s.lives -= loss

	switch {
	case s.mode.MaxEscapes > 0 && s.escapes >= s.mode.MaxEscapes:
		s.defeat("max escapes")
	case s.mode.MaxDamage > 0 && s.damage >= s.mode.MaxDamage:
		s.defeat("max damage")
	case s.lives <= 0:
		s.defeat("no lives left")
	}
}

// RecordWave grants victory once the mode's final wave is cleared.
func (s *SessionSystem) RecordWave(wave int) {
	if s.Over() {
		return
	}
	s.wave = wave
	if s.mode.VictoryWave > 0 && wave >= s.mode.VictoryWave {
		s.victorious = true
		s.reason = "final wave cleared"
		s.logger.Info("victory", "wave", wave)
		s.eventDispatcher.Dispatch(event.Event{Type: event.Victory, Data: event.OutcomeData{Reason: s.reason, Wave: wave}})
	}
}

func (s *SessionSystem) defeat(reason string) {
	s.defeated = true
	s.reason = reason
	s.logger.Info("defeat", "reason", reason, "escapes", s.escapes, "damage", s.damage)
	s.eventDispatcher.Dispatch(event.Event{Type: event.Defeat, Data: event.OutcomeData{Reason: reason, Wave: s.wave}})
}
