package system

import (
	"testing"

	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/event"
)

func TestSessionDefeatThresholds(t *testing.T) {
	tests := []struct {
		name    string
		mode    defs.GameMode
		escapes int
		reason  string
		lives   int
	}{
		{"lives", defs.GameMode{StartingLives: 3, DamagePerEscape: 1}, 3, "no lives left", 0},
		{"first leak", defs.GameMode{StartingLives: 10, DefeatOnFirstLeak: true}, 1, "leak", 10},
		{"max escapes", defs.GameMode{StartingLives: 100, MaxEscapes: 4}, 4, "max escapes", 96},
		{"max damage", defs.GameMode{StartingLives: 100, MaxDamage: 5, DamagePerEscape: 2.5}, 2, "max damage", 94},
		{"heavy leaks", defs.GameMode{StartingLives: 5, DamagePerEscape: 2.4}, 3, "no lives left", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := event.NewDispatcher()
			rec := record(d, event.Defeat)
			mode := tt.mode
			s := NewSessionSystem(&mode, d, quietLogger())

			for i := 1; i <= tt.escapes; i++ {
				if s.Over() {
					t.Fatalf("defeated after %d escapes, want %d", i-1, tt.escapes)
				}
				d.Dispatch(event.Event{Type: event.EnemyReachedGoal, Data: event.EnemyReachedGoalData{ID: 1}})
			}
			if !s.Defeated() || s.Reason() != tt.reason {
				t.Fatalf("defeated=%v reason=%q, want %q", s.Defeated(), s.Reason(), tt.reason)
			}
			if s.Lives() != tt.lives {
				t.Errorf("lives = %d, want %d", s.Lives(), tt.lives)
			}

			s.RecordEscape()
			if s.Escapes() != tt.escapes || rec.count(event.Defeat) != 1 {
				t.Errorf("escape counted after defeat: escapes %d defeats %d", s.Escapes(), rec.count(event.Defeat))
			}
		})
	}
}

func TestSessionVictory(t *testing.T) {
	d := event.NewDispatcher()
	rec := record(d, event.Victory)
	s := NewSessionSystem(&defs.GameMode{StartingLives: 5, VictoryWave: 3}, d, quietLogger())

	for wave := 1; wave <= 3; wave++ {
		d.Dispatch(event.Event{Type: event.WaveStarted, Data: event.WaveData{Number: wave}})
		if s.Wave() != wave {
			t.Errorf("wave = %d, want %d", s.Wave(), wave)
		}
		d.Dispatch(event.Event{Type: event.WaveCompleted, Data: event.WaveData{Number: wave}})
	}
	if !s.Victorious() || !s.Over() || s.Reason() != "final wave cleared" {
		t.Fatalf("victory not declared: %+v", s)
	}
	if rec.count(event.Victory) != 1 {
		t.Errorf("Victory fired %d times", rec.count(event.Victory))
	}
	if data := rec.events[0].Data.(event.OutcomeData); data.Wave != 3 {
		t.Errorf("outcome = %+v", data)
	}

	s.RecordEscape()
	if s.Defeated() || s.Escapes() != 0 {
		t.Errorf("leak after victory changed the outcome")
	}
}

func TestSessionEndlessWithoutVictoryWave(t *testing.T) {
	d := event.NewDispatcher()
	s := NewSessionSystem(nil, d, quietLogger())
	if s.Mode().ID != "classic" || s.Lives() != 20 {
		t.Fatalf("nil mode should fall back to classic, got %+v", s.Mode())
	}
	s.RecordWave(500)
	if s.Over() {
		t.Errorf("classic mode declared an outcome")
	}
}
