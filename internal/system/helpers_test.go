package system

import (
	"io"
	"log/slog"
	"testing"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultCatalog(t *testing.T) *defs.Catalog {
	t.Helper()
	cat, err := defs.DefaultCatalog(quietLogger())
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	return cat
}

// world is the minimal state systems share in tests.
type world struct {
	ecs    *entity.ECS
	grid   *grid.Grid
	d      *event.Dispatcher
	status *StatusEffectSystem
}

func newWorld(width, height int) *world {
	ecs := entity.NewECS()
	return &world{
		ecs:    ecs,
		grid:   grid.New(width, height, grid.Vec2{}, 1),
		d:      event.NewDispatcher(),
		status: NewStatusEffectSystem(ecs),
	}
}

func (w *world) addEnemy(typ *defs.EnemyType, pos grid.Vec2) types.EntityID {
	id := w.ecs.NewEntity()
	w.ecs.Positions[id] = &component.Position{Vec2: pos}
	w.ecs.Enemies[id] = &component.Enemy{Type: typ, Health: typ.Health}
	return id
}

func (w *world) addTower(typ *defs.TowerType, cell grid.Cell) types.EntityID {
	id := w.ecs.NewEntity()
	tower := &component.Tower{Type: typ, Cell: cell, Health: typ.MaxHealth}
	w.ecs.AddTower(id, tower, w.grid.GridToWorld(cell))
	w.grid.SetBlocked(cell, true)
	SyncCombat(w.ecs, id, tower)
	return id
}

func enemyType(id string, health, speed float64) *defs.EnemyType {
	return &defs.EnemyType{ID: id, Model: id, Health: health, Speed: speed}
}

func towerType(def defs.TowerDefinition) *defs.TowerType {
	return defs.Resolve(def, nil)
}

// recorder keeps every dispatched event of the watched types in order.
type recorder struct {
	events []event.Event
}

func record(d *event.Dispatcher, kinds ...event.EventType) *recorder {
	r := &recorder{}
	for _, k := range kinds {
		d.Subscribe(k, event.ListenerFunc(func(e event.Event) { r.events = append(r.events, e) }))
	}
	return r
}

func (r *recorder) kinds() []event.EventType {
	out := make([]event.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *recorder) count(kind event.EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == kind {
			n++
		}
	}
	return n
}
