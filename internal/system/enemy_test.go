package system

import (
	"slices"
	"testing"

	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

func newEnemySystem(w *world) *EnemySystem {
	return NewEnemySystem(w.ecs, w.grid, w.d, w.status, quietLogger())
}

// spawnWalker places an enemy at the centre of from, heading for the centre of to.
func (w *world) spawnWalker(typ *defs.EnemyType, from, to grid.Cell) types.EntityID {
	id := w.addEnemy(typ, w.grid.GridToWorld(from))
	w.ecs.Enemies[id].Goal = w.grid.GridToWorld(to)
	return id
}

func TestEnemyWalksToGoal(t *testing.T) {
	w := newWorld(5, 3)
	rec := record(w.d, event.EnemyReachedGoal, event.EnemyRemoved)
	s := newEnemySystem(w)
	id := w.spawnWalker(enemyType("grunt", 10, 10), grid.Cell{X: 0, Y: 1}, grid.Cell{X: 4, Y: 1})

	for i := 0; i < 100 && len(w.ecs.Enemies) > 0; i++ {
		s.Update(0.05)
	}
	if _, ok := w.ecs.Enemies[id]; ok {
		t.Fatalf("enemy never reached the goal")
	}
	want := []event.EventType{event.EnemyReachedGoal, event.EnemyRemoved}
	if !slices.Equal(rec.kinds(), want) {
		t.Errorf("events = %v, want %v", rec.kinds(), want)
	}
	if _, ok := w.ecs.Paths[id]; ok {
		t.Errorf("path component left behind")
	}
}

func TestEnemyStepNeverOvershoots(t *testing.T) {
	w := newWorld(5, 1)
	s := newEnemySystem(w)
	id := w.spawnWalker(enemyType("grunt", 10, 1), grid.Cell{X: 0, Y: 0}, grid.Cell{X: 4, Y: 0})

	s.Update(0.25)
	pos := w.ecs.Positions[id].Vec2
	if want := (grid.Vec2{X: 0.75, Y: 0.5}); pos.Dist(want) > 1e-9 {
		t.Errorf("position = %v, want %v", pos, want)
	}
	s.Update(1)
	pos = w.ecs.Positions[id].Vec2
	if want := (grid.Vec2{X: 1.5, Y: 0.5}); pos.Dist(want) > 1e-9 {
		t.Errorf("position = %v, want clamped to waypoint %v", pos, want)
	}
}

func TestEnemyRecomputesPathWhenGridChanges(t *testing.T) {
	w := newWorld(5, 3)
	s := newEnemySystem(w)
	id := w.spawnWalker(enemyType("grunt", 10, 0.1), grid.Cell{X: 0, Y: 1}, grid.Cell{X: 4, Y: 1})

	s.Update(0.01)
	path := w.ecs.Paths[id]
	if path.Version != w.grid.Version() || !path.Found {
		t.Fatalf("path not computed: %+v", path)
	}
	blocked := grid.Cell{X: 2, Y: 1}
	if !slices.Contains(path.Points, w.grid.GridToWorld(blocked)) {
		t.Fatalf("straight path expected through %v, got %v", blocked, path.Points)
	}

	w.grid.SetBlocked(blocked, true)
	s.Update(0.01)
	path = w.ecs.Paths[id]
	if path.Version != w.grid.Version() {
		t.Fatalf("path version %d, grid version %d", path.Version, w.grid.Version())
	}
	for _, p := range path.Points {
		if w.grid.WorldToGrid(p) == blocked {
			t.Fatalf("recomputed path still crosses %v: %v", blocked, path.Points)
		}
	}
}

func TestEnemyHoldsWhenGoalUnreachable(t *testing.T) {
	w := newWorld(5, 1)
	s := newEnemySystem(w)
	id := w.spawnWalker(enemyType("grunt", 10, 5), grid.Cell{X: 0, Y: 0}, grid.Cell{X: 4, Y: 0})
	w.grid.SetBlocked(grid.Cell{X: 2, Y: 0}, true)

	start := w.ecs.Positions[id].Vec2
	s.Update(0.1)
	if w.ecs.Paths[id].Found {
		t.Fatalf("path found through a sealed lane")
	}
	if got := w.ecs.Positions[id].Vec2; got != start {
		t.Errorf("enemy moved to %v without a path", got)
	}

	w.grid.SetBlocked(grid.Cell{X: 2, Y: 0}, false)
	s.Update(0.1)
	if !w.ecs.Paths[id].Found || w.ecs.Positions[id].Vec2 == start {
		t.Errorf("enemy should resume once the lane reopens")
	}
}

func TestEnemyWaitsForSpawnDelay(t *testing.T) {
	w := newWorld(5, 1)
	s := newEnemySystem(w)
	id := w.spawnWalker(enemyType("grunt", 10, 1), grid.Cell{X: 0, Y: 0}, grid.Cell{X: 4, Y: 0})
	w.ecs.Enemies[id].SpawnDelay = 1
	start := w.ecs.Positions[id].Vec2

	s.Update(0.5)
	if w.ecs.Positions[id].Vec2 != start || w.ecs.Enemies[id].Active() {
		t.Fatalf("enemy moved during its spawn delay")
	}
	s.Update(0.5)
	if !w.ecs.Enemies[id].Active() {
		t.Errorf("enemy still inactive after its delay")
	}
}

func TestEnemySlowHalvesSpeedAndExpires(t *testing.T) {
	w := newWorld(5, 1)
	s := newEnemySystem(w)
	id := w.spawnWalker(enemyType("grunt", 10, 1), grid.Cell{X: 0, Y: 0}, grid.Cell{X: 4, Y: 0})
	w.status.ApplySlow(id, 0.5, 0.3)

	s.Update(0.2)
	if x := w.ecs.Positions[id].X; x < 0.599 || x > 0.601 {
		t.Errorf("x = %v, want 0.6 at half speed", x)
	}
	s.Update(0.2)
	if _, ok := w.ecs.SlowEffects[id]; ok {
		t.Errorf("slow should have expired")
	}
	if w.status.SpeedMultiplier(id) != 1 {
		t.Errorf("speed multiplier not restored")
	}
}

func TestSapperSiegesNearestTower(t *testing.T) {
	w := newWorld(5, 3)
	rec := record(w.d, event.TowerDestroyed)
	s := newEnemySystem(w)
	sapper, _ := defaultCatalog(t).Enemy("sapper")

	wall := towerType(defs.TowerDefinition{ID: "wall", MaxHealth: 100, Armor: 2})
	far := w.addTower(wall, grid.Cell{X: 2, Y: 0})
	near := w.addTower(wall, grid.Cell{X: 1, Y: 1})
	id := w.spawnWalker(sapper, grid.Cell{X: 0, Y: 1}, grid.Cell{X: 4, Y: 1})
	start := w.ecs.Positions[id].Vec2

	s.Update(0.1)
	if w.ecs.Enemies[id].AttackTarget != near {
		t.Fatalf("target = %d, want nearest tower %d", w.ecs.Enemies[id].AttackTarget, near)
	}
	if h := w.ecs.Towers[near].Health; h != 90 {
		t.Errorf("tower health = %v, want 100-(12-2)", h)
	}
	if w.ecs.Towers[far].Health != 100 {
		t.Errorf("far tower hit")
	}
	if w.ecs.Positions[id].Vec2 != start {
		t.Errorf("sieging enemy moved")
	}

	s.Update(1.0)
	if h := w.ecs.Towers[near].Health; h != 90 {
		t.Errorf("hit before the interval elapsed: %v", h)
	}
	for i := 0; i < 20; i++ {
		s.Update(1.5)
	}
	if _, ok := w.ecs.Towers[near]; ok {
		t.Fatalf("tower should have been destroyed")
	}
	if w.grid.IsBlocked(grid.Cell{X: 1, Y: 1}) {
		t.Errorf("destroyed tower cell still blocked")
	}
	if rec.count(event.TowerDestroyed) < 1 {
		t.Errorf("no TowerDestroyed event")
	}
}
