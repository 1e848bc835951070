package grid

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

type randomGrid struct {
	g           *Grid
	start, goal Cell
}

func drawGrid(t *rapid.T) randomGrid {
	w := rapid.IntRange(1, 10).Draw(t, "width")
	h := rapid.IntRange(1, 10).Draw(t, "height")
	size := rapid.SampledFrom([]float64{0.5, 1, 2}).Draw(t, "cellSize")
	origin := Vec2{
		X: rapid.Float64Range(-5, 5).Draw(t, "originX"),
		Y: rapid.Float64Range(-5, 5).Draw(t, "originY"),
	}
	g := New(w, h, origin, size)
	density := rapid.Float64Range(0, 0.5).Draw(t, "density")
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rapid.Float64Range(0, 1).Draw(t, "roll") < density {
				g.SetBlocked(Cell{x, y}, true)
			}
		}
	}
	start := Cell{rapid.IntRange(0, w-1).Draw(t, "sx"), rapid.IntRange(0, h-1).Draw(t, "sy")}
	goal := Cell{rapid.IntRange(0, w-1).Draw(t, "gx"), rapid.IntRange(0, h-1).Draw(t, "gy")}
	return randomGrid{g: g, start: start, goal: goal}
}

// reachable is an independent flood fill used as the oracle.
func reachable(g *Grid, start, goal Cell) (int, bool) {
	dist := map[Cell]int{start: 0}
	queue := []Cell{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == goal {
			return dist[c], true
		}
		for _, n := range []Cell{{c.X + 1, c.Y}, {c.X - 1, c.Y}, {c.X, c.Y + 1}, {c.X, c.Y - 1}} {
			if _, seen := dist[n]; seen || !g.InBounds(n) {
				continue
			}
			if n != goal && g.IsBlocked(n) {
				continue
			}
			dist[n] = dist[c] + 1
			queue = append(queue, n)
		}
	}
	return 0, false
}

func TestFindPathProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rg := drawGrid(t)
		g := rg.g
		startPos, goalPos := g.GridToWorld(rg.start), g.GridToWorld(rg.goal)

		path, found := g.FindPath(startPos, goalPos)
		hops, want := reachable(g, rg.start, rg.goal)
		if found != want {
			t.Fatalf("found = %v, oracle says %v", found, want)
		}
		if !found {
			return
		}
		if len(path) != hops {
			t.Fatalf("len(path) = %d, want minimum hop count %d", len(path), hops)
		}

		prev := startPos
		for i, p := range path {
			dx, dy := math.Abs(p.X-prev.X), math.Abs(p.Y-prev.Y)
			axisStep := (math.Abs(dx-g.CellSize) < 1e-9 && dy < 1e-9) || (math.Abs(dy-g.CellSize) < 1e-9 && dx < 1e-9)
			if !axisStep {
				t.Fatalf("step %d from %v to %v is not one cell along one axis", i, prev, p)
			}
			if c := g.WorldToGrid(p); c != rg.goal && g.IsBlocked(c) {
				t.Fatalf("step %d enters blocked cell %v", i, c)
			}
			prev = p
		}
		if len(path) > 0 && path[len(path)-1].Dist(goalPos) > PathTolerance {
			t.Fatalf("last point %v != goal %v", path[len(path)-1], goalPos)
		}
	})
}

func TestFindPathAvoidsNewlyBlockedCell(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rg := drawGrid(t)
		g := rg.g
		startPos, goalPos := g.GridToWorld(rg.start), g.GridToWorld(rg.goal)

		path, found := g.FindPath(startPos, goalPos)
		if !found || len(path) < 2 {
			return
		}
		i := rapid.IntRange(0, len(path)-2).Draw(t, "blockIndex")
		blocked := g.WorldToGrid(path[i])
		before := g.Version()
		if !g.SetBlocked(blocked, true) {
			t.Fatalf("cell %v on the path was already blocked", blocked)
		}
		if g.Version() != before+1 {
			t.Fatalf("version did not advance")
		}

		again, found := g.FindPath(startPos, goalPos)
		if !found {
			return
		}
		for _, p := range again {
			if g.WorldToGrid(p) == blocked {
				t.Fatalf("recomputed path still crosses %v", blocked)
			}
		}
	})
}

func TestSetBlockedIdempotentProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := New(6, 6, Vec2{}, 1)
		calls := 0
		g.OnChange(func(Cell, bool) { calls++ })
		c := Cell{rapid.IntRange(0, 5).Draw(t, "x"), rapid.IntRange(0, 5).Draw(t, "y")}
		blocked := rapid.Bool().Draw(t, "blocked")
		repeats := rapid.IntRange(1, 5).Draw(t, "repeats")

		for i := 0; i < repeats; i++ {
			g.SetBlocked(c, blocked)
		}
		want := 0
		if blocked {
			want = 1
		}
		if calls != want {
			t.Fatalf("calls = %d, want %d", calls, want)
		}
	})
}
