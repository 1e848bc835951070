// pkg/grid/grid.go
package grid

import (
	"math"

	"go-lane-defense/pkg/utils"
)

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// Vec2 is a world-space point.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * f.
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between two points.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// ChangeListener is notified synchronously when a cell toggles its blocked state.
type ChangeListener func(cell Cell, blocked bool)

// Grid is the playfield: fixed bounds, a world transform and a blocked-cell set.
// The blocked set is the only mutable state.
type Grid struct {
	Width, Height int
	Origin        Vec2
	CellSize      float64

	blocked   map[Cell]struct{}
	version   uint64
	listeners []ChangeListener
}

// New creates a grid with every cell free.
func New(width, height int, origin Vec2, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		Width:    width,
		Height:   height,
		Origin:   origin,
		CellSize: cellSize,
		blocked:  make(map[Cell]struct{}),
		version:  1,
	}
}

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.Width && c.Y < g.Height
}

// Clamp moves c to the nearest in-bounds cell.
func (g *Grid) Clamp(c Cell) Cell {
	return Cell{
		X: utils.ClampInt(c.X, 0, g.Width-1),
		Y: utils.ClampInt(c.Y, 0, g.Height-1),
	}
}

// IsBlocked reports whether c is in the blocked set.
func (g *Grid) IsBlocked(c Cell) bool {
	_, ok := g.blocked[c]
	return ok
}

// IsCellFree reports whether c is inside the grid and not blocked.
func (g *Grid) IsCellFree(c Cell) bool {
	return g.InBounds(c) && !g.IsBlocked(c)
}

// SetBlocked updates the blocked state of c. It returns true and notifies
// listeners only when membership actually changed.
func (g *Grid) SetBlocked(c Cell, blocked bool) bool {
	if !g.InBounds(c) || g.IsBlocked(c) == blocked {
		return false
	}
	if blocked {
		g.blocked[c] = struct{}{}
	} else {
		delete(g.blocked, c)
	}
	g.version++
	for _, l := range g.listeners {
		l(c, blocked)
	}
	return true
}

// Version increases by one on every effective SetBlocked call.
// Movers compare it against the version their path was computed at.
func (g *Grid) Version() uint64 {
	return g.version
}

// OnChange registers a listener for blocked-state toggles.
func (g *Grid) OnChange(l ChangeListener) {
	g.listeners = append(g.listeners, l)
}

// ClearListeners drops every registered change listener.
func (g *Grid) ClearListeners() {
	g.listeners = nil
}

// BlockedCells returns the number of blocked cells.
func (g *Grid) BlockedCells() int {
	return len(g.blocked)
}

// GridToWorld returns the world position of the centre of c.
func (g *Grid) GridToWorld(c Cell) Vec2 {
	return Vec2{
		X: g.Origin.X + (float64(c.X)+0.5)*g.CellSize,
		Y: g.Origin.Y + (float64(c.Y)+0.5)*g.CellSize,
	}
}

// WorldToGrid returns the cell containing p. The result may be out of bounds.
func (g *Grid) WorldToGrid(p Vec2) Cell {
	return Cell{
		X: int(math.Floor((p.X - g.Origin.X) / g.CellSize)),
		Y: int(math.Floor((p.Y - g.Origin.Y) / g.CellSize)),
	}
}
