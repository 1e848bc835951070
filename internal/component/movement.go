// internal/component/movement.go
package component

import "go-lane-defense/pkg/grid"

// Position: world position of an entity.
type Position struct {
	grid.Vec2
}

// Path: waypoints an enemy follows and the grid version they were computed at.
type Path struct {
	Points  []grid.Vec2
	Cursor  int
	Version uint64
	Found   bool
}

// Current returns the waypoint under the cursor.
func (p *Path) Current() (grid.Vec2, bool) {
	if p == nil || p.Cursor >= len(p.Points) {
		return grid.Vec2{}, false
	}
	return p.Points[p.Cursor], true
}

// Remaining returns the waypoints not yet reached.
func (p *Path) Remaining() []grid.Vec2 {
	if p == nil || p.Cursor >= len(p.Points) {
		return nil
	}
	return p.Points[p.Cursor:]
}
