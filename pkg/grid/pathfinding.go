// pkg/grid/pathfinding.go
package grid

// PathTolerance is how close the last cell centre must be to the requested
// goal for the goal point to be considered already present in the path.
const PathTolerance = 1e-4

// neighborOffsets fixes the exploration order, which in turn fixes tie-breaking
// between equally short paths.
var neighborOffsets = [4]Cell{
	{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
}

// walkable: inside the grid and either free or the goal itself, so a goal placed
// on a blocked cell stays reachable.
func (g *Grid) walkable(c, goal Cell, avoid *Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	if c == goal {
		return true
	}
	if avoid != nil && c == *avoid {
		return false
	}
	return !g.IsBlocked(c)
}

// search runs a breadth-first search from start to goal and returns the
// predecessor map, or nil when the goal is unreachable. avoid, when set, is
// treated as blocked.
func (g *Grid) search(start, goal Cell, avoid *Cell) map[Cell]Cell {
	cameFrom := map[Cell]Cell{start: start}
	if start == goal {
		return cameFrom
	}
	queue := []Cell{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, off := range neighborOffsets {
			next := Cell{X: current.X + off.X, Y: current.Y + off.Y}
			if _, seen := cameFrom[next]; seen {
				continue
			}
			if !g.walkable(next, goal, avoid) {
				continue
			}
			cameFrom[next] = current
			if next == goal {
				return cameFrom
			}
			queue = append(queue, next)
		}
	}
	return nil
}

// FindPath returns the world-space waypoints from start to goal along a
// minimum-hop 4-connected route. The start cell is not included; the exact goal
// point is appended when it differs from the last cell centre. Out-of-bounds
// endpoints are clamped. found is false when the goal cannot be reached; callers
// should hold position in that case.
func (g *Grid) FindPath(start, goal Vec2) (path []Vec2, found bool) {
	startCell := g.Clamp(g.WorldToGrid(start))
	goalCell := g.Clamp(g.WorldToGrid(goal))

	cameFrom := g.search(startCell, goalCell, nil)
	if cameFrom == nil {
		return nil, false
	}

	cells := []Cell{}
	for c := goalCell; c != startCell; c = cameFrom[c] {
		cells = append(cells, c)
	}
	// Разворачиваем: от старта к цели
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}

	path = make([]Vec2, 0, len(cells)+1)
	for _, c := range cells {
		path = append(path, g.GridToWorld(c))
	}
	last := g.GridToWorld(startCell)
	if len(path) > 0 {
		last = path[len(path)-1]
	}
	if last.Dist(goal) > PathTolerance {
		path = append(path, goal)
	}
	return path, true
}

// HasPath reports whether goal is reachable from start over free cells.
func (g *Grid) HasPath(start, goal Cell) bool {
	return g.search(g.Clamp(start), g.Clamp(goal), nil) != nil
}

// HasPathAvoiding reports whether goal stays reachable if avoid were blocked.
// The grid is not modified and listeners are not notified.
func (g *Grid) HasPathAvoiding(start, goal, avoid Cell) bool {
	return g.search(g.Clamp(start), g.Clamp(goal), &avoid) != nil
}
