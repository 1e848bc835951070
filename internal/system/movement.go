// internal/system/movement.go
package system

import (
	"go-lane-defense/internal/component"
	"go-lane-defense/internal/config"
	"go-lane-defense/internal/types"
)

// refreshPath пересчитывает путь, если сетка изменилась с момента последнего расчёта.
// An unreachable goal leaves an empty, not-found path and the enemy holds position.
func (s *EnemySystem) refreshPath(id types.EntityID, enemy *component.Enemy, pos *component.Position) *component.Path {
	path, ok := s.ecs.Paths[id]
	if ok && path.Version == s.grid.Version() {
		return path
	}
	if !ok {
		path = &component.Path{}
		s.ecs.Paths[id] = path
	}
	points, found := s.grid.FindPath(pos.Vec2, enemy.Goal)
	path.Points = points
	path.Cursor = 0
	path.Found = found
	path.Version = s.grid.Version()
	return path
}

// advance moves the enemy along its path by speed × slow × dt without
// overshooting the current waypoint. It returns true when the enemy reached
// the goal and was removed.
func (s *EnemySystem) advance(id types.EntityID, enemy *component.Enemy, pos *component.Position, path *component.Path, deltaTime float64) bool {
	if !path.Found {
		return false
	}
	skipReached(path, pos)

	target, ok := path.Current()
	if !ok {
		target = enemy.Goal
	}
	step := enemy.Type.Speed * s.status.SpeedMultiplier(id) * deltaTime
	if dist := pos.Dist(target); dist > 0 && step > 0 {
		if step > dist {
			step = dist
		}
		pos.Vec2 = pos.Add(target.Sub(pos.Vec2).Scale(step / dist))
	}
	skipReached(path, pos)

	if path.Cursor < len(path.Points) {
		return false
	}
	if pos.Dist(enemy.Goal) > config.WaypointThreshold {
		return false
	}
	s.reachGoal(id, enemy)
	return true
}

// skipReached двигает курсор через все точки, до которых уже дошли
// (zero-length segments included).
func skipReached(path *component.Path, pos *component.Position) {
	for path.Cursor < len(path.Points) && pos.Dist(path.Points[path.Cursor]) <= config.WaypointThreshold {
		path.Cursor++
	}
}
