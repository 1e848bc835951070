// internal/system/enemy.go
package system

import (
	"log/slog"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

// EnemySystem runs every enemy once per tick: spawn delay, slow decay, path
// refresh, siege, then movement.
type EnemySystem struct {
	ecs             *entity.ECS
	grid            *grid.Grid
	eventDispatcher *event.Dispatcher
	status          *StatusEffectSystem
	logger          *slog.Logger
}

func NewEnemySystem(ecs *entity.ECS, g *grid.Grid, eventDispatcher *event.Dispatcher, status *StatusEffectSystem, logger *slog.Logger) *EnemySystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &EnemySystem{
		ecs:             ecs,
		grid:            g,
		eventDispatcher: eventDispatcher,
		status:          status,
		logger:          logger,
	}
}

func (s *EnemySystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Enemies) {
		enemy, ok := s.ecs.Enemies[id]
		if !ok {
			continue // убит раньше в этом же тике
		}
		if enemy.SpawnDelay > 0 {
			enemy.SpawnDelay -= deltaTime
			if enemy.SpawnDelay > 0 {
				continue
			}
		}

		s.status.Decay(id, deltaTime)

		pos, ok := s.ecs.Positions[id]
		if !ok || s.grid == nil {
			continue
		}
		path := s.refreshPath(id, enemy, pos)

		if s.siege(id, enemy, pos, deltaTime) {
			continue
		}
		s.advance(id, enemy, pos, path, deltaTime)
	}
}

// siege lets tower-attacking enemies stop and hit the nearest tower in range.
// The cooldown ticks down every frame, before the target check. It returns
// true while the enemy is attacking, which suspends movement for the tick.
func (s *EnemySystem) siege(id types.EntityID, enemy *component.Enemy, pos *component.Position, deltaTime float64) bool {
	if !enemy.Type.CanAttackTowers() {
		return false
	}
	attack := enemy.Type.TowerAttack
	if enemy.AttackCooldown > 0 {
		enemy.AttackCooldown -= deltaTime
	}

	target := s.nearestTower(pos, attack.Range)
	enemy.AttackTarget = target
	if target == 0 {
		return false
	}
	if enemy.AttackCooldown <= 0 {
		if DamageTower(s.ecs, s.grid, s.eventDispatcher, target, attack.Damage) {
			s.logger.Debug("tower destroyed by siege", "enemy", id, "tower", target)
		}
		enemy.AttackCooldown = attack.Interval
	}
	return true
}

func (s *EnemySystem) nearestTower(pos *component.Position, attackRange float64) types.EntityID {
	var best types.EntityID
	bestDist := attackRange
	for _, id := range entity.SortedIDs(s.ecs.Towers) {
		towerPos, ok := s.ecs.Positions[id]
		if !ok {
			continue
		}
		if d := pos.Dist(towerPos.Vec2); d <= bestDist && (best == 0 || d < bestDist) {
			best, bestDist = id, d
		}
	}
	return best
}

func (s *EnemySystem) reachGoal(id types.EntityID, enemy *component.Enemy) {
	s.ecs.RemoveEnemy(id)
	s.eventDispatcher.Dispatch(event.Event{Type: event.EnemyReachedGoal, Data: event.EnemyReachedGoalData{ID: id, TypeID: enemy.Type.ID}})
	s.eventDispatcher.Dispatch(event.Event{Type: event.EnemyRemoved, Data: event.EnemyRemovedData{ID: id}})
}
