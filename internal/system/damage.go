// internal/system/damage.go
package system

import (
	"math"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

// FinalDamage снимает броню, затем умножает на сопротивление. Никогда не меньше нуля.
func FinalDamage(amount, armor, resistance float64) float64 {
	return math.Max(0, amount-armor) * resistance
}

// ApplyDamage наносит урон врагу. Урон считается в порядке броня → сопротивление стилю.
// It returns true when the hit killed the enemy; the kill is announced with
// EnemyKilled followed by EnemyRemoved. Hitting an enemy that is already gone
// is a no-op.
func ApplyDamage(ecs *entity.ECS, d *event.Dispatcher, id types.EntityID, amount float64, style defs.AttackStyle, killer types.EntityID) bool {
	enemy, ok := ecs.Enemies[id]
	if !ok || amount <= 0 {
		return false
	}
	enemy.Health -= FinalDamage(amount, enemy.Type.Armor, enemy.Type.Resistance(style))
	if enemy.Health > 0 {
		return false
	}

	ecs.RemoveEnemy(id)
	if tower, ok := ecs.Towers[killer]; ok {
		tower.Kills++
	}
	d.Dispatch(event.Event{Type: event.EnemyKilled, Data: event.EnemyKilledData{
		ID:      id,
		TypeID:  enemy.Type.ID,
		Gold:    enemy.Type.Gold,
		Essence: enemy.Type.Essence,
		Killer:  killer,
	}})
	d.Dispatch(event.Event{Type: event.EnemyRemoved, Data: event.EnemyRemovedData{ID: id}})
	return true
}

// strike is one hit from a tower or its projectile: damage, then the slow if
// the enemy survived.
func strike(ecs *entity.ECS, d *event.Dispatcher, status *StatusEffectSystem, killer, target types.EntityID, stats defs.CombatStats) {
	if ApplyDamage(ecs, d, target, stats.Damage, stats.Style, killer) {
		return
	}
	if stats.SlowPercent > 0 {
		status.ApplySlow(target, stats.SlowPercent, stats.SlowDuration)
	}
}

// DamageTower applies a siege hit to a tower. Tower armor is a flat reduction.
// It returns true when the tower was destroyed.
func DamageTower(ecs *entity.ECS, g *grid.Grid, d *event.Dispatcher, id types.EntityID, amount float64) bool {
	tower, ok := ecs.Towers[id]
	if !ok {
		return false
	}
	tower.Health -= FinalDamage(amount, tower.Type.Armor, 1)
	if tower.Health > 0 {
		return false
	}
	tower.Health = 0
	DestroyTower(ecs, g, d, id)
	return true
}

// DestroyTower removes a tower, frees its cell and announces TowerDestroyed.
func DestroyTower(ecs *entity.ECS, g *grid.Grid, d *event.Dispatcher, id types.EntityID) bool {
	tower, ok := removeTower(ecs, g, id)
	if !ok {
		return false
	}
	d.Dispatch(event.Event{Type: event.TowerDestroyed, Data: event.TowerData{ID: id, TypeID: tower.Type.ID, Cell: tower.Cell}})
	return true
}

// removeTower drops the tower, releases any fusion partner it reserved and
// unblocks its cell. Pending timers go with it.
func removeTower(ecs *entity.ECS, g *grid.Grid, id types.EntityID) (*component.Tower, bool) {
	if up, ok := ecs.Upgrades[id]; ok && up.Partner != 0 {
		if partner, ok := ecs.Towers[up.Partner]; ok && partner.LockedBy == id {
			partner.LockedBy = 0
		}
	}
	tower, ok := ecs.RemoveTower(id)
	if !ok {
		return nil, false
	}
	if g != nil {
		g.SetBlocked(tower.Cell, false)
	}
	return tower, true
}
