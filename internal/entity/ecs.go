// internal/entity/ecs.go
package entity

import (
	"slices"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

type ECS struct {
	GameTime    float64
	NextID      types.EntityID
	Positions   map[types.EntityID]*component.Position
	Enemies     map[types.EntityID]*component.Enemy
	Paths       map[types.EntityID]*component.Path
	SlowEffects map[types.EntityID]*component.SlowEffect
	Towers      map[types.EntityID]*component.Tower
	Combats     map[types.EntityID]*component.Combat
	Upgrades    map[types.EntityID]*component.Upgrade
	Projectiles map[types.EntityID]*component.Projectile

	towerCells map[grid.Cell]types.EntityID
}

func NewECS() *ECS {
	return &ECS{
		NextID:      1,
		Positions:   make(map[types.EntityID]*component.Position),
		Enemies:     make(map[types.EntityID]*component.Enemy),
		Paths:       make(map[types.EntityID]*component.Path),
		SlowEffects: make(map[types.EntityID]*component.SlowEffect),
		Towers:      make(map[types.EntityID]*component.Tower),
		Combats:     make(map[types.EntityID]*component.Combat),
		Upgrades:    make(map[types.EntityID]*component.Upgrade),
		Projectiles: make(map[types.EntityID]*component.Projectile),
		towerCells:  make(map[grid.Cell]types.EntityID),
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// SortedIDs returns the keys of m in ascending order. Systems iterate through
// it so that ties and side effects resolve the same way every run.
func SortedIDs[V any](m map[types.EntityID]V) []types.EntityID {
	ids := make([]types.EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// AddTower registers a tower and indexes its cell.
func (ecs *ECS) AddTower(id types.EntityID, tower *component.Tower, pos grid.Vec2) {
	ecs.Towers[id] = tower
	ecs.Positions[id] = &component.Position{Vec2: pos}
	ecs.towerCells[tower.Cell] = id
}

// TowerAt returns the tower occupying cell.
func (ecs *ECS) TowerAt(cell grid.Cell) (types.EntityID, bool) {
	id, ok := ecs.towerCells[cell]
	return id, ok
}

// RemoveTower deletes a tower and every component it owns. It returns false if
// the tower was already gone.
func (ecs *ECS) RemoveTower(id types.EntityID) (*component.Tower, bool) {
	tower, ok := ecs.Towers[id]
	if !ok {
		return nil, false
	}
	if ecs.towerCells[tower.Cell] == id {
		delete(ecs.towerCells, tower.Cell)
	}
	delete(ecs.Towers, id)
	delete(ecs.Positions, id)
	delete(ecs.Combats, id)
	delete(ecs.Upgrades, id)
	return tower, true
}

// RemoveEnemy deletes an enemy and every component it owns. It returns false if
// the enemy was already gone.
func (ecs *ECS) RemoveEnemy(id types.EntityID) (*component.Enemy, bool) {
	enemy, ok := ecs.Enemies[id]
	if !ok {
		return nil, false
	}
	delete(ecs.Enemies, id)
	delete(ecs.Positions, id)
	delete(ecs.Paths, id)
	delete(ecs.SlowEffects, id)
	return enemy, true
}

// RemoveProjectile deletes a projectile.
func (ecs *ECS) RemoveProjectile(id types.EntityID) {
	delete(ecs.Projectiles, id)
	delete(ecs.Positions, id)
}

// Clear drops every entity.
func (ecs *ECS) Clear() {
	next := ecs.NextID
	*ecs = *NewECS()
	ecs.NextID = next
}
