// internal/app/tower_management.go
package app

import (
	"errors"
	"math"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/system"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

var (
	ErrUnknownTowerType = errors.New("unknown tower type")
	ErrNotBuildable     = errors.New("tower type is only made by fusion")
	ErrOutOfBounds      = errors.New("cell is outside the grid")
	ErrReservedCell     = errors.New("cell is reserved for spawn or goal")
	ErrCellOccupied     = errors.New("cell is occupied")
	ErrPathBlocked      = errors.New("placement would block the lane")
)

// PlaceTower builds a tower of typeID on cell and pays for it.
func (g *Game) PlaceTower(cell grid.Cell, typeID string) (types.EntityID, error) {
	if g.Over() {
		return 0, ErrMatchOver
	}
	towerType, ok := g.Catalog.Tower(typeID)
	if !ok {
		return 0, ErrUnknownTowerType
	}
	if g.Catalog.IsFusionResult(typeID) {
		return 0, ErrNotBuildable
	}
	if err := g.canPlaceTower(cell); err != nil {
		return 0, err
	}
	if !g.Economy.TrySpend(towerType.Cost) {
		return 0, system.ErrInsufficientGold
	}

	id := g.createTowerEntity(cell, towerType)
	g.Grid.SetBlocked(cell, true)
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerPlaced, Data: event.TowerData{ID: id, TypeID: towerType.ID, Cell: cell}})
	return id, nil
}

// CanPlaceTower reports whether cell would accept a tower, ignoring cost.
func (g *Game) CanPlaceTower(cell grid.Cell) bool {
	return g.canPlaceTower(cell) == nil
}

func (g *Game) canPlaceTower(cell grid.Cell) error {
	if !g.Grid.InBounds(cell) {
		return ErrOutOfBounds
	}
	if cell == g.spawn || cell == g.goal {
		return ErrReservedCell
	}
	if _, taken := g.ECS.TowerAt(cell); taken || !g.Grid.IsCellFree(cell) {
		return ErrCellOccupied
	}
	if g.isPathBlockedBy(cell) {
		return ErrPathBlocked
	}
	return nil
}

// isPathBlockedBy проверяет, перекроет ли башня на cell путь от входа к выходу.
func (g *Game) isPathBlockedBy(cell grid.Cell) bool {
	return !g.Grid.HasPathAvoiding(g.spawn, g.goal, cell)
}

func (g *Game) createTowerEntity(cell grid.Cell, towerType *defs.TowerType) types.EntityID {
	id := g.ECS.NewEntity()
	tower := &component.Tower{
		Type:   towerType,
		Cell:   cell,
		Health: towerType.MaxHealth,
	}
	g.ECS.AddTower(id, tower, g.Grid.GridToWorld(cell))
	system.SyncCombat(g.ECS, id, tower)
	return id
}

// SellTower removes an idle tower and refunds part of its base cost.
func (g *Game) SellTower(id types.EntityID) (int, error) {
	if g.Over() {
		return 0, ErrMatchOver
	}
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return 0, system.ErrUnknownTower
	}
	if g.UpgradeSystem.Busy(id) {
		return 0, system.ErrTowerBusy
	}
	refund := int(math.Floor(float64(tower.Type.Cost) * g.Settings.SellRefundRatio))

	g.ECS.RemoveTower(id)
	g.Grid.SetBlocked(tower.Cell, false)
	g.Economy.AddGold(refund)
	g.EventDispatcher.Dispatch(event.Event{Type: event.TowerSold, Data: event.TowerData{ID: id, TypeID: tower.Type.ID, Cell: tower.Cell}})
	return refund, nil
}

// UpgradeTower starts the next tier on a tower.
func (g *Game) UpgradeTower(id types.EntityID) error {
	if g.Over() {
		return ErrMatchOver
	}
	return g.UpgradeSystem.BeginUpgrade(id)
}

// RepairTower starts a paid full repair.
func (g *Game) RepairTower(id types.EntityID) error {
	if g.Over() {
		return ErrMatchOver
	}
	return g.UpgradeSystem.BeginRepair(id)
}

// FuseTowers merges b into a and returns the resulting type.
func (g *Game) FuseTowers(a, b types.EntityID) (*defs.TowerType, error) {
	if g.Over() {
		return nil, ErrMatchOver
	}
	return g.FusionSystem.TryMerge(a, b)
}

// RequestNextWave asks the scheduler to start the next countdown.
func (g *Game) RequestNextWave() bool {
	if g.Over() {
		return false
	}
	return g.WaveSystem.RequestNextWave()
}
