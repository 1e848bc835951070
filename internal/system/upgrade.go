// internal/system/upgrade.go
package system

import (
	"errors"
	"log/slog"
	"math"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

var (
	ErrUnknownTower     = errors.New("tower not found")
	ErrTowerBusy        = errors.New("tower is busy")
	ErrNoUpgradeTier    = errors.New("no upgrade tier left")
	ErrFullHealth       = errors.New("tower is at full health")
	ErrInsufficientGold = errors.New("not enough gold")
)

// UpgradeSystem ведёт таймеры улучшения, ремонта и превращения башен.
// A tower has at most one running timer; destroying the tower drops it.
type UpgradeSystem struct {
	ecs             *entity.ECS
	grid            *grid.Grid
	eventDispatcher *event.Dispatcher
	wallet          Wallet
	logger          *slog.Logger
}

func NewUpgradeSystem(ecs *entity.ECS, g *grid.Grid, eventDispatcher *event.Dispatcher, wallet Wallet, logger *slog.Logger) *UpgradeSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &UpgradeSystem{
		ecs:             ecs,
		grid:            g,
		eventDispatcher: eventDispatcher,
		wallet:          wallet,
		logger:          logger,
	}
}

// Busy reports whether the tower runs a timer or is reserved by a fusion.
func (s *UpgradeSystem) Busy(id types.EntityID) bool {
	if _, ok := s.ecs.Upgrades[id]; ok {
		return true
	}
	tower, ok := s.ecs.Towers[id]
	return ok && tower.LockedBy != 0
}

// UpgradeCost returns the price of the next tier.
func (s *UpgradeSystem) UpgradeCost(id types.EntityID) (int, error) {
	tower, ok := s.ecs.Towers[id]
	if !ok {
		return 0, ErrUnknownTower
	}
	tier, ok := tower.Type.NextTier(tower.Tier)
	if !ok {
		return 0, ErrNoUpgradeTier
	}
	return tier.Cost, nil
}

// RepairCost: стоимость ремонта: недостающее здоровье × цена за единицу, с округлением вверх.
func (s *UpgradeSystem) RepairCost(id types.EntityID) (int, error) {
	tower, ok := s.ecs.Towers[id]
	if !ok {
		return 0, ErrUnknownTower
	}
	missing := tower.Missing()
	if missing <= 0 {
		return 0, ErrFullHealth
	}
	return int(math.Ceil(missing * tower.Type.RepairCostPerHP)), nil
}

// BeginUpgrade pays for and starts the next tier.
func (s *UpgradeSystem) BeginUpgrade(id types.EntityID) error {
	tower, ok := s.ecs.Towers[id]
	if !ok {
		return ErrUnknownTower
	}
	if s.Busy(id) {
		return ErrTowerBusy
	}
	tier, ok := tower.Type.NextTier(tower.Tier)
	if !ok {
		return ErrNoUpgradeTier
	}
	if !s.wallet.TrySpend(tier.Cost) {
		return ErrInsufficientGold
	}
	s.start(id, &component.Upgrade{Mode: component.UpgradeTier, Remaining: tier.Time, Duration: tier.Time})
	return nil
}

// BeginRepair pays for and starts a full repair.
func (s *UpgradeSystem) BeginRepair(id types.EntityID) error {
	tower, ok := s.ecs.Towers[id]
	if !ok {
		return ErrUnknownTower
	}
	if s.Busy(id) {
		return ErrTowerBusy
	}
	cost, err := s.RepairCost(id)
	if err != nil {
		return err
	}
	if !s.wallet.TrySpend(cost) {
		return ErrInsufficientGold
	}
	seconds := tower.Type.RepairTime
	s.start(id, &component.Upgrade{Mode: component.UpgradeRepair, Remaining: seconds, Duration: seconds})
	return nil
}

// BeginMorph starts turning the tower into another type. The tier index is not
// advanced. partner, if set, is destroyed when the morph completes.
func (s *UpgradeSystem) BeginMorph(id types.EntityID, seconds float64, into *defs.TowerType, partner types.EntityID) error {
	if _, ok := s.ecs.Towers[id]; !ok {
		return ErrUnknownTower
	}
	if into == nil {
		return ErrNoRecipe
	}
	if s.Busy(id) {
		return ErrTowerBusy
	}
	s.start(id, &component.Upgrade{
		Mode:      component.UpgradeMorph,
		Remaining: seconds,
		Duration:  seconds,
		MorphInto: into,
		Partner:   partner,
	})
	return nil
}

func (s *UpgradeSystem) start(id types.EntityID, up *component.Upgrade) {
	s.ecs.Upgrades[id] = up
	if up.Remaining <= 0 {
		s.complete(id, up)
	}
}

func (s *UpgradeSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Upgrades) {
		up, ok := s.ecs.Upgrades[id]
		if !ok {
			continue
		}
		up.Remaining -= deltaTime
		if up.Remaining <= 0 {
			s.complete(id, up)
		}
	}
}

func (s *UpgradeSystem) complete(id types.EntityID, up *component.Upgrade) {
	delete(s.ecs.Upgrades, id)
	tower, ok := s.ecs.Towers[id]
	if !ok {
		return
	}
	switch up.Mode {
	case component.UpgradeTier:
		tower.Tier++
		s.eventDispatcher.Dispatch(event.Event{Type: event.UpgradeCompleted, Data: event.UpgradeData{ID: id, Tier: tower.Tier}})
	case component.UpgradeRepair:
		tower.Health = tower.MaxHealth()
		s.eventDispatcher.Dispatch(event.Event{Type: event.RepairCompleted, Data: event.UpgradeData{ID: id, Tier: tower.Tier}})
	case component.UpgradeMorph:
		s.finishMorph(id, tower, up)
	}
}

// finishMorph меняет тип башни на месте и уничтожает поглощённого партнёра.
func (s *UpgradeSystem) finishMorph(id types.EntityID, tower *component.Tower, up *component.Upgrade) {
	tower.Type = up.MorphInto
	tower.Tier = 0
	tower.Health = tower.MaxHealth()
	tower.RepairCarry = 0
	SyncCombat(s.ecs, id, tower)

	var consumed types.EntityID
	if partner, ok := s.ecs.Towers[up.Partner]; ok && partner.LockedBy == id {
		if _, ok := removeTower(s.ecs, s.grid, up.Partner); ok {
			consumed = up.Partner
		}
	}
	s.logger.Info("fusion completed", "tower", id, "into", tower.Type.ID, "consumed", consumed)
	s.eventDispatcher.Dispatch(event.Event{Type: event.FusionCompleted, Data: event.FusionData{Host: id, Consumed: consumed, ResultID: tower.Type.ID}})
}

// SyncCombat gives armed tower types a Combat component and takes it from the rest.
func SyncCombat(ecs *entity.ECS, id types.EntityID, tower *component.Tower) {
	stats := tower.Stats()
	if stats.Damage > 0 && stats.FireRate > 0 {
		if _, ok := ecs.Combats[id]; !ok {
			ecs.Combats[id] = &component.Combat{}
		}
		return
	}
	delete(ecs.Combats, id)
}
