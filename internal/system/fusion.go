// internal/system/fusion.go
package system

import (
	"errors"
	"log/slog"

	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/event"
	"go-lane-defense/internal/types"
)

var (
	ErrNoRecipe            = errors.New("no fusion recipe for these towers")
	ErrInsufficientEssence = errors.New("not enough essence")
	ErrSameTower           = errors.New("a tower cannot fuse with itself")
)

// FusionSystem отвечает за слияние двух башен в одну по рецепту.
type FusionSystem struct {
	ecs             *entity.ECS
	catalog         *defs.Catalog
	wallet          Wallet
	upgrades        *UpgradeSystem
	eventDispatcher *event.Dispatcher
	logger          *slog.Logger
}

func NewFusionSystem(ecs *entity.ECS, catalog *defs.Catalog, wallet Wallet, upgrades *UpgradeSystem, eventDispatcher *event.Dispatcher, logger *slog.Logger) *FusionSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &FusionSystem{
		ecs:             ecs,
		catalog:         catalog,
		wallet:          wallet,
		upgrades:        upgrades,
		eventDispatcher: eventDispatcher,
		logger:          logger,
	}
}

// PreviewResult looks up what two tower types would fuse into. It changes nothing.
func (s *FusionSystem) PreviewResult(a, b *defs.TowerType) (*defs.TowerType, bool) {
	if a == nil || b == nil {
		return nil, false
	}
	_, result, ok := s.catalog.FindRecipe(a.FusionKey, b.FusionKey)
	return result, ok
}

// TryMerge fuses b into a. Essence is paid up front from the first affordable
// requirement; after that the fusion cannot be undone. a morphs for the result's
// first tier time and b is destroyed when the morph completes. Any rejection
// leaves both towers and the wallet untouched.
func (s *FusionSystem) TryMerge(a, b types.EntityID) (*defs.TowerType, error) {
	if a == b {
		return nil, ErrSameTower
	}
	towerA, okA := s.ecs.Towers[a]
	towerB, okB := s.ecs.Towers[b]
	if !okA || !okB {
		return nil, ErrUnknownTower
	}
	if s.upgrades.Busy(a) || s.upgrades.Busy(b) {
		return nil, ErrTowerBusy
	}
	result, ok := s.PreviewResult(towerA.Type, towerB.Type)
	if !ok {
		return nil, ErrNoRecipe
	}

	paid, err := s.payEssence(result)
	if err != nil {
		return nil, err
	}

	towerB.LockedBy = a
	s.logger.Info("fusion started", "host", a, "partner", b, "into", result.ID, "seconds", result.MorphTime())
	s.eventDispatcher.Dispatch(event.Event{Type: event.FusionStarted, Data: event.FusionData{Host: a, Consumed: b, ResultID: result.ID}})
	if err := s.upgrades.BeginMorph(a, result.MorphTime(), result, b); err != nil {
		towerB.LockedBy = 0
		s.refund(paid)
		return nil, err
	}
	return result, nil
}

func (s *FusionSystem) refund(paid *defs.EssenceAmount) {
	if paid != nil {
		s.wallet.AddEssence(paid.Kind, paid.Amount)
	}
}

// payEssence consumes the first requirement the wallet can cover.
func (s *FusionSystem) payEssence(result *defs.TowerType) (*defs.EssenceAmount, error) {
	options := result.EssenceOptions()
	if len(options) == 0 {
		return nil, nil
	}
	for _, req := range options {
		if s.wallet.TryConsumeEssence(req.Kind, req.Amount) {
			return &req, nil
		}
	}
	return nil, ErrInsufficientEssence
}
