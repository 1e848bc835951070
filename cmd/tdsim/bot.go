package main

import (
	"go-lane-defense/internal/app"
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/utils"
	"go-lane-defense/pkg/grid"
)

const (
	botThinkInterval = 0.5
	botPlaceAttempts = 12
	botRepairBelow   = 0.5
)

// bot plays a match with simple heuristics: keep waves coming, build by
// weighted choice, repair, fuse, then upgrade with what is left.
type bot struct {
	game    *app.Game
	rng     *utils.PRNGService
	weights []defs.BuildWeight
	timer   float64
}

func newBot(game *app.Game, rng *utils.PRNGService) *bot {
	weights := game.Catalog.BuildWeights
	if len(weights) == 0 {
		for _, id := range game.Catalog.Buildable() {
			weights = append(weights, defs.BuildWeight{TowerID: id, Weight: 1})
		}
	}
	return &bot{game: game, rng: rng, weights: weights}
}

func (b *bot) Update(deltaTime float64) {
	b.timer -= deltaTime
	if b.timer > 0 {
		return
	}
	b.timer = botThinkInterval

	if b.game.WaveInfo().CanRequest {
		b.game.RequestNextWave()
	}
	if b.repair() || b.fuse() || b.build() {
		return
	}
	b.upgrade()
}

func (b *bot) build() bool {
	typeID := b.rng.ChooseWeighted(b.weights)
	towerType, ok := b.game.Catalog.Tower(typeID)
	if !ok || b.game.Gold() < towerType.Cost {
		return false
	}
	g := b.game.Grid
	for i := 0; i < botPlaceAttempts; i++ {
		cell := grid.Cell{X: 1 + b.rng.Intn(max(g.Width-2, 1)), Y: b.rng.Intn(g.Height)}
		if _, err := b.game.PlaceTower(cell, typeID); err == nil {
			return true
		}
	}
	return false
}

func (b *bot) repair() bool {
	for _, t := range b.game.Towers() {
		if t.CanRepair && t.Health < t.MaxHealth*botRepairBelow {
			if b.game.RepairTower(t.ID) == nil {
				return true
			}
		}
	}
	return false
}

func (b *bot) fuse() bool {
	towers := b.game.Towers()
	for i, a := range towers {
		if a.Mode != "idle" || a.Locked {
			continue
		}
		for _, c := range towers[i+1:] {
			if c.Mode != "idle" || c.Locked {
				continue
			}
			if _, ok := b.game.PreviewFusion(a.ID, c.ID); !ok {
				continue
			}
			if _, err := b.game.FuseTowers(a.ID, c.ID); err == nil {
				return true
			}
		}
	}
	return false
}

func (b *bot) upgrade() bool {
	towers := b.game.Towers()
	if len(towers) == 0 {
		return false
	}
	start := b.rng.Intn(len(towers))
	for i := range towers {
		t := towers[(start+i)%len(towers)]
		if t.CanUpgrade && b.game.UpgradeTower(t.ID) == nil {
			return true
		}
	}
	return false
}
