// internal/app/snapshot.go
package app

import (
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

// TowerInfo is a read-only view of a tower for presentation code.
type TowerInfo struct {
	ID        types.EntityID
	TypeID    string
	Name      string
	Cell      grid.Cell
	Position  grid.Vec2
	Health    float64
	MaxHealth float64
	Tier      int
	MaxTier   int
	Kills     int
	Stats     defs.CombatStats

	Mode     string  // idle, upgrading, morphing or repairing
	Progress float64 // 0..1 while busy
	Locked   bool    // reserved as a fusion partner

	UpgradeCost int
	CanUpgrade  bool
	RepairCost  int
	CanRepair   bool
}

// EnemyInfo is a read-only view of an enemy.
type EnemyInfo struct {
	ID             types.EntityID
	TypeID         string
	Position       grid.Vec2
	Health         float64
	MaxHealth      float64
	SlowMultiplier float64
	Active         bool
	Attacking      types.EntityID
	Path           []grid.Vec2
}

// WaveInfo describes the scheduler.
type WaveInfo struct {
	Number     int
	State      string
	Timer      float64
	Alive      int
	CanRequest bool
}

// SessionInfo describes the match outcome so far.
type SessionInfo struct {
	Mode       string
	Lives      int
	Escapes    int
	Damage     float64
	Defeated   bool
	Victorious bool
	Reason     string
}

func (g *Game) Gold() int { return g.Economy.Gold() }

// Essence returns a copy of the essence inventory.
func (g *Game) Essence() map[string]int { return g.Economy.EssenceSnapshot() }

func (g *Game) WaveInfo() WaveInfo {
	return WaveInfo{
		Number:     g.WaveSystem.Wave(),
		State:      g.WaveSystem.State().String(),
		Timer:      g.WaveSystem.Timer(),
		Alive:      g.WaveSystem.Alive(),
		CanRequest: g.WaveSystem.CanRequestNextWave(),
	}
}

func (g *Game) Session() SessionInfo {
	s := g.SessionSystem
	return SessionInfo{
		Mode:       s.Mode().ID,
		Lives:      s.Lives(),
		Escapes:    s.Escapes(),
		Damage:     s.Damage(),
		Defeated:   s.Defeated(),
		Victorious: s.Victorious(),
		Reason:     s.Reason(),
	}
}

// TowerInfo returns the view of one tower.
func (g *Game) TowerInfo(id types.EntityID) (TowerInfo, bool) {
	tower, ok := g.ECS.Towers[id]
	if !ok {
		return TowerInfo{}, false
	}
	info := TowerInfo{
		ID:        id,
		TypeID:    tower.Type.ID,
		Name:      tower.Type.Name,
		Cell:      tower.Cell,
		Health:    tower.Health,
		MaxHealth: tower.MaxHealth(),
		Tier:      tower.Tier,
		MaxTier:   len(tower.Type.Tiers),
		Kills:     tower.Kills,
		Stats:     tower.Stats(),
		Mode:      "idle",
		Locked:    tower.LockedBy != 0,
	}
	if pos, ok := g.ECS.Positions[id]; ok {
		info.Position = pos.Vec2
	}
	if up, ok := g.ECS.Upgrades[id]; ok {
		info.Mode = up.Mode.String()
		info.Progress = up.Progress()
	}
	busy := g.UpgradeSystem.Busy(id)
	if cost, err := g.UpgradeSystem.UpgradeCost(id); err == nil {
		info.UpgradeCost = cost
		info.CanUpgrade = !busy && g.Economy.CanAfford(cost)
	}
	if cost, err := g.UpgradeSystem.RepairCost(id); err == nil {
		info.RepairCost = cost
		info.CanRepair = !busy && g.Economy.CanAfford(cost)
	}
	return info, true
}

// Towers lists every tower in ID order.
func (g *Game) Towers() []TowerInfo {
	ids := entity.SortedIDs(g.ECS.Towers)
	out := make([]TowerInfo, 0, len(ids))
	for _, id := range ids {
		if info, ok := g.TowerInfo(id); ok {
			out = append(out, info)
		}
	}
	return out
}

// Enemies lists every enemy in ID order.
func (g *Game) Enemies() []EnemyInfo {
	ids := entity.SortedIDs(g.ECS.Enemies)
	out := make([]EnemyInfo, 0, len(ids))
	for _, id := range ids {
		enemy := g.ECS.Enemies[id]
		info := EnemyInfo{
			ID:             id,
			TypeID:         enemy.Type.ID,
			Health:         enemy.Health,
			MaxHealth:      enemy.Type.Health,
			SlowMultiplier: g.StatusEffectSystem.SpeedMultiplier(id),
			Active:         enemy.Active(),
			Attacking:      enemy.AttackTarget,
		}
		if pos, ok := g.ECS.Positions[id]; ok {
			info.Position = pos.Vec2
		}
		if path, ok := g.ECS.Paths[id]; ok {
			info.Path = append([]grid.Vec2(nil), path.Remaining()...)
		}
		out = append(out, info)
	}
	return out
}

// Projectiles returns the positions of projectiles in flight.
func (g *Game) Projectiles() []grid.Vec2 {
	ids := entity.SortedIDs(g.ECS.Projectiles)
	out := make([]grid.Vec2, 0, len(ids))
	for _, id := range ids {
		if pos, ok := g.ECS.Positions[id]; ok {
			out = append(out, pos.Vec2)
		}
	}
	return out
}

// PreviewFusion tells what fusing two placed towers would produce.
func (g *Game) PreviewFusion(a, b types.EntityID) (string, bool) {
	towerA, okA := g.ECS.Towers[a]
	towerB, okB := g.ECS.Towers[b]
	if !okA || !okB || a == b {
		return "", false
	}
	result, ok := g.FusionSystem.PreviewResult(towerA.Type, towerB.Type)
	if !ok {
		return "", false
	}
	return result.ID, true
}

// PreviewWaves describes the next count waves.
func (g *Game) PreviewWaves(count int) []defs.WavePreview {
	return g.Catalog.PreviewWaves(g.WaveSystem.Wave()+1, count)
}

// Spawn and Goal are the lane endpoints.
func (g *Game) Spawn() grid.Cell { return g.spawn }
func (g *Game) Goal() grid.Cell { return g.goal }
