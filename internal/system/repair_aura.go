// internal/system/repair_aura.go
package system

import (
	"math"
	"sort"

	"go-lane-defense/internal/component"
	"go-lane-defense/internal/entity"
	"go-lane-defense/internal/types"
)

// RepairAuraSystem обрабатывает логику башен-ремонтников.
type RepairAuraSystem struct {
	ecs    *entity.ECS
	wallet Wallet
}

func NewRepairAuraSystem(ecs *entity.ECS, wallet Wallet) *RepairAuraSystem {
	return &RepairAuraSystem{ecs: ecs, wallet: wallet}
}

type repairTarget struct {
	id    types.EntityID
	tower *component.Tower
	ratio float64
}

func (s *RepairAuraSystem) Update(deltaTime float64) {
	for _, id := range entity.SortedIDs(s.ecs.Towers) {
		healer, ok := s.ecs.Towers[id]
		if !ok || !healer.Type.HasRepairAura() {
			continue
		}
		s.pulse(id, healer, deltaTime)
	}
}

// pulse распределяет бюджет лечения за тик: самые повреждённые союзники первыми.
// With a gold cost, healed HP accrues into a fractional carry and only whole
// gold is taken from the wallet; a chunk the wallet cannot cover is rolled
// back and healing stops for the tick.
func (s *RepairAuraSystem) pulse(id types.EntityID, healer *component.Tower, deltaTime float64) {
	aura := healer.Type.RepairAura
	paid := aura.GoldPerHP > 0
	if paid && !s.wallet.CanAfford(1) {
		return
	}

	budget := aura.HealPerSecond * deltaTime
	perAlly := budget
	if aura.PerAllyPerSecond > 0 {
		perAlly = aura.PerAllyPerSecond * deltaTime
	}

	targets := s.gather(id, healer)
	for _, t := range targets {
		if budget <= 0 {
			break
		}
		heal := math.Min(t.tower.Missing(), math.Min(perAlly, budget))
		if heal <= 0 {
			continue
		}
		if paid {
			cost := heal * aura.GoldPerHP
			healer.RepairCarry += cost
			if chunk := int(math.Floor(healer.RepairCarry)); chunk > 0 {
				if !s.wallet.TrySpend(chunk) {
					healer.RepairCarry -= cost
					return
				}
				healer.RepairCarry -= float64(chunk)
			}
		}
		t.tower.Health += heal
		budget -= heal
	}
}

// gather lists towers in aura range that miss at least the configured minimum.
func (s *RepairAuraSystem) gather(id types.EntityID, healer *component.Tower) []repairTarget {
	aura := healer.Type.RepairAura
	center, ok := s.ecs.Positions[id]
	if !ok {
		return nil
	}
	radius := healer.Stats().Range

	var out []repairTarget
	for _, allyID := range entity.SortedIDs(s.ecs.Towers) {
		if allyID == id && !aura.AffectsSelf {
			continue
		}
		ally := s.ecs.Towers[allyID]
		missing := ally.Missing()
		if missing <= 0 || missing < aura.MinMissingHealth {
			continue
		}
		pos, ok := s.ecs.Positions[allyID]
		if !ok || center.Dist(pos.Vec2) > radius {
			continue
		}
		out = append(out, repairTarget{id: allyID, tower: ally, ratio: ally.Health / ally.MaxHealth()})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ratio < out[j].ratio })
	return out
}
