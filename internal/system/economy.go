// internal/system/economy.go
package system

import (
	"maps"

	"go-lane-defense/internal/event"
)

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -destination=./mocks/wallet_mock.go -package=mocks . Wallet

// Wallet is the only way gold and essence change hands. Every operation is
// all-or-nothing.
type Wallet interface {
	Gold() int
	CanAfford(amount int) bool
	TrySpend(amount int) bool
	AddGold(amount int)
	Essence(kind string) int
	AddEssence(kind string, amount int)
	TryConsumeEssence(kind string, amount int) bool
}

// EconomyConfig: стартовое золото, пассивный доход и бонус за волну.
type EconomyConfig struct {
	StartingGold          int
	PassiveIncome         int
	PassiveIncomeInterval float64
	WaveBonus             int
}

// EconomySystem отвечает за золото и эссенции игрока.
type EconomySystem struct {
	cfg         EconomyConfig
	gold        int
	essence     map[string]int
	incomeTimer float64
}

var _ Wallet = (*EconomySystem)(nil)

func NewEconomySystem(cfg EconomyConfig, eventDispatcher *event.Dispatcher) *EconomySystem {
	s := &EconomySystem{
		cfg:     cfg,
		gold:    cfg.StartingGold,
		essence: make(map[string]int),
	}
	if eventDispatcher != nil {
		eventDispatcher.Subscribe(event.EnemyKilled, s)
		eventDispatcher.Subscribe(event.WaveCompleted, s)
	}
	return s
}

func (s *EconomySystem) Gold() int { return s.gold }

func (s *EconomySystem) CanAfford(amount int) bool {
	return amount >= 0 && s.gold >= amount
}

// TrySpend списывает золото, только если его хватает. Otherwise nothing changes.
func (s *EconomySystem) TrySpend(amount int) bool {
	if !s.CanAfford(amount) {
		return false
	}
	s.gold -= amount
	return true
}

func (s *EconomySystem) AddGold(amount int) {
	if amount > 0 {
		s.gold += amount
	}
}

func (s *EconomySystem) Essence(kind string) int { return s.essence[kind] }

// EssenceSnapshot returns a copy of the essence inventory.
func (s *EconomySystem) EssenceSnapshot() map[string]int {
	return maps.Clone(s.essence)
}

func (s *EconomySystem) AddEssence(kind string, amount int) {
	if kind == "" || amount <= 0 {
		return
	}
	s.essence[kind] += amount
}

// TryConsumeEssence removes amount of kind if available. A kind that drops to
// zero is deleted from the inventory.
func (s *EconomySystem) TryConsumeEssence(kind string, amount int) bool {
	have := s.essence[kind]
	if amount < 0 || have < amount {
		return false
	}
	if amount == 0 {
		return true
	}
	have -= amount
	if have == 0 {
		delete(s.essence, kind)
	} else {
		s.essence[kind] = have
	}
	return true
}

// Update начисляет пассивный доход раз в интервал.
func (s *EconomySystem) Update(deltaTime float64) {
	if s.cfg.PassiveIncome <= 0 || s.cfg.PassiveIncomeInterval <= 0 {
		return
	}
	s.incomeTimer += deltaTime
	for s.incomeTimer >= s.cfg.PassiveIncomeInterval {
		s.incomeTimer -= s.cfg.PassiveIncomeInterval
		s.AddGold(s.cfg.PassiveIncome)
	}
}

// OnEvent обрабатывает события, на которые подписана система.
func (s *EconomySystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemyKilled:
		data, ok := e.Data.(event.EnemyKilledData)
		if !ok {
			return
		}
		s.AddGold(data.Gold)
		if data.Essence.Valid() {
			s.AddEssence(data.Essence.Kind, data.Essence.Amount)
		}
	case event.WaveCompleted:
		s.AddGold(s.cfg.WaveBonus)
	}
}
