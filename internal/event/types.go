// internal/event/types.go
package event

import (
	"go-lane-defense/internal/defs"
	"go-lane-defense/internal/types"
	"go-lane-defense/pkg/grid"
)

const (
	EnemySpawned     EventType = "EnemySpawned"
	EnemyKilled      EventType = "EnemyKilled"      // Враг уничтожен башней
	EnemyReachedGoal EventType = "EnemyReachedGoal" // Враг дошёл до цели
	EnemyRemoved     EventType = "EnemyRemoved"     // fired exactly once per enemy, after Killed or ReachedGoal
	WaveStarted      EventType = "WaveStarted"
	WaveCompleted    EventType = "WaveCompleted" // Волна закончилась
	WaveStateChanged EventType = "WaveStateChanged"
	TowerPlaced      EventType = "TowerPlaced" // Башня построена
	TowerDestroyed   EventType = "TowerDestroyed"
	TowerSold        EventType = "TowerSold"
	UpgradeCompleted EventType = "UpgradeCompleted"
	RepairCompleted  EventType = "RepairCompleted"
	FusionStarted    EventType = "FusionStarted"
	FusionCompleted  EventType = "FusionCompleted"
	GridChanged      EventType = "GridChanged"
	Defeat           EventType = "Defeat"
	Victory          EventType = "Victory"
)

type EnemySpawnedData struct {
	ID     types.EntityID
	TypeID string
	Wave   int
}

type EnemyKilledData struct {
	ID      types.EntityID
	TypeID  string
	Gold    int
	Essence *defs.EssenceAmount
	Killer  types.EntityID // zero when unknown
}

type EnemyReachedGoalData struct {
	ID     types.EntityID
	TypeID string
}

type EnemyRemovedData struct {
	ID types.EntityID
}

type WaveData struct {
	Number int
	Count  int
}

type WaveStateData struct {
	From, To string
}

type TowerData struct {
	ID     types.EntityID
	TypeID string
	Cell   grid.Cell
}

type UpgradeData struct {
	ID   types.EntityID
	Tier int
}

type FusionData struct {
	Host     types.EntityID
	Consumed types.EntityID
	ResultID string
}

type GridChangedData struct {
	Cell    grid.Cell
	Blocked bool
}

type OutcomeData struct {
	Reason string
	Wave   int
}
