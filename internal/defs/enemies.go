// internal/defs/enemies.go
package defs

// TowerAttack lets an enemy type stop and hit towers.
type TowerAttack struct {
	Range    float64 `json:"range" yaml:"range"`
	Damage   float64 `json:"damage" yaml:"damage"`
	Interval float64 `json:"interval" yaml:"interval"` // seconds between hits
}

// EnemyType holds all the static data for a specific type of enemy.
type EnemyType struct {
	ID     string  `json:"id" yaml:"id" jsonschema:"required"`
	Name   string  `json:"name" yaml:"name"`
	Model  string  `json:"model,omitempty" yaml:"model"` // renderable form; enemies without one are never spawned
	Health float64 `json:"health" yaml:"health" jsonschema:"required,exclusiveMinimum=0"`
	Speed  float64 `json:"speed" yaml:"speed"` // world units per second
	Armor  float64 `json:"armor" yaml:"armor"`

	// Resistances multiply incoming damage per attack style. Missing styles count as 1.
	Resistances       map[AttackStyle]float64 `json:"resistances,omitempty" yaml:"resistances"`
	SlowEffectiveness *float64                `json:"slow_effectiveness,omitempty" yaml:"slow_effectiveness"`

	Gold        int            `json:"gold" yaml:"gold"`
	Essence     *EssenceAmount `json:"essence,omitempty" yaml:"essence"`
	TowerAttack *TowerAttack   `json:"tower_attack,omitempty" yaml:"tower_attack"`
}

// Spawnable reports whether the type has a concrete renderable form.
func (e *EnemyType) Spawnable() bool {
	return e != nil && e.Model != ""
}

// Resistance returns the damage multiplier for the given style.
func (e *EnemyType) Resistance(style AttackStyle) float64 {
	if m, ok := e.Resistances[style.Normalize()]; ok {
		return m
	}
	return 1
}

// SlowFactor scales incoming slow percentages.
func (e *EnemyType) SlowFactor() float64 {
	if e.SlowEffectiveness == nil {
		return 1
	}
	return *e.SlowEffectiveness
}

// CanAttackTowers reports whether the type has a usable tower attack.
func (e *EnemyType) CanAttackTowers() bool {
	return e.TowerAttack != nil && e.TowerAttack.Range > 0 && e.TowerAttack.Damage > 0
}
