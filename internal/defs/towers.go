// internal/defs/towers.go
package defs

import "go-lane-defense/internal/config"

// CombatStats contains parameters related to a tower's combat abilities.
type CombatStats struct {
	Style           AttackStyle `json:"style,omitempty" yaml:"style"`
	Range           float64     `json:"range,omitempty" yaml:"range"`
	FireRate        float64     `json:"fire_rate,omitempty" yaml:"fire_rate"` // shots per second
	Damage          float64     `json:"damage,omitempty" yaml:"damage"`
	ProjectileSpeed float64     `json:"projectile_speed,omitempty" yaml:"projectile_speed"`
	Instant         bool        `json:"instant,omitempty" yaml:"instant"`
	SlowPercent     float64     `json:"slow_percent,omitempty" yaml:"slow_percent"` // 0..1
	SlowDuration    float64     `json:"slow_duration,omitempty" yaml:"slow_duration"`
	ConeAngle       float64     `json:"cone_angle,omitempty" yaml:"cone_angle"` // full width, degrees
}

// TowerArchetype is a named combat template tower definitions may delegate to.
type TowerArchetype struct {
	ID          string `json:"id" yaml:"id" jsonschema:"required"`
	Name        string `json:"name" yaml:"name"`
	CombatStats `yaml:",inline"`
}

// UpgradeTier is one step of a tower's upgrade ladder.
type UpgradeTier struct {
	Cost         int     `json:"cost" yaml:"cost"`
	Time         float64 `json:"time" yaml:"time"`
	DamageMult   float64 `json:"damage_mult,omitempty" yaml:"damage_mult"`
	RangeMult    float64 `json:"range_mult,omitempty" yaml:"range_mult"`
	FireRateMult float64 `json:"fire_rate_mult,omitempty" yaml:"fire_rate_mult"`
}

// RepairAuraDef makes a tower heal nearby towers. The radius is the tower range.
type RepairAuraDef struct {
	HealPerSecond    float64 `json:"heal_per_second" yaml:"heal_per_second"`
	PerAllyPerSecond float64 `json:"per_ally_per_second,omitempty" yaml:"per_ally_per_second"`
	GoldPerHP        float64 `json:"gold_per_hp,omitempty" yaml:"gold_per_hp"`
	AffectsSelf      bool    `json:"affects_self,omitempty" yaml:"affects_self"`
	MinMissingHealth float64 `json:"min_missing_health,omitempty" yaml:"min_missing_health"`
}

// TowerDefinition is a tower entry as authored in the catalog file.
type TowerDefinition struct {
	ID          string `json:"id" yaml:"id" jsonschema:"required"`
	Name        string `json:"name" yaml:"name"`
	Model       string `json:"model,omitempty" yaml:"model"`
	Archetype   string `json:"archetype,omitempty" yaml:"archetype"`
	CombatStats `yaml:",inline"`

	Cost            int     `json:"cost" yaml:"cost"`
	MaxHealth       float64 `json:"max_health,omitempty" yaml:"max_health"`
	Armor           float64 `json:"armor,omitempty" yaml:"armor"`
	RepairCostPerHP float64 `json:"repair_cost_per_hp,omitempty" yaml:"repair_cost_per_hp"`
	RepairTime      float64 `json:"repair_time,omitempty" yaml:"repair_time"`

	Tiers      []UpgradeTier  `json:"tiers,omitempty" yaml:"tiers"`
	RepairAura *RepairAuraDef `json:"repair_aura,omitempty" yaml:"repair_aura"`
	Essence    *EssenceAmount `json:"essence,omitempty" yaml:"essence"`
	AltEssence *EssenceAmount `json:"alt_essence,omitempty" yaml:"alt_essence"`
}

// TowerType is the flat, resolved and immutable view of a tower definition.
type TowerType struct {
	ID        string
	Name      string
	Model     string
	FusionKey string // archetype ID, or the tower's own ID without one
	Base      CombatStats

	Cost            int
	MaxHealth       float64
	Armor           float64
	RepairCostPerHP float64
	RepairTime      float64

	Tiers      []UpgradeTier
	RepairAura *RepairAuraDef
	Essence    *EssenceAmount
	AltEssence *EssenceAmount
}

func pickFloat(archetype, local float64) float64 {
	if archetype != 0 {
		return archetype
	}
	return local
}

func resolveCombat(arch *TowerArchetype, local CombatStats) CombatStats {
	out := local
	if arch != nil {
		if arch.Style != "" {
			out.Style = arch.Style
		}
		out.Range = pickFloat(arch.Range, local.Range)
		out.FireRate = pickFloat(arch.FireRate, local.FireRate)
		out.Damage = pickFloat(arch.Damage, local.Damage)
		out.ProjectileSpeed = pickFloat(arch.ProjectileSpeed, local.ProjectileSpeed)
		out.Instant = arch.Instant || local.Instant
		out.SlowPercent = pickFloat(arch.SlowPercent, local.SlowPercent)
		out.SlowDuration = pickFloat(arch.SlowDuration, local.SlowDuration)
		out.ConeAngle = pickFloat(arch.ConeAngle, local.ConeAngle)
	}
	out.Style = out.Style.Normalize()
	if out.Style == StyleProjectile && !out.Instant && out.ProjectileSpeed <= 0 {
		out.ProjectileSpeed = config.DefaultProjectileSpeed
	}
	return out
}

// Resolve flattens def against its archetype. Archetype values win when set;
// local fields fill the rest. arch may be nil.
func Resolve(def TowerDefinition, arch *TowerArchetype) *TowerType {
	t := &TowerType{
		ID:              def.ID,
		Name:            def.Name,
		Model:           def.Model,
		FusionKey:       def.ID,
		Base:            resolveCombat(arch, def.CombatStats),
		Cost:            def.Cost,
		MaxHealth:       def.MaxHealth,
		Armor:           def.Armor,
		RepairCostPerHP: def.RepairCostPerHP,
		RepairTime:      def.RepairTime,
		Tiers:           append([]UpgradeTier(nil), def.Tiers...),
		RepairAura:      def.RepairAura,
		Essence:         def.Essence,
		AltEssence:      def.AltEssence,
	}
	if arch != nil {
		t.FusionKey = arch.ID
	}
	if t.MaxHealth <= 0 {
		t.MaxHealth = config.DefaultTowerHealth
	}
	if t.RepairCostPerHP <= 0 {
		t.RepairCostPerHP = config.DefaultRepairCostPerHP
	}
	if t.RepairTime <= 0 {
		t.RepairTime = config.DefaultRepairTime
	}
	return t
}

func mult(m float64) float64 {
	if m <= 0 {
		return 1
	}
	return m
}

// StatsAt returns the combat stats after the first tier upgrades completed,
// compounding every tier's multipliers.
func (t *TowerType) StatsAt(tier int) CombatStats {
	s := t.Base
	for i := 0; i < tier && i < len(t.Tiers); i++ {
		s.Damage *= mult(t.Tiers[i].DamageMult)
		s.Range *= mult(t.Tiers[i].RangeMult)
		s.FireRate *= mult(t.Tiers[i].FireRateMult)
	}
	return s
}

// NextTier returns the tier following current, if any.
func (t *TowerType) NextTier(current int) (UpgradeTier, bool) {
	if current < 0 || current >= len(t.Tiers) {
		return UpgradeTier{}, false
	}
	return t.Tiers[current], true
}

// MorphTime is how long a fusion into this type takes.
func (t *TowerType) MorphTime() float64 {
	if len(t.Tiers) == 0 {
		return 0
	}
	return t.Tiers[0].Time
}

// EssenceOptions lists the fusion essence requirements in priority order.
// An empty result means fusion into this type needs no essence.
func (t *TowerType) EssenceOptions() []EssenceAmount {
	var out []EssenceAmount
	if t.Essence.Valid() {
		out = append(out, *t.Essence)
	}
	if t.AltEssence.Valid() {
		out = append(out, *t.AltEssence)
	}
	return out
}

// HasRepairAura reports whether the type heals allies.
func (t *TowerType) HasRepairAura() bool {
	return t.RepairAura != nil && t.RepairAura.HealPerSecond > 0
}
