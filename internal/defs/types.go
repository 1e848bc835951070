// internal/defs/types.go
package defs

// AttackStyle is both how a tower delivers damage and the damage type enemies resist.
type AttackStyle string

const (
	StyleProjectile AttackStyle = "projectile"
	StyleBeam       AttackStyle = "beam"
	StyleCone       AttackStyle = "cone"
	StyleAura       AttackStyle = "aura"
	StyleWall       AttackStyle = "wall"
)

// AllStyles lists every attack style in a stable order.
var AllStyles = []AttackStyle{StyleProjectile, StyleBeam, StyleCone, StyleAura, StyleWall}

// Normalize maps unknown or empty styles to StyleProjectile.
func (s AttackStyle) Normalize() AttackStyle {
	switch s {
	case StyleProjectile, StyleBeam, StyleCone, StyleAura, StyleWall:
		return s
	default:
		return StyleProjectile
	}
}

// EssenceAmount is a quantity of one essence kind. Used both for drops and for
// fusion requirements.
type EssenceAmount struct {
	Kind   string `json:"kind" yaml:"kind"`
	Amount int    `json:"amount" yaml:"amount"`
}

// Valid reports whether the amount names a kind and a positive count.
func (e *EssenceAmount) Valid() bool {
	return e != nil && e.Kind != "" && e.Amount > 0
}
