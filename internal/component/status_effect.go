// internal/component/status_effect.go
package component

// SlowEffect indicates that an entity is slowed. Only the strongest slow is kept.
type SlowEffect struct {
	Multiplier float64 // speed multiplier, 1 means unslowed
	Remaining  float64 // seconds left
}
