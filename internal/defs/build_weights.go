// internal/defs/build_weights.go
package defs

// BuildWeight is one entry of the weighted table automated players use to pick
// which tower to build next. Weight is relative.
type BuildWeight struct {
	TowerID string `json:"tower_id" yaml:"tower_id"`
	Weight  int    `json:"weight" yaml:"weight"`
}
