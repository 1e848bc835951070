package utils

import (
	"testing"

	"go-lane-defense/internal/defs"
)

func TestPRNGIsDeterministicForSeed(t *testing.T) {
	a, b := NewPRNGService(42), NewPRNGService(42)
	for i := 0; i < 20; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestChooseWeighted(t *testing.T) {
	rng := NewPRNGService(7)

	if got := rng.ChooseWeighted(nil); got != "" {
		t.Errorf("empty table = %q", got)
	}
	zero := []defs.BuildWeight{{TowerID: "a"}, {TowerID: "b", Weight: -3}}
	if got := rng.ChooseWeighted(zero); got != "a" {
		t.Errorf("all non-positive weights should return the first entry, got %q", got)
	}

	table := []defs.BuildWeight{{TowerID: "never", Weight: 0}, {TowerID: "common", Weight: 9}, {TowerID: "rare", Weight: 1}}
	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		counts[rng.ChooseWeighted(table)]++
	}
	if counts["never"] != 0 {
		t.Errorf("zero-weight entry picked %d times", counts["never"])
	}
	if counts["common"] <= counts["rare"] || counts["rare"] == 0 {
		t.Errorf("distribution looks wrong: %v", counts)
	}
}
