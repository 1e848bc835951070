// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"

	"go-lane-defense/internal/defs"
)

// PRNGService is the single seeded random source of a run. Everything that
// must replay identically for a given seed draws from it.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService seeds the service; seed 0 means "seed from the clock".
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{rng: rand.New(rand.NewSource(seed))}
}

// Intn: [0, n). Panics on n <= 0 like rand.Intn.
func (s *PRNGService) Intn(n int) int { return s.rng.Intn(n) }

// Float64: [0, 1).
func (s *PRNGService) Float64() float64 { return s.rng.Float64() }

// ChooseWeighted picks a tower ID from the table proportionally to its weight.
// Entries with non-positive weight are never picked unless every weight is
// non-positive, in which case the first entry is returned.
func (s *PRNGService) ChooseWeighted(entries []defs.BuildWeight) string {
	if len(entries) == 0 {
		return ""
	}
	sum := 0
	for _, e := range entries {
		sum += max(e.Weight, 0)
	}
	if sum == 0 {
		return entries[0].TowerID
	}

	roll := s.Intn(sum)
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		if roll < e.Weight {
			return e.TowerID
		}
		roll -= e.Weight
	}
	return entries[len(entries)-1].TowerID
}
