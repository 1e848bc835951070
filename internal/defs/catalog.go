// internal/defs/catalog.go
package defs

import (
	"errors"
	"fmt"
	"log/slog"
)

// CatalogFile is the on-disk shape of a definitions file.
type CatalogFile struct {
	Enemies      []EnemyType       `json:"enemies" yaml:"enemies"`
	Archetypes   []TowerArchetype  `json:"archetypes,omitempty" yaml:"archetypes"`
	Towers       []TowerDefinition `json:"towers" yaml:"towers"`
	Recipes      []FusionRecipe    `json:"recipes,omitempty" yaml:"recipes"`
	Modes        []GameMode        `json:"modes,omitempty" yaml:"modes"`
	Waves        WaveTable         `json:"waves" yaml:"waves"`
	BuildWeights []BuildWeight     `json:"build_weights,omitempty" yaml:"build_weights"`
}

// Catalog is the read-only set of tables a match runs against.
type Catalog struct {
	Enemies      map[string]*EnemyType
	Archetypes   map[string]*TowerArchetype
	Towers       map[string]*TowerType
	TowerOrder   []string
	Recipes      []FusionRecipe
	Modes        map[string]*GameMode
	Waves        WaveTable
	BuildWeights []BuildWeight
}

// NewCatalog validates f and resolves every tower against its archetype.
// Dangling archetype references are logged and the local stats are used.
func NewCatalog(f CatalogFile, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	c := &Catalog{
		Enemies:      make(map[string]*EnemyType, len(f.Enemies)),
		Archetypes:   make(map[string]*TowerArchetype, len(f.Archetypes)),
		Towers:       make(map[string]*TowerType, len(f.Towers)),
		Modes:        make(map[string]*GameMode, len(f.Modes)),
		Recipes:      append([]FusionRecipe(nil), f.Recipes...),
		Waves:        f.Waves,
		BuildWeights: append([]BuildWeight(nil), f.BuildWeights...),
	}
	for i := range f.Enemies {
		e := f.Enemies[i]
		c.Enemies[e.ID] = &e
	}
	for i := range f.Archetypes {
		a := f.Archetypes[i]
		c.Archetypes[a.ID] = &a
	}
	for _, def := range f.Towers {
		var arch *TowerArchetype
		if def.Archetype != "" {
			var ok bool
			if arch, ok = c.Archetypes[def.Archetype]; !ok {
				logger.Warn("tower archetype not found, using local stats", "tower", def.ID, "archetype", def.Archetype)
			}
		}
		c.Towers[def.ID] = Resolve(def, arch)
		c.TowerOrder = append(c.TowerOrder, def.ID)
	}
	for i := range f.Modes {
		m := f.Modes[i]
		c.Modes[m.ID] = &m
	}
	return c, nil
}

// Validate reports structural problems that make the file unusable.
// Missing optional references are not errors.
func (f CatalogFile) Validate() error {
	var errs []error
	seen := map[string]bool{}
	for _, e := range f.Enemies {
		if e.ID == "" {
			errs = append(errs, errors.New("enemy with empty id"))
			continue
		}
		if seen["enemy:"+e.ID] {
			errs = append(errs, fmt.Errorf("duplicate enemy id %q", e.ID))
		}
		seen["enemy:"+e.ID] = true
		if e.Health <= 0 {
			errs = append(errs, fmt.Errorf("enemy %q: health must be positive", e.ID))
		}
	}
	for _, t := range f.Towers {
		if t.ID == "" {
			errs = append(errs, errors.New("tower with empty id"))
			continue
		}
		if seen["tower:"+t.ID] {
			errs = append(errs, fmt.Errorf("duplicate tower id %q", t.ID))
		}
		seen["tower:"+t.ID] = true
		if t.Cost < 0 {
			errs = append(errs, fmt.Errorf("tower %q: negative cost", t.ID))
		}
		for i, tier := range t.Tiers {
			if tier.Cost < 0 || tier.Time < 0 {
				errs = append(errs, fmt.Errorf("tower %q tier %d: negative cost or time", t.ID, i))
			}
		}
	}
	for i, r := range f.Recipes {
		if r.First == "" {
			errs = append(errs, fmt.Errorf("recipe %d: empty first input", i))
		}
		if !seen["tower:"+r.Result] {
			errs = append(errs, fmt.Errorf("recipe %d: unknown result tower %q", i, r.Result))
		}
	}
	return errors.Join(errs...)
}

// Tower returns the resolved tower type.
func (c *Catalog) Tower(id string) (*TowerType, bool) {
	t, ok := c.Towers[id]
	return t, ok
}

// Enemy returns the enemy type.
func (c *Catalog) Enemy(id string) (*EnemyType, bool) {
	e, ok := c.Enemies[id]
	return e, ok
}

// Mode returns the named game mode, or DefaultGameMode when it is absent.
func (c *Catalog) Mode(id string) (*GameMode, bool) {
	if m, ok := c.Modes[id]; ok {
		return m, true
	}
	return DefaultGameMode(), false
}

// SelectEnemy picks the enemy type for wave, walking the family's fallback chain
// and skipping unknown or unspawnable candidates. It has no side effects.
func (c *Catalog) SelectEnemy(wave int) (*EnemyType, bool) {
	for _, id := range c.Waves.Candidates(wave) {
		if e, ok := c.Enemies[id]; ok && e.Spawnable() {
			return e, true
		}
	}
	return nil, false
}

// PreviewWaves describes count waves starting at from.
func (c *Catalog) PreviewWaves(from, count int) []WavePreview {
	out := make([]WavePreview, 0, count)
	for w := from; w < from+count; w++ {
		p := WavePreview{Wave: w, Family: FamilyFor(w), Count: EnemyCount(w)}
		if e, ok := c.SelectEnemy(w); ok {
			p.EnemyID = e.ID
		} else {
			p.Count = 0
		}
		out = append(out, p)
	}
	return out
}

// FindRecipe returns the first recipe matching the two fusion keys whose result
// tower exists.
func (c *Catalog) FindRecipe(keyA, keyB string) (FusionRecipe, *TowerType, bool) {
	for _, r := range c.Recipes {
		if !r.Matches(keyA, keyB) {
			continue
		}
		if result, ok := c.Towers[r.Result]; ok {
			return r, result, true
		}
	}
	return FusionRecipe{}, nil, false
}

// Buildable lists tower IDs that can be placed directly, in file order.
// Fusion results are only reachable by fusing.
func (c *Catalog) Buildable() []string {
	var out []string
	for _, id := range c.TowerOrder {
		if !c.IsFusionResult(id) {
			out = append(out, id)
		}
	}
	return out
}

// IsFusionResult reports whether some recipe produces the tower.
func (c *Catalog) IsFusionResult(id string) bool {
	for _, r := range c.Recipes {
		if r.Result == id {
			return true
		}
	}
	return false
}
