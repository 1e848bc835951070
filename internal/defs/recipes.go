// internal/defs/recipes.go
package defs

// FusionRecipe merges two towers into Result. An empty Second means the recipe
// needs two towers of First.
type FusionRecipe struct {
	First  string `json:"first" yaml:"first" jsonschema:"required"`
	Second string `json:"second,omitempty" yaml:"second"`
	Result string `json:"result" yaml:"result" jsonschema:"required"`
}

// Matches reports whether the recipe accepts the two fusion keys in either order.
func (r FusionRecipe) Matches(a, b string) bool {
	if r.Second == "" {
		return a == r.First && b == r.First
	}
	return (a == r.First && b == r.Second) || (a == r.Second && b == r.First)
}
