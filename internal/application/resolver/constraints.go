package resolver

import (
	"sort"
	"strings"
)

// Constraints are per-request manual overrides on sourcing choices. They are
// fixed for the lifetime of a Session; the signature participates in the
// session's memoization key so differently-constrained resolutions never
// share cached options.
type Constraints struct {
	// ForceMake forbids BUY branches for these tickers.
	ForceMake map[string]bool

	// ForceBuy forbids MAKE branches for these tickers.
	ForceBuy map[string]bool

	// ForceRecipe restricts a ticker to one recipe id.
	ForceRecipe map[string]string

	// ExcludeRecipe removes recipe ids from consideration entirely.
	ExcludeRecipe map[string]bool
}

// Empty returns true when no override is set.
func (c Constraints) Empty() bool {
	return len(c.ForceMake) == 0 && len(c.ForceBuy) == 0 &&
		len(c.ForceRecipe) == 0 && len(c.ExcludeRecipe) == 0
}

// Signature returns a deterministic string identifying the constraint set,
// used as part of memoization keys.
func (c Constraints) Signature() string {
	if c.Empty() {
		return ""
	}
	var parts []string
	for t := range c.ForceMake {
		parts = append(parts, "m:"+t)
	}
	for t := range c.ForceBuy {
		parts = append(parts, "b:"+t)
	}
	for t, id := range c.ForceRecipe {
		parts = append(parts, "r:"+t+"="+id)
	}
	for id := range c.ExcludeRecipe {
		parts = append(parts, "x:"+id)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
