package recipe

import (
	"fmt"
	"strings"
)

// ErrCircularDependency indicates recipe data where a good transitively
// requires itself as an input.
type ErrCircularDependency struct {
	Ticker string
	Chain  []string
}

func (e *ErrCircularDependency) Error() string {
	return fmt.Sprintf("circular dependency on %s: %s", e.Ticker, strings.Join(e.Chain, " -> "))
}

// ErrUnknownRecipe indicates a recipe id that does not exist in the table.
type ErrUnknownRecipe struct {
	RecipeID string
}

func (e *ErrUnknownRecipe) Error() string {
	return fmt.Sprintf("unknown recipe id: %s", e.RecipeID)
}
