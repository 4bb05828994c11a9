package report

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"prodplan/internal/application/resolver"
	"prodplan/internal/domain/exchange"
	"prodplan/internal/domain/recipe"
)

// QueryRequest describes one user-facing profitability query: one good, one
// exchange, one price kind, plus optional manual sourcing overrides.
type QueryRequest struct {
	Ticker       string             `validate:"required"`
	ExchangeCode string             `validate:"required"`
	Kind         exchange.PriceKind `validate:"required"`

	// ForceMake and ForceBuy pin the sourcing of specific input tickers.
	ForceMake []string
	ForceBuy  []string

	// ForceRecipe pins a good to one recipe id; ExcludeRecipe removes ids
	// from consideration.
	ForceRecipe   []string
	ExcludeRecipe []string

	// DemandPerDay scales the footprint figures. Zero means "the best
	// option's own natural daily output".
	DemandPerDay float64 `validate:"gte=0"`

	// TopN bounds how many ranked options the report carries. Zero means
	// the default of 10.
	TopN int `validate:"gte=0"`
}

const defaultTopN = 10

var requestValidator = validator.New()

// Validate checks the request structurally and against the recipe table,
// returning a single multi-line error describing every violation. Override
// validation is driven by engine data but deliberately lives here, not in
// the engine: the engine treats constraints as trusted.
func (r *QueryRequest) Validate(table *recipe.Table) error {
	var problems []string

	if err := requestValidator.Struct(r); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range errs {
				problems = append(problems, fmt.Sprintf("field '%s' failed validation: %s", e.Field(), e.Tag()))
			}
		} else {
			return err
		}
	}
	if r.Kind != "" && !r.Kind.Valid() {
		problems = append(problems, fmt.Sprintf("unknown price kind '%s'", r.Kind))
	}
	if r.ExchangeCode == exchange.UniverseCode && r.Kind != "" && !r.Kind.IsReference() {
		problems = append(problems, fmt.Sprintf("the universe venue carries only reference prices, not %s", r.Kind))
	}

	forceBuy := make(map[string]bool, len(r.ForceBuy))
	for _, t := range r.ForceBuy {
		forceBuy[t] = true
	}
	for _, t := range r.ForceMake {
		if forceBuy[t] {
			problems = append(problems, fmt.Sprintf("ticker %s cannot be both force-bought and force-made", t))
		}
		if !table.HasRecipe(t) {
			problems = append(problems, fmt.Sprintf("ticker %s is force-made but has no recipe", t))
		}
	}

	forcedByTicker := make(map[string]string)
	for _, id := range r.ForceRecipe {
		rows := table.RowsByID(id)
		if len(rows) == 0 {
			problems = append(problems, fmt.Sprintf("force-recipe id %s does not exist", id))
			continue
		}
		ticker := rows[0].Ticker()
		if !strings.HasPrefix(id, ticker) {
			problems = append(problems, fmt.Sprintf("force-recipe id %s does not carry its ticker %s as prefix", id, ticker))
		}
		if prev, dup := forcedByTicker[ticker]; dup && prev != id {
			problems = append(problems, fmt.Sprintf("ticker %s has conflicting forced recipes %s and %s", ticker, prev, id))
		}
		forcedByTicker[ticker] = id
		if forceBuy[ticker] {
			problems = append(problems, fmt.Sprintf("ticker %s cannot be both force-bought and force-recipe'd", ticker))
		}
	}

	excluded := make(map[string]bool, len(r.ExcludeRecipe))
	for _, id := range r.ExcludeRecipe {
		if len(table.RowsByID(id)) == 0 {
			problems = append(problems, fmt.Sprintf("exclude-recipe id %s does not exist", id))
			continue
		}
		excluded[id] = true
	}

	// No ticker may end up with zero viable recipes after exclusions.
	if len(excluded) > 0 {
		affected := make(map[string]bool)
		for id := range excluded {
			for _, row := range table.RowsByID(id) {
				affected[row.Ticker()] = true
			}
		}
		for ticker := range affected {
			viable := 0
			for _, row := range table.RowsFor(ticker) {
				if !excluded[row.RecipeID()] {
					viable++
				}
			}
			if viable == 0 {
				problems = append(problems, fmt.Sprintf("excluding these recipes leaves %s with no viable recipe", ticker))
			}
		}
		for ticker, id := range forcedByTicker {
			if excluded[id] {
				problems = append(problems, fmt.Sprintf("recipe %s for %s is both forced and excluded", id, ticker))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid query:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

// Constraints converts the request's overrides into engine constraints.
// Call only after Validate has passed.
func (r *QueryRequest) Constraints(table *recipe.Table) resolver.Constraints {
	c := resolver.Constraints{
		ForceMake:     make(map[string]bool),
		ForceBuy:      make(map[string]bool),
		ForceRecipe:   make(map[string]string),
		ExcludeRecipe: make(map[string]bool),
	}
	for _, t := range r.ForceMake {
		c.ForceMake[t] = true
	}
	for _, t := range r.ForceBuy {
		c.ForceBuy[t] = true
	}
	for _, id := range r.ForceRecipe {
		if rows := table.RowsByID(id); len(rows) > 0 {
			c.ForceRecipe[rows[0].Ticker()] = id
		}
	}
	for _, id := range r.ExcludeRecipe {
		c.ExcludeRecipe[id] = true
	}
	return c
}

func (r *QueryRequest) topN() int {
	if r.TopN <= 0 {
		return defaultTopN
	}
	return r.TopN
}
