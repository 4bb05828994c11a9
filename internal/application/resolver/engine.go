package resolver

import (
	"prodplan/internal/domain/exchange"
	"prodplan/internal/domain/plan"
	"prodplan/internal/domain/recipe"
)

// Engine resolves BUY-vs-MAKE production plans over an immutable recipe
// table and price book. The engine itself holds no mutable state; all
// memoization lives in per-request Sessions, so concurrent requests cannot
// cross-contaminate each other's caches.
type Engine struct {
	table *recipe.Table
	book  *exchange.PriceBook
	opts  Options
}

// NewEngine creates an engine over the given tables.
func NewEngine(table *recipe.Table, book *exchange.PriceBook, opts Options) *Engine {
	return &Engine{
		table: table,
		book:  book,
		opts:  opts.Normalize(),
	}
}

// Options returns the normalized engine options.
func (e *Engine) Options() Options { return e.opts }

// Table returns the recipe table the engine resolves against.
func (e *Engine) Table() *recipe.Table { return e.table }

// Book returns the price book the engine prices against.
func (e *Engine) Book() *exchange.PriceBook { return e.book }

// NewSession creates a fresh resolution session for one (exchange, price
// kind, constraints) triple. The session owns its memoization caches;
// discard it when the request or batch step completes.
func (e *Engine) NewSession(exchangeCode string, kind exchange.PriceKind, bestMap plan.BestMap, constraints Constraints) *Session {
	return &Session{
		engine:       e,
		exchangeCode: exchangeCode,
		kind:         kind,
		bestMap:      bestMap,
		constraints:  constraints,
		sig:          constraints.Signature(),
		bestMemo:     make(map[string]bestMemo),
		allMemo:      make(map[string][]*plan.MakeOption),
		path:         make(map[string]bool),
	}
}
