package plan

import (
	"context"
	"time"

	"prodplan/internal/domain/exchange"
)

// BestMapRun is one persisted batch precomputation result.
type BestMapRun struct {
	RunID        string
	ExchangeCode string
	Kind         exchange.PriceKind
	Entries      BestMap
	StartedAt    time.Time
	FinishedAt   time.Time
}

// BestMapRepository persists and reloads precomputed best maps. The stored
// map is advisory; callers must tolerate a missing or stale map.
type BestMapRepository interface {
	// SaveRun persists a full batch run, replacing nothing: runs accumulate
	// and loads resolve to the newest run per (exchange, kind).
	SaveRun(ctx context.Context, run *BestMapRun) error

	// LoadLatest returns the newest stored map for the pair, or an empty
	// map when none exists.
	LoadLatest(ctx context.Context, exchangeCode string, kind exchange.PriceKind) (BestMap, error)
}
