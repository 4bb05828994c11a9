package precompute

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"prodplan/internal/adapters/metrics"
	"prodplan/internal/application/resolver"
	"prodplan/internal/domain/exchange"
	"prodplan/internal/domain/plan"
)

// Service runs the batch pass that records, per producible good, the single
// best scenario plus up to 3 alternative display scenarios. The resulting
// map seeds later interactive resolutions so they can prune deep branches
// without recomputing every subtree.
type Service struct {
	engine *resolver.Engine
	repo   plan.BestMapRepository
}

// NewService creates the batch service. repo may be nil, in which case the
// result is returned but not persisted.
func NewService(engine *resolver.Engine, repo plan.BestMapRepository) *Service {
	return &Service{engine: engine, repo: repo}
}

// Result is the outcome of one batch run. Failed lists tickers that yielded
// no options; the run is still a success — the map is a best-effort cache,
// not a correctness-critical index.
type Result struct {
	RunID        string
	ExchangeCode string
	Kind         exchange.PriceKind
	Entries      plan.BestMap
	Failed       []string
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Run walks all producible tickers leaves-first, so every child's best
// scenario is already recorded by the time its parents resolve. Per-ticker
// failures are logged and skipped; only context cancellation aborts the run.
func (s *Service) Run(ctx context.Context, exchangeCode string, kind exchange.PriceKind) (*Result, error) {
	result := &Result{
		RunID:        uuid.NewString(),
		ExchangeCode: exchangeCode,
		Kind:         kind,
		Entries:      make(plan.BestMap),
		StartedAt:    time.Now(),
	}

	tickers := s.engine.Table().TickersByDepth()
	log.Printf("precompute: run %s over %d tickers (%s/%s)", result.RunID, len(tickers), exchangeCode, kind)

	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("precompute run %s aborted: %w", result.RunID, err)
		}

		entry, ok := s.precomputeTicker(ticker, exchangeCode, kind, result.Entries)
		if !ok {
			log.Printf("precompute: no viable options for %s on %s/%s, skipped", ticker, exchangeCode, kind)
			result.Failed = append(result.Failed, ticker)
			metrics.RecordPrecomputeTicker(exchangeCode, string(kind), false)
			continue
		}
		result.Entries[ticker] = entry
		metrics.RecordPrecomputeTicker(exchangeCode, string(kind), true)
	}

	result.FinishedAt = time.Now()
	log.Printf("precompute: run %s finished, %d entries, %d skipped, took %s",
		result.RunID, len(result.Entries), len(result.Failed), result.FinishedAt.Sub(result.StartedAt))

	if s.repo != nil {
		run := &plan.BestMapRun{
			RunID:        result.RunID,
			ExchangeCode: exchangeCode,
			Kind:         kind,
			Entries:      result.Entries,
			StartedAt:    result.StartedAt,
			FinishedAt:   result.FinishedAt,
		}
		if err := s.repo.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to persist precompute run %s: %w", result.RunID, err)
		}
	}

	return result, nil
}

// precomputeTicker resolves one ticker against the map built so far and
// derives its best entry.
func (s *Service) precomputeTicker(ticker, exchangeCode string, kind exchange.PriceKind, soFar plan.BestMap) (plan.BestEntry, bool) {
	session := s.engine.NewSession(exchangeCode, kind, soFar, resolver.Constraints{})

	options := session.ResolveAll(ticker, 0, false, true)
	if len(options) == 0 {
		return plan.BestEntry{}, false
	}

	best := options[0]
	bestPA := session.ProfitPerArea(best)
	for _, opt := range options[1:] {
		if pa := session.ProfitPerArea(opt); pa > bestPA {
			best, bestPA = opt, pa
		}
	}

	entry := plan.BestEntry{
		// Recipe ids are not semantically meaningful across exchanges, so
		// the stored entry keys on scenario alone.
		RecipeID:     "",
		Scenario:     plan.Canonical(best.Scenario()),
		Alternatives: alternativeScenarios(session, options, plan.Canonical(best.Scenario())),
	}

	if buyAll, ok := session.ResolveBuyAll(ticker); ok {
		entry.BuyAllProfitPerArea = session.ProfitPerArea(buyAll)
	}

	return entry, true
}

// alternativeScenarios groups options by canonical scenario and keeps the
// top groups by profit-per-area, excluding the best scenario itself.
func alternativeScenarios(session *resolver.Session, options []*plan.MakeOption, bestScenario string) []plan.Alternative {
	bestByScenario := make(map[string]float64)
	for _, opt := range options {
		canonical := plan.Canonical(opt.Scenario())
		if canonical == bestScenario {
			continue
		}
		pa := session.ProfitPerArea(opt)
		if existing, ok := bestByScenario[canonical]; !ok || pa > existing {
			bestByScenario[canonical] = pa
		}
	}

	alts := make([]plan.Alternative, 0, len(bestByScenario))
	for scenario, pa := range bestByScenario {
		alts = append(alts, plan.Alternative{Scenario: scenario, ProfitPerArea: pa})
	}
	sort.Slice(alts, func(i, j int) bool {
		if alts[i].ProfitPerArea != alts[j].ProfitPerArea {
			return alts[i].ProfitPerArea > alts[j].ProfitPerArea
		}
		return alts[i].Scenario < alts[j].Scenario
	})

	if len(alts) > plan.MaxAlternatives {
		alts = alts[:plan.MaxAlternatives]
	}
	return alts
}
