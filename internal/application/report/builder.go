package report

import (
	"sort"
	"time"

	"prodplan/internal/adapters/metrics"
	"prodplan/internal/application/resolver"
	"prodplan/internal/domain/plan"
)

// Builder orchestrates one user-facing query: override validation, deep
// resolution, ranking, and the financial annotations.
type Builder struct {
	engine *resolver.Engine
}

// NewBuilder creates a report builder over a resolution engine.
func NewBuilder(engine *resolver.Engine) *Builder {
	return &Builder{engine: engine}
}

// Build answers one query. It never returns an error: invalid requests and
// empty results come back as a well-formed Report with Error set.
func (b *Builder) Build(req QueryRequest, bestMap plan.BestMap) *Report {
	rep := &Report{
		Ticker:       req.Ticker,
		ExchangeCode: req.ExchangeCode,
		Kind:         req.Kind,
		GeneratedAt:  time.Now(),
	}

	if err := req.Validate(b.engine.Table()); err != nil {
		rep.Error = err.Error()
		return rep
	}

	started := time.Now()
	session := b.engine.NewSession(req.ExchangeCode, req.Kind, bestMap, req.Constraints(b.engine.Table()))
	options := session.ResolveAll(req.Ticker, 0, true, true)
	metrics.RecordResolution(req.ExchangeCode, string(req.Kind), time.Since(started).Seconds(), len(options))

	if len(options) == 0 {
		rep.Error = "no profitable scenarios found for " + req.Ticker + " on " + req.ExchangeCode
		return rep
	}

	ranked := make([]RankedOption, 0, len(options))
	for _, opt := range options {
		ranked = append(ranked, b.rank(opt, req.DemandPerDay))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ProfitPerArea > ranked[j].ProfitPerArea
	})

	rep.Scenarios = groupScenarios(ranked)

	if len(ranked) > req.topN() {
		ranked = ranked[:req.topN()]
	}
	rep.Options = ranked
	rep.Best = &ranked[0]

	if buyAll, ok := session.ResolveBuyAll(req.Ticker); ok {
		rep.BuyAllProfitPerArea = session.ProfitPerArea(buyAll)
	}

	return rep
}

// rank annotates one option with its aggregate and payback figures.
func (b *Builder) rank(opt *plan.MakeOption, demandPerDay float64) RankedOption {
	if demandPerDay <= 0 {
		demandPerDay = opt.OutputPerDay()
	}
	agg := b.engine.Aggregate(opt, demandPerDay)

	r := RankedOption{
		Option:        opt,
		ProfitPerArea: agg.ProfitPerArea,
		DailyProfit:   opt.FinalProfitPerDay(),
		AreaNative:    agg.AreaNative,
		AreaForDemand: agg.AreaForDemand,
	}

	if r.DailyProfit > 0 {
		r.ROINarrowDays = opt.BuildCost() / r.DailyProfit
		r.ROIBroadDays = agg.BuildCostNative / r.DailyProfit
		r.PaybackNarrowDays = (opt.BuildCost() + opt.InputBuffer7()) / r.DailyProfit
		r.PaybackBroadDays = (agg.BuildCostNative + agg.InputBufferNative) / r.DailyProfit
	}

	return r
}

// groupScenarios buckets ranked options (already sorted best-first) by
// canonical scenario.
func groupScenarios(ranked []RankedOption) []ScenarioGroup {
	index := make(map[string]int)
	groups := make([]ScenarioGroup, 0)

	for _, r := range ranked {
		canonical := plan.Canonical(r.Option.Scenario())
		if i, ok := index[canonical]; ok {
			groups[i].Count++
			continue
		}
		index[canonical] = len(groups)
		groups = append(groups, ScenarioGroup{Scenario: canonical, Count: 1, Best: r})
	}

	return groups
}
