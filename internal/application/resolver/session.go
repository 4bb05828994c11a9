package resolver

import (
	"fmt"
	"log"

	"prodplan/internal/domain/exchange"
	"prodplan/internal/domain/plan"
	"prodplan/internal/domain/recipe"
)

// Session is one request-scoped resolution run against a fixed (exchange,
// price kind, constraints) triple. It owns the memoization caches and the
// recursion-path guard; it is not safe for concurrent use, but independent
// sessions may run in parallel over the same Engine.
type Session struct {
	engine       *Engine
	exchangeCode string
	kind         exchange.PriceKind
	bestMap      plan.BestMap
	constraints  Constraints
	sig          string

	bestMemo map[string]bestMemo
	allMemo  map[string][]*plan.MakeOption

	// path holds the tickers currently being resolved on the call stack.
	// Revisiting one means the recipe data has a cycle; that branch is
	// abandoned rather than expanded forever.
	path map[string]bool
}

type bestMemo struct {
	opt *plan.MakeOption
	ok  bool
}

// branch is one sourcing choice for one input slot while a row's scenarios
// are being assembled.
type branch struct {
	slot  recipe.Slot
	made  bool
	cost  float64
	child *plan.MakeOption
}

// ResolveBest deterministically picks the single preferred production option
// for a ticker, preferring the best-map's stored scenario when it still
// matches a computable option and falling back to highest profit-per-area.
// Returns false when no recipe row is usable under the session's exchange,
// price kind and constraints.
func (s *Session) ResolveBest(ticker string, honorRecipeFilter bool) (*plan.MakeOption, bool) {
	key := fmt.Sprintf("best|%s|%t|%s", ticker, honorRecipeFilter, s.sig)
	if m, ok := s.bestMemo[key]; ok {
		return m.opt, m.ok
	}
	if s.path[ticker] {
		return nil, false
	}
	if s.depthExceeded(ticker) {
		return nil, false
	}

	s.path[ticker] = true
	defer delete(s.path, ticker)

	candidates := s.optionsShallow(ticker, honorRecipeFilter)
	opt, ok := s.pickBest(ticker, candidates)
	s.bestMemo[key] = bestMemo{opt: opt, ok: ok}
	return opt, ok
}

// ResolveAll returns the full explored option set for a ticker at the given
// recursion depth. The root call (depth 0) always branches over every input
// slot's surviving child options and is never cached. Deeper calls branch
// fully only while deep exploration is enabled and within the configured
// explore depth; beyond that they collapse to the cached best plus any
// stored alternative scenarios.
func (s *Session) ResolveAll(ticker string, depth int, exploreDeep, honorRecipeFilter bool) []*plan.MakeOption {
	if depth == 0 {
		if s.path[ticker] {
			return nil
		}
		s.path[ticker] = true
		defer delete(s.path, ticker)
		return s.optionsDeep(ticker, 0, exploreDeep, honorRecipeFilter)
	}

	deep := exploreDeep && depth <= s.engine.opts.ExploreDepth
	key := fmt.Sprintf("all|%s|%d|%t|%t|%s", ticker, depth, deep, honorRecipeFilter, s.sig)
	if opts, ok := s.allMemo[key]; ok {
		return opts
	}
	if s.path[ticker] {
		return nil
	}
	if s.depthExceeded(ticker) {
		return nil
	}

	s.path[ticker] = true
	defer delete(s.path, ticker)

	var result []*plan.MakeOption
	if deep {
		result = s.optionsDeep(ticker, depth, exploreDeep, honorRecipeFilter)
	} else {
		result = s.optionsFromStored(ticker, honorRecipeFilter)
	}
	s.allMemo[key] = result
	return result
}

// ResolveBuyAll prices every row of a ticker with all inputs bought on the
// market, no MAKE branches at all, and returns the best such option by
// profit-per-area. Used as the pure-trading baseline.
func (s *Session) ResolveBuyAll(ticker string) (*plan.MakeOption, bool) {
	var best *plan.MakeOption
	bestPA := 0.0

	for _, row := range s.rowCandidates(ticker, false) {
		if _, ok := s.sellPrice(row.PrimaryOutput().Ticker); !ok {
			continue
		}

		choices := make([]branch, 0, len(row.Inputs()))
		usable := true
		for _, slot := range row.Inputs() {
			price, ok := s.buyPrice(slot.Ticker)
			if !ok {
				usable = false
				break
			}
			choices = append(choices, branch{slot: slot, cost: price * slot.Amount})
		}
		if !usable {
			continue
		}

		opt, ok := s.buildOption(row, choices)
		if !ok {
			continue
		}
		pa := s.ProfitPerArea(opt)
		if best == nil || pa > bestPA {
			best, bestPA = opt, pa
		}
	}

	return best, best != nil
}

// ProfitPerArea scores an option's subtree at its own native capacity.
func (s *Session) ProfitPerArea(opt *plan.MakeOption) float64 {
	return s.engine.Aggregate(opt, opt.OutputPerDay()).ProfitPerArea
}

// depthExceeded truncates branches past the configured recursion cap. The
// truncation is deliberate degradation: the branch simply yields no options.
func (s *Session) depthExceeded(ticker string) bool {
	if len(s.path) < s.engine.opts.MaxDepth {
		return false
	}
	log.Printf("resolver: recursion cap %d reached at %s, branch truncated", s.engine.opts.MaxDepth, ticker)
	return true
}

// rowCandidates returns the recipe rows considered for a ticker after
// applying exclude/force-recipe constraints and, when enabled, the
// best-map's recipe id filter. The filter falls back to the unfiltered set
// when it would leave nothing.
func (s *Session) rowCandidates(ticker string, honorRecipeFilter bool) []*recipe.Row {
	rows := s.engine.table.RowsFor(ticker)

	filtered := make([]*recipe.Row, 0, len(rows))
	forcedID, hasForced := s.constraints.ForceRecipe[ticker]
	for _, row := range rows {
		if s.constraints.ExcludeRecipe[row.RecipeID()] {
			continue
		}
		if hasForced && row.RecipeID() != forcedID {
			continue
		}
		filtered = append(filtered, row)
	}

	if !honorRecipeFilter {
		return filtered
	}
	entry, ok := s.bestMap[ticker]
	if !ok || entry.RecipeID == "" {
		return filtered
	}

	narrowed := make([]*recipe.Row, 0, len(filtered))
	for _, row := range filtered {
		if row.RecipeID() == entry.RecipeID {
			narrowed = append(narrowed, row)
		}
	}
	if len(narrowed) == 0 {
		return filtered
	}
	return narrowed
}

// optionsShallow builds options for a ticker where each input slot offers at
// most a BUY branch and one MAKE branch (the child's resolved best). This is
// the cheap expansion used by ResolveBest and by collapsed deep levels.
func (s *Session) optionsShallow(ticker string, honorRecipeFilter bool) []*plan.MakeOption {
	var options []*plan.MakeOption

	for _, row := range s.rowCandidates(ticker, honorRecipeFilter) {
		if _, ok := s.sellPrice(row.PrimaryOutput().Ticker); !ok {
			continue
		}

		slotChoices := make([][]branch, 0, len(row.Inputs()))
		usable := true
		for _, slot := range row.Inputs() {
			var choices []branch
			if !s.constraints.ForceMake[slot.Ticker] {
				if price, ok := s.buyPrice(slot.Ticker); ok {
					choices = append(choices, branch{slot: slot, cost: price * slot.Amount})
				}
			}
			if !s.constraints.ForceBuy[slot.Ticker] {
				if child, ok := s.ResolveBest(slot.Ticker, honorRecipeFilter); ok {
					choices = append(choices, branch{
						slot:  slot,
						made:  true,
						cost:  child.COGM() * slot.Amount,
						child: child,
					})
				}
			}
			if len(choices) == 0 {
				usable = false
				break
			}
			slotChoices = append(slotChoices, choices)
		}
		if !usable {
			continue
		}

		options = append(options, s.buildRowOptions(row, slotChoices)...)
	}

	return options
}

// optionsDeep builds options where each input slot branches over every
// surviving child option from a recursive ResolveAll, pruned to a tractable
// width before cross-producting.
func (s *Session) optionsDeep(ticker string, depth int, exploreDeep, honorRecipeFilter bool) []*plan.MakeOption {
	var options []*plan.MakeOption

	for _, row := range s.rowCandidates(ticker, honorRecipeFilter) {
		if _, ok := s.sellPrice(row.PrimaryOutput().Ticker); !ok {
			continue
		}

		inputs := row.Inputs()
		childSets := make([][]*plan.MakeOption, len(inputs))
		for i, slot := range inputs {
			if s.constraints.ForceBuy[slot.Ticker] {
				continue
			}
			childSets[i] = s.ResolveAll(slot.Ticker, depth+1, exploreDeep, honorRecipeFilter)
		}

		shares := s.slotCostShares(inputs, childSets)

		slotChoices := make([][]branch, 0, len(inputs))
		usable := true
		for i, slot := range inputs {
			var choices []branch
			if !s.constraints.ForceMake[slot.Ticker] {
				if price, ok := s.buyPrice(slot.Ticker); ok {
					choices = append(choices, branch{slot: slot, cost: price * slot.Amount})
				}
			}
			keep := s.engine.opts.KeepDeepChildren
			if depth == 0 {
				keep = s.engine.opts.KeepRootChildren
			}
			keep = clampByCostShare(keep, shares[i])
			for _, child := range s.pruneChildOptions(childSets[i], keep) {
				choices = append(choices, branch{
					slot:  slot,
					made:  true,
					cost:  child.COGM() * slot.Amount,
					child: child,
				})
			}
			if len(choices) == 0 {
				usable = false
				break
			}
			slotChoices = append(slotChoices, choices)
		}
		if !usable {
			continue
		}

		options = append(options, s.buildRowOptions(row, slotChoices)...)
	}

	return options
}

// optionsFromStored collapses a deep level to its preferred scenarios: the
// resolved best plus one option per stored best-map alternative that still
// matches a computable scenario.
func (s *Session) optionsFromStored(ticker string, honorRecipeFilter bool) []*plan.MakeOption {
	candidates := s.optionsShallow(ticker, honorRecipeFilter)
	if len(candidates) == 0 {
		return nil
	}

	best, ok := s.pickBest(ticker, candidates)
	if !ok {
		return nil
	}
	result := []*plan.MakeOption{best}

	entry, hasEntry := s.bestMap[ticker]
	if !hasEntry {
		return result
	}
	for _, alt := range entry.Alternatives {
		for _, cand := range candidates {
			if cand == best {
				continue
			}
			if plan.SameScenario(plan.Canonical(cand.Scenario()), alt.Scenario) {
				result = append(result, cand)
				break
			}
		}
	}
	return result
}

// pickBest prefers the candidate whose canonical scenario matches the
// best-map's stored scenario for the ticker; otherwise the candidate with
// the highest profit-per-area. The stored scenario is advisory only, so a
// stale one silently falls through to the recomputed best.
func (s *Session) pickBest(ticker string, candidates []*plan.MakeOption) (*plan.MakeOption, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	entry, hasEntry := s.bestMap[ticker]
	var matched, best *plan.MakeOption
	bestPA := 0.0

	for _, cand := range candidates {
		if hasEntry && matched == nil && entry.Scenario != "" &&
			plan.SameScenario(plan.Canonical(cand.Scenario()), entry.Scenario) {
			matched = cand
		}
		pa := s.ProfitPerArea(cand)
		if best == nil || pa > bestPA {
			best, bestPA = cand, pa
		}
	}

	if matched != nil {
		return matched, true
	}
	return best, true
}

// slotCostShares estimates each input slot's share of the row's total input
// cost, using the cheaper of the market price and the best child's cost of
// goods made. Slots with no sourcing at all estimate to zero.
func (s *Session) slotCostShares(inputs []recipe.Slot, childSets [][]*plan.MakeOption) []float64 {
	costs := make([]float64, len(inputs))
	total := 0.0
	for i, slot := range inputs {
		cost := 0.0
		if price, ok := s.buyPrice(slot.Ticker); ok {
			cost = price * slot.Amount
		}
		for _, child := range childSets[i] {
			made := child.COGM() * slot.Amount
			if cost == 0 || made < cost {
				cost = made
			}
		}
		costs[i] = cost
		total += cost
	}

	shares := make([]float64, len(inputs))
	if total <= 0 {
		return shares
	}
	for i, cost := range costs {
		shares[i] = cost / total
	}
	return shares
}

// buildRowOptions expands the cross product of per-slot choices into fully
// priced options, bounded by the per-row scenario cap.
func (s *Session) buildRowOptions(row *recipe.Row, slotChoices [][]branch) []*plan.MakeOption {
	combos := 1
	for _, choices := range slotChoices {
		combos *= len(choices)
		if combos > s.engine.opts.MaxScenariosPerRow {
			combos = s.engine.opts.MaxScenariosPerRow
			break
		}
	}

	options := make([]*plan.MakeOption, 0, combos)
	current := make([]branch, len(slotChoices))

	var expand func(slotIdx int)
	expand = func(slotIdx int) {
		if len(options) >= s.engine.opts.MaxScenariosPerRow {
			return
		}
		if slotIdx == len(slotChoices) {
			if opt, ok := s.buildOption(row, current); ok {
				options = append(options, opt)
			}
			return
		}
		for _, choice := range slotChoices[slotIdx] {
			current[slotIdx] = choice
			expand(slotIdx + 1)
		}
	}
	expand(0)

	return options
}

// buildOption prices one scenario of one row. The caller has already
// verified the primary output is sellable.
func (s *Session) buildOption(row *recipe.Row, choices []branch) (*plan.MakeOption, bool) {
	scenario := ""
	inputCost := 0.0
	opportunityCost := 0.0
	details := make([]plan.MadeInputDetail, 0, len(choices))

	for _, c := range choices {
		inputCost += c.cost
		if c.made {
			scenario = plan.AppendMake(scenario, c.slot.Ticker, c.child.RecipeID(), c.child.Scenario())
			opportunityCost += c.child.BaseProfitPerOutput() * c.slot.Amount
			details = append(details, plan.NewMadeInput(c.slot.Ticker, c.slot.Amount, c.cost, c.child))
		} else {
			scenario = plan.AppendBuy(scenario, c.slot.Ticker)
			details = append(details, plan.NewBoughtInput(c.slot.Ticker, c.slot.Amount, c.cost))
		}
	}

	totalOutputValue := 0.0
	for i, out := range row.Outputs() {
		price, ok := s.sellPrice(out.Ticker)
		if !ok {
			if i == 0 {
				return nil, false
			}
			continue // unpriced byproducts contribute nothing
		}
		totalOutputValue += price * out.Amount
	}

	opt, err := plan.NewMakeOption(plan.MakeOptionSpec{
		RecipeID:         row.RecipeID(),
		Ticker:           row.Ticker(),
		Scenario:         scenario,
		InputCost:        inputCost,
		WorkforceCost:    row.WorkforceCost(),
		DepreciationCost: row.DepreciationCost(),
		TotalOutputValue: totalOutputValue,
		OpportunityCost:  opportunityCost,
		Output1Amount:    row.PrimaryOutput().Amount,
		Area:             row.Area(),
		AreaPerOutput:    row.AreaPerOutput(),
		RunsPerDay:       row.RunsPerDay(),
		BuildCost:        row.BuildCost(),
		Inputs:           details,
	})
	if err != nil {
		log.Printf("resolver: dropping malformed option for %s (%s): %v", row.Ticker(), row.RecipeID(), err)
		return nil, false
	}
	return opt, true
}

func (s *Session) buyPrice(ticker string) (float64, bool) {
	return s.engine.book.BuyPrice(ticker, s.exchangeCode, s.kind)
}

func (s *Session) sellPrice(ticker string) (float64, bool) {
	return s.engine.book.SellPrice(ticker, s.exchangeCode, s.kind)
}
