package resolver

import (
	"sort"

	"prodplan/internal/domain/plan"
)

// pruneChildOptions keeps a child option set tractable before it is
// cross-producted into the parent's scenarios. Options are ranked by
// profit-per-area descending; the top keep survive, plus one representative
// (the best-ranked) of every distinct canonical scenario so rare-but-named
// plans stay visible even when they fall outside the top keep.
func (s *Session) pruneChildOptions(options []*plan.MakeOption, keep int) []*plan.MakeOption {
	if len(options) <= keep {
		return options
	}

	type scored struct {
		opt *plan.MakeOption
		pa  float64
	}
	ranked := make([]scored, len(options))
	for i, opt := range options {
		ranked[i] = scored{opt: opt, pa: s.ProfitPerArea(opt)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].pa > ranked[j].pa
	})

	kept := make([]*plan.MakeOption, 0, keep)
	seenScenario := make(map[string]bool)

	for i, r := range ranked {
		canonical := plan.Canonical(r.opt.Scenario())
		if i < keep {
			kept = append(kept, r.opt)
			seenScenario[canonical] = true
			continue
		}
		if !seenScenario[canonical] {
			kept = append(kept, r.opt)
			seenScenario[canonical] = true
		}
	}

	return kept
}
