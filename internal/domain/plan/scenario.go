package plan

import "strings"

// Scenario descriptions record one complete BUY/MAKE assignment across the
// inputs of a recipe row, e.g.
//
//	"Buy O, Make FE_1 (for FE) [Buy O, Buy H2O]"
//
// Branches accumulate left-to-right, comma-separated, across all input
// slots; a MAKE branch recursively embeds the chosen child's own scenario
// in square brackets.

// AppendBuy extends a scenario description with a BUY branch for a ticker.
func AppendBuy(prev, ticker string) string {
	return appendBranch(prev, "Buy "+ticker)
}

// AppendMake extends a scenario description with a MAKE branch. recipeLabel
// names the child recipe chosen to produce the input; childScenario is the
// child's own full description and is omitted when empty.
func AppendMake(prev, ticker, recipeLabel, childScenario string) string {
	branch := "Make " + recipeLabel + " (for " + ticker + ")"
	if childScenario != "" {
		branch += " [" + childScenario + "]"
	}
	return appendBranch(prev, branch)
}

func appendBranch(prev, branch string) string {
	if prev == "" {
		return branch
	}
	return prev + ", " + branch
}

// Canonical collapses a scenario description to one level: nested child
// detail inside brackets is stripped, so variants that differ only in
// deep-tree choices fall into the same bucket. Used for grouping and
// deduplication.
func Canonical(scenario string) string {
	var b strings.Builder
	depth := 0
	for _, r := range scenario {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return normalizeSpace(b.String())
}

// SameScenario compares two descriptions with whitespace normalized.
func SameScenario(a, b string) bool {
	return normalizeSpace(a) == normalizeSpace(b)
}

func normalizeSpace(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	// Bracket stripping can leave a dangling space before a comma.
	return strings.ReplaceAll(s, " ,", ",")
}
