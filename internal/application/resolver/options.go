package resolver

// Options tunes the resolution engine. Zero values are replaced by defaults
// via Normalize, so Engine{...} construction with a partial struct is safe.
type Options struct {
	// MaxDepth hard-caps recursion so malformed cyclic recipe data cannot
	// blow the stack. Branches past the cap are truncated (they contribute
	// no options) and logged at debug level.
	MaxDepth int

	// ExploreDepth bounds how many levels below the query root deep
	// exploration may branch over every surviving child option instead of
	// collapsing to the cached best.
	ExploreDepth int

	// KeepRootChildren is the top-K width applied to the option set of each
	// direct child of the root before cross-producting.
	KeepRootChildren int

	// KeepDeepChildren is the tighter top-K width applied at grandchildren
	// and below.
	KeepDeepChildren int

	// MaxScenariosPerRow caps the cross product of branch choices for one
	// recipe row. Rows at the cap keep their first combinations; slot
	// option sets are already ranked best-first so the dropped tail is the
	// least promising.
	MaxScenariosPerRow int
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxDepth:           12,
		ExploreDepth:       2,
		KeepRootChildren:   4,
		KeepDeepChildren:   2,
		MaxScenariosPerRow: 1024,
	}
}

// Normalize fills zero fields with defaults.
func (o Options) Normalize() Options {
	def := DefaultOptions()
	if o.MaxDepth <= 0 {
		o.MaxDepth = def.MaxDepth
	}
	if o.ExploreDepth <= 0 {
		o.ExploreDepth = def.ExploreDepth
	}
	if o.KeepRootChildren <= 0 {
		o.KeepRootChildren = def.KeepRootChildren
	}
	if o.KeepDeepChildren <= 0 {
		o.KeepDeepChildren = def.KeepDeepChildren
	}
	if o.MaxScenariosPerRow <= 0 {
		o.MaxScenariosPerRow = def.MaxScenariosPerRow
	}
	return o
}

// Cost-share thresholds for narrowing an input's kept option set. A cheap
// ingredient's sourcing choice rarely changes the optimal top-level plan.
const (
	costShareSingle = 0.05
	costSharePair   = 0.15
	costShareTriple = 0.30
)

// clampByCostShare narrows the keep width for inputs that contribute little
// to the recipe's total input cost.
func clampByCostShare(keep int, share float64) int {
	switch {
	case share < costShareSingle:
		return 1
	case share < costSharePair:
		return min(keep, 2)
	case share < costShareTriple:
		return min(keep, 3)
	default:
		return keep
	}
}
