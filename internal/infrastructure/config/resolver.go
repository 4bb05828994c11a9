package config

// ResolverConfig holds tuning knobs for the scenario resolution engine
type ResolverConfig struct {
	// Maximum recursion depth before chains are truncated
	MaxDepth int `mapstructure:"max_depth" validate:"min=1"`

	// Depth up to which input subtrees are explored exhaustively
	ExploreDepth int `mapstructure:"explore_depth" validate:"min=0"`

	// How many child options survive pruning at the query root
	KeepRootChildren int `mapstructure:"keep_root_children" validate:"min=1"`

	// How many child options survive pruning below the root
	KeepDeepChildren int `mapstructure:"keep_deep_children" validate:"min=1"`

	// Hard cap on scenarios generated per recipe row
	MaxScenariosPerRow int `mapstructure:"max_scenarios_per_row" validate:"min=1"`
}

// DataConfig holds the locations of the flat-file inputs
type DataConfig struct {
	// Path to the recipe table CSV
	RecipeCSV string `mapstructure:"recipe_csv"`

	// Path to the price snapshot JSON
	PriceJSON string `mapstructure:"price_json"`
}
