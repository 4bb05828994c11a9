package persistence

import "time"

// BestMapRunModel is one batch precomputation run. Runs accumulate; the
// newest run per (exchange, kind) pair wins on load.
type BestMapRunModel struct {
	RunID        string    `gorm:"primaryKey;size:64"`
	ExchangeCode string    `gorm:"index:idx_best_map_runs_pair;size:16;not null"`
	Kind         string    `gorm:"index:idx_best_map_runs_pair;size:16;not null"`
	StartedAt    time.Time `gorm:"not null"`
	FinishedAt   time.Time `gorm:"not null"`
	CreatedAt    time.Time
}

// TableName specifies the table name for GORM
func (BestMapRunModel) TableName() string {
	return "best_map_runs"
}

// BestMapEntryModel is one ticker's cached preferred scenario within a run.
// Alternatives are stored as a JSON array since they are only ever read back
// whole.
type BestMapEntryModel struct {
	ID                  uint   `gorm:"primaryKey;autoIncrement"`
	RunID               string `gorm:"index;size:64;not null"`
	Ticker              string `gorm:"index;size:16;not null"`
	RecipeID            string `gorm:"size:128"`
	Scenario            string `gorm:"type:text;not null"`
	Alternatives        string `gorm:"type:text"`
	BuyAllProfitPerArea float64
	CreatedAt           time.Time
}

// TableName specifies the table name for GORM
func (BestMapEntryModel) TableName() string {
	return "best_map_entries"
}

// PriceSnapshotModel is one persisted (ticker, exchange) price record from a
// feed fetch. Nullable columns mirror the feed: a NULL quote means the good
// is not tradable under that kind.
type PriceSnapshotModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Ticker       string `gorm:"uniqueIndex:idx_price_snapshots_pair;size:16;not null"`
	ExchangeCode string `gorm:"uniqueIndex:idx_price_snapshots_pair;size:16;not null"`
	Ask          *float64
	Bid          *float64
	Avg7         *float64
	Avg30        *float64
	FetchedAt    time.Time `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (PriceSnapshotModel) TableName() string {
	return "price_snapshots"
}
