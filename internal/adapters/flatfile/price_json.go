package flatfile

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"prodplan/internal/domain/exchange"
)

// PriceRecord is the wire shape of one price row in the JSON feed. All four
// quotes are independently optional.
type PriceRecord struct {
	Ticker       string   `json:"ticker"`
	ExchangeCode string   `json:"exchange"`
	Ask          *float64 `json:"ask,omitempty"`
	Bid          *float64 `json:"bid,omitempty"`
	Avg7         *float64 `json:"avg7,omitempty"`
	Avg30        *float64 `json:"avg30,omitempty"`
}

// ToEntries converts wire records into validated price entries. Records the
// domain rejects are logged and dropped rather than failing the snapshot.
func ToEntries(records []PriceRecord) []*exchange.Entry {
	entries := make([]*exchange.Entry, 0, len(records))
	for _, rec := range records {
		entry, err := exchange.NewEntry(rec.Ticker, rec.ExchangeCode, rec.Ask, rec.Bid, rec.Avg7, rec.Avg30)
		if err != nil {
			log.Printf("flatfile: dropping price record %s/%s: %v", rec.Ticker, rec.ExchangeCode, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// LoadPriceJSON reads a price snapshot file into a price book.
func LoadPriceJSON(path string) (*exchange.PriceBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price snapshot %s: %w", path, err)
	}
	defer f.Close()
	return ReadPriceBook(f)
}

// ReadPriceBook parses a JSON array of price records from a reader.
func ReadPriceBook(r io.Reader) (*exchange.PriceBook, error) {
	var records []PriceRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode price snapshot: %w", err)
	}
	return exchange.NewPriceBook(ToEntries(records)), nil
}

// WritePriceJSON serializes price records to a snapshot file, for the fetch
// command's output.
func WritePriceJSON(path string, records []PriceRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create price snapshot %s: %w", path, err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to write price snapshot %s: %w", path, err)
	}
	return nil
}
