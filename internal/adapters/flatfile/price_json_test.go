package flatfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodplan/internal/domain/exchange"
)

func TestReadPriceBook_ParsesNullableQuotes(t *testing.T) {
	// Arrange
	payload := `[
		{"ticker": "FE", "exchange": "AI1", "ask": 100, "bid": 90},
		{"ticker": "FE", "exchange": "UNIVERSE", "avg7": 95, "avg30": 97}
	]`

	// Act
	book, err := ReadPriceBook(strings.NewReader(payload))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, book.Size())

	price, ok := book.Price("FE", "AI1", exchange.KindAsk)
	require.True(t, ok)
	assert.Equal(t, 100.0, price)

	_, ok = book.Price("FE", "AI1", exchange.KindAvg7)
	assert.False(t, ok, "absent quote stays unavailable")

	price, ok = book.Price("FE", exchange.UniverseCode, exchange.KindAvg7)
	require.True(t, ok)
	assert.Equal(t, 95.0, price)
}

func TestReadPriceBook_DropsInvalidRecords(t *testing.T) {
	// Arrange: ask quotes are illegal on the universe venue
	payload := `[
		{"ticker": "FE", "exchange": "UNIVERSE", "ask": 100},
		{"ticker": "CU", "exchange": "AI1", "ask": 50}
	]`

	// Act
	book, err := ReadPriceBook(strings.NewReader(payload))

	// Assert: the bad record is dropped, the rest survive
	require.NoError(t, err)
	assert.Equal(t, 1, book.Size())
}

func TestReadPriceBook_MalformedJSONFails(t *testing.T) {
	_, err := ReadPriceBook(strings.NewReader("{not json"))
	assert.Error(t, err)
}
