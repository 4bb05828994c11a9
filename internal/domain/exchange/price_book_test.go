package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestNewEntry_RejectsAskBidOnUniverse(t *testing.T) {
	// Act
	_, err := NewEntry("FE", UniverseCode, ptr(10), nil, nil, nil)

	// Assert
	assert.Error(t, err)
}

func TestNewEntry_AllowsReferencePricesOnUniverse(t *testing.T) {
	// Act
	entry, err := NewEntry("FE", UniverseCode, nil, nil, ptr(12), ptr(11))

	// Assert
	require.NoError(t, err)
	price, ok := entry.Quote(KindAvg7)
	assert.True(t, ok)
	assert.Equal(t, 12.0, price)
}

func TestEntry_Quote_TreatsNonPositiveAsUnavailable(t *testing.T) {
	// Arrange
	entry, err := NewEntry("FE", "AI1", ptr(0), ptr(-3), ptr(12), nil)
	require.NoError(t, err)

	// Act & Assert
	_, ok := entry.Quote(KindAsk)
	assert.False(t, ok, "zero ask should be unavailable")
	_, ok = entry.Quote(KindBid)
	assert.False(t, ok, "negative bid should be unavailable")
	_, ok = entry.Quote(KindAvg30)
	assert.False(t, ok, "absent quote should be unavailable")
}

func TestPriceBook_BuyAndSellPrices(t *testing.T) {
	// Arrange
	entry, err := NewEntry("FE", "AI1", ptr(100), ptr(90), ptr(95), ptr(97))
	require.NoError(t, err)
	book := NewPriceBook([]*Entry{entry})

	// Act & Assert: transactional kinds split into ask for buying, bid for selling
	buy, ok := book.BuyPrice("FE", "AI1", KindAsk)
	require.True(t, ok)
	assert.Equal(t, 100.0, buy)

	sell, ok := book.SellPrice("FE", "AI1", KindAsk)
	require.True(t, ok)
	assert.Equal(t, 90.0, sell)

	// Reference kinds use the same smoothed price on both sides
	buy, ok = book.BuyPrice("FE", "AI1", KindAvg7)
	require.True(t, ok)
	assert.Equal(t, 95.0, buy)

	sell, ok = book.SellPrice("FE", "AI1", KindAvg7)
	require.True(t, ok)
	assert.Equal(t, 95.0, sell)
}

func TestPriceBook_UnknownLookupsReturnFalse(t *testing.T) {
	// Arrange
	entry, err := NewEntry("FE", "AI1", ptr(100), nil, nil, nil)
	require.NoError(t, err)
	book := NewPriceBook([]*Entry{entry})

	// Act & Assert
	_, ok := book.Price("CU", "AI1", KindAsk)
	assert.False(t, ok, "unknown ticker")
	_, ok = book.Price("FE", "NC1", KindAsk)
	assert.False(t, ok, "unknown exchange")
}

func TestPriceBook_LaterEntriesReplaceEarlier(t *testing.T) {
	// Arrange
	first, err := NewEntry("FE", "AI1", ptr(100), nil, nil, nil)
	require.NoError(t, err)
	second, err := NewEntry("FE", "AI1", ptr(110), nil, nil, nil)
	require.NoError(t, err)

	// Act
	book := NewPriceBook([]*Entry{first, second})

	// Assert
	price, ok := book.Price("FE", "AI1", KindAsk)
	require.True(t, ok)
	assert.Equal(t, 110.0, price)
	assert.Equal(t, 1, book.Size())
}
