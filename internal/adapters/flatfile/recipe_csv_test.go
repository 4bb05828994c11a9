package flatfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prodplan/internal/domain/exchange"
)

const chainCSV = `RecipeID,Building,Area,AreaPerOutput,Runs P/D,AllBuildCst,WfCst,Deprec,Input1MAT,Input1CNT,Input2MAT,Input2CNT,Output1MAT,Output1CNT,Output2MAT,Output2CNT
POW:3xHAL-2xLI,FAB,30,30,4,60000,40,10,HAL,3,LI,2,POW,1,,
HAL:4xLIO,SME,20,10,6,30000,24,6,LIO,4,,,HAL,2,,
`

func TestReadRecipeTable_ParsesRowsAndSlots(t *testing.T) {
	// Act
	table, err := ReadRecipeTable(strings.NewReader(chainCSV), "AI1", exchange.KindAsk)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, table.RowCount())

	rows := table.RowsFor("POW")
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "POW:3xHAL-2xLI", row.RecipeID())
	assert.Equal(t, "FAB", row.Building())
	require.Len(t, row.Inputs(), 2)
	assert.Equal(t, "HAL", row.Inputs()[0].Ticker)
	assert.Equal(t, 3.0, row.Inputs()[0].Amount)
	assert.Equal(t, 1.0, row.PrimaryOutput().Amount)
	assert.Equal(t, 40.0, row.WorkforceCost())
	assert.Equal(t, 60000.0, row.BuildCost())
}

func TestReadRecipeTable_MissingRequiredColumnFails(t *testing.T) {
	// Arrange: no RecipeID column
	csv := "Area,AreaPerOutput,Runs P/D,Output1MAT\n10,10,1,FE\n"

	// Act
	_, err := ReadRecipeTable(strings.NewReader(csv), "AI1", exchange.KindAsk)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RecipeID")
}

func TestReadRecipeTable_SkipsMalformedRows(t *testing.T) {
	// Arrange: second row has no primary output amount
	csv := `RecipeID,Area,AreaPerOutput,Runs P/D,Output1MAT,Output1CNT
FE:ok,10,10,2,FE,1
FE:bad,10,10,2,FE,0
`

	// Act
	table, err := ReadRecipeTable(strings.NewReader(csv), "AI1", exchange.KindAsk)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, table.RowCount())
}

func TestReadRecipeTable_ExchangeSuffixedCostColumns(t *testing.T) {
	// Arrange: consolidated table with per-exchange cost columns
	csv := `RecipeID,Area,AreaPerOutput,Runs P/D,WfCst-AI1,WfCst-NC1,WfCst-AI17,Output1MAT,Output1CNT
FE:smelt,10,10,2,11,22,33,FE,1
`

	// Act: plain kind resolves the bare exchange suffix
	table, err := ReadRecipeTable(strings.NewReader(csv), "AI1", exchange.KindAsk)
	require.NoError(t, err)
	assert.Equal(t, 11.0, table.RowsFor("FE")[0].WorkforceCost())

	// Another exchange picks its own column
	table, err = ReadRecipeTable(strings.NewReader(csv), "NC1", exchange.KindAsk)
	require.NoError(t, err)
	assert.Equal(t, 22.0, table.RowsFor("FE")[0].WorkforceCost())

	// A reference kind prefers the kind-suffixed variant
	table, err = ReadRecipeTable(strings.NewReader(csv), "AI1", exchange.KindAvg7)
	require.NoError(t, err)
	assert.Equal(t, 33.0, table.RowsFor("FE")[0].WorkforceCost())
}

func TestReadRecipeTable_UnsuffixedFallback(t *testing.T) {
	// Arrange: single-exchange table with plain cost names
	csv := `RecipeID,Area,AreaPerOutput,Runs P/D,WfCst,Output1MAT,Output1CNT
FE:smelt,10,10,2,44,FE,1
`

	// Act
	table, err := ReadRecipeTable(strings.NewReader(csv), "AI1", exchange.KindAvg30)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 44.0, table.RowsFor("FE")[0].WorkforceCost())
}
