package flatfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"prodplan/internal/domain/exchange"
	"prodplan/internal/domain/recipe"
)

// Recipe tables arrive as CSV with a header row. Cost columns vary by
// exchange: a single-exchange table uses plain names ("WfCst"), a
// consolidated multi-exchange table suffixes them ("WfCst-AI1",
// "WfCst-AI17"/"WfCst-AI130" for the reference-price variants). Column
// resolution happens once here so the engine only ever sees typed rows.

// requiredColumns must be present in every recipe table.
var requiredColumns = []string{"RecipeID", "Area", "AreaPerOutput", "Runs P/D", "Output1MAT"}

// LoadRecipeCSV reads a recipe table file for one (exchange, price kind)
// pair.
func LoadRecipeCSV(path, exchangeCode string, kind exchange.PriceKind) (*recipe.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipe table %s: %w", path, err)
	}
	defer f.Close()
	return ReadRecipeTable(f, exchangeCode, kind)
}

// ReadRecipeTable parses a recipe table from a reader. Missing required
// columns are a structural error and fail the whole load; individually
// malformed data rows are logged and skipped.
func ReadRecipeTable(r io.Reader, exchangeCode string, kind exchange.PriceKind) (*recipe.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe table header: %w", err)
	}

	cols := newColumnMap(header, exchangeCode, kind)
	for _, name := range requiredColumns {
		if !cols.has(name) {
			return nil, fmt.Errorf("recipe table is missing required column %q", name)
		}
	}

	var rows []*recipe.Row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read recipe table line %d: %w", line, err)
		}

		row, err := cols.buildRow(record)
		if err != nil {
			log.Printf("flatfile: skipping recipe table line %d: %v", line, err)
			continue
		}
		rows = append(rows, row)
	}

	return recipe.NewTable(rows), nil
}

// columnMap resolves logical column names to record indexes, including the
// exchange-suffix convention for cost columns.
type columnMap struct {
	index        map[string]int
	exchangeCode string
	suffix       string
}

func newColumnMap(header []string, exchangeCode string, kind exchange.PriceKind) *columnMap {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	suffix := ""
	switch kind {
	case exchange.KindAvg7:
		suffix = "7"
	case exchange.KindAvg30:
		suffix = "30"
	}
	return &columnMap{index: index, exchangeCode: exchangeCode, suffix: suffix}
}

func (c *columnMap) has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// costColumn resolves an exchange-dependent column, preferring the most
// specific suffix available: "Name-EXCH7", then "Name-EXCH", then "Name".
func (c *columnMap) costColumn(record []string, name string) float64 {
	candidates := []string{
		name + "-" + c.exchangeCode + c.suffix,
		name + "-" + c.exchangeCode,
		name,
	}
	for _, candidate := range candidates {
		if i, ok := c.index[candidate]; ok && i < len(record) {
			return parseFloat(record[i])
		}
	}
	return 0
}

func (c *columnMap) value(record []string, name string) string {
	i, ok := c.index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func (c *columnMap) buildRow(record []string) (*recipe.Row, error) {
	recipeID := c.value(record, "RecipeID")
	if recipeID == "" {
		return nil, fmt.Errorf("empty RecipeID")
	}

	inputs := make([]recipe.Slot, 0, recipe.MaxInputSlots)
	for i := 1; i <= recipe.MaxInputSlots; i++ {
		mat := c.value(record, fmt.Sprintf("Input%dMAT", i))
		if mat == "" {
			continue
		}
		inputs = append(inputs, recipe.Slot{
			Ticker: mat,
			Amount: parseFloat(c.value(record, fmt.Sprintf("Input%dCNT", i))),
		})
	}

	outputs := make([]recipe.Slot, 0, recipe.MaxOutputSlots)
	for i := 1; i <= recipe.MaxOutputSlots; i++ {
		mat := c.value(record, fmt.Sprintf("Output%dMAT", i))
		if mat == "" {
			continue
		}
		outputs = append(outputs, recipe.Slot{
			Ticker: mat,
			Amount: parseFloat(c.value(record, fmt.Sprintf("Output%dCNT", i))),
		})
	}

	return recipe.NewRow(
		recipeID,
		c.value(record, "Building"),
		inputs,
		outputs,
		parseFloat(c.value(record, "Area")),
		parseFloat(c.value(record, "AreaPerOutput")),
		parseFloat(c.value(record, "Runs P/D")),
		c.costColumn(record, "WfCst"),
		c.costColumn(record, "Deprec"),
		c.costColumn(record, "AllBuildCst"),
	)
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
