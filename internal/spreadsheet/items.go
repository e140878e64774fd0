// Package spreadsheet converts IPB item lines to and from xlsx workbooks.
package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"ipbtracker/internal/models"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const pkg = "spreadsheet/"

const (
	SheetName   = "Items"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	colDescription = "description"
	colQuantity    = "quantity"
	colUnit        = "unit"
)

var header = []interface{}{"Description", "Quantity", "Unit"}

// ParseItems reads the first sheet of the workbook. The first row is the
// header; columns are matched by name, case-insensitively, in any order.
func ParseItems(r io.Reader) ([]models.Item, error) {
	op := pkg + "ParseItems"

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, models.ErrInvalidParams, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrEmptySheet)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrEmptySheet)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, seen := columns[key]; !seen {
			columns[key] = i
		}
	}

	items := make([]models.Item, 0, len(rows)-1)

	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		quantity, err := parseQuantity(cell(row, columns, colQuantity))
		if err != nil {
			// i+2: one for the header, one for 1-based sheet rows.
			return nil, fmt.Errorf("%s: row %d: %w", op, i+2, err)
		}

		item := models.Item{
			Description: cell(row, columns, colDescription),
			Quantity:    quantity,
			Unit:        cell(row, columns, colUnit),
		}
		item.Normalize()

		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrEmptySheet)
	}

	return items, nil
}

// WriteItems renders items into a single-sheet workbook.
func WriteItems(items []models.Item) ([]byte, error) {
	op := pkg + "WriteItems"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i, item := range items {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		row := []interface{}{item.Description, item.Quantity, item.Unit}
		if err := f.SetSheetRow(SheetName, axis, &row); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cell(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseQuantity truncates numeric cells to whole units. Non-numeric and
// negative values read as 0; values the items table cannot hold are rejected.
func parseQuantity(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	// Numeric cells may come back formatted as floats ("10.0").
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, nil
	}

	switch {
	case math.IsNaN(f), f < 0:
		return 0, nil
	case f > models.MaxItemQuantity:
		return 0, fmt.Errorf("quantity %q out of range: %w", s, models.ErrInvalidParams)
	}

	return int(f), nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
