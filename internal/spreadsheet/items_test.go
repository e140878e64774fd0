package spreadsheet

import (
	"bytes"
	"ipbtracker/internal/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheet, axis, &r))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseItems_CaseInsensitiveHeaderAndDefaults(t *testing.T) {
	t.Parallel()

	buf := workbook(t, [][]interface{}{
		{"UNIT", " description ", "Quantity"},
		{"zak", "Semen 50kg", 10},
		{"", "Pasir", "abc"},
		{"pcs", "", 1000},
		{"", "", ""},
		{"pail", "Cat Tembok Putih", "2"},
	})

	items, err := ParseItems(buf)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, models.Item{Description: "Semen 50kg", Quantity: 10, Unit: "zak"}, items[0])
	assert.Equal(t, models.Item{Description: "Pasir", Quantity: 0, Unit: models.DefaultItemUnit}, items[1])
	assert.Equal(t, models.Item{Description: models.DefaultItemDescription, Quantity: 1000, Unit: "pcs"}, items[2])
	assert.Equal(t, models.Item{Description: "Cat Tembok Putih", Quantity: 2, Unit: "pail"}, items[3])
}

func TestParseItems_MissingColumns(t *testing.T) {
	t.Parallel()

	buf := workbook(t, [][]interface{}{
		{"Description"},
		{"Batu Bata"},
	})

	items, err := ParseItems(buf)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].Quantity)
	assert.Equal(t, "pcs", items[0].Unit)
}

func TestParseItems_HeaderOnly(t *testing.T) {
	t.Parallel()

	buf := workbook(t, [][]interface{}{{"Description", "Quantity", "Unit"}})

	_, err := ParseItems(buf)
	assert.ErrorIs(t, err, models.ErrEmptySheet)
}

func TestParseItems_NotAWorkbook(t *testing.T) {
	t.Parallel()

	_, err := ParseItems(strings.NewReader("plain text"))
	assert.ErrorIs(t, err, models.ErrInvalidParams)
}

func TestWriteItems_ThenParse(t *testing.T) {
	t.Parallel()

	items := []models.Item{
		{Description: "Semen 50kg", Quantity: 10, Unit: "zak"},
		{Description: "Pasir", Quantity: 5, Unit: "m3"},
	}

	raw, err := WriteItems(items)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Description", "Quantity", "Unit"}, rows[0])
	assert.Equal(t, []string{"Pasir", "5", "m3"}, rows[2])

	parsed, err := ParseItems(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, items, parsed)
}

func TestWriteItems_Empty(t *testing.T) {
	t.Parallel()

	raw, err := WriteItems(nil)
	require.NoError(t, err)

	_, err = ParseItems(bytes.NewReader(raw))
	assert.ErrorIs(t, err, models.ErrEmptySheet)
}

func TestParseQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{"integer", "12", 12, false},
		{"float formatted", "3.0", 3, false},
		{"fraction truncated", "7.9", 7, false},
		{"not a number", "x", 0, false},
		{"empty", "", 0, false},
		{"nan", "NaN", 0, false},
		{"negative", "-4", 0, false},
		{"huge negative", "-1e30", 0, false},
		{"largest storable", "2147483647", models.MaxItemQuantity, false},
		{"one past largest", "2147483648", 0, true},
		{"beyond int32", "3000000000", 0, true},
		{"huge float", "1e30", 0, true},
		{"beyond float64", "1e400", 0, true},
		{"infinity", "Inf", 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseQuantity(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrInvalidParams)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseItems_QuantityOutOfRange(t *testing.T) {
	t.Parallel()

	buf := workbook(t, [][]interface{}{
		{"Description", "Quantity", "Unit"},
		{"Semen 50kg", 10, "zak"},
		{"Pasir", "3000000000", "m3"},
	})

	items, err := ParseItems(buf)
	assert.ErrorIs(t, err, models.ErrInvalidParams)
	assert.Contains(t, err.Error(), "row 3")
	assert.Nil(t, items)
}
