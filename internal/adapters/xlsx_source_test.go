package adapters

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invconv/internal/types"
	"invconv/tests/testutil"
)

func TestLoadSheets(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())
	path := testutil.InventoryWorkbook(t, t.TempDir())

	sheets, err := NewXlsxSourceAdapter().LoadSheets(ctx, []string{path})
	require.NoError(t, err)
	require.Len(t, sheets, 3)

	tools := sheets[0]
	assert.Equal(t, types.NewFileSection(path, "Tools"), tools.FileSection())
	if diff := cmp.Diff([]string{"Name", "Category", "Size", "Retail", "Cost", "Notes"}, tools.HeaderNames()); diff != "" {
		t.Fatalf("unexpected headers (-want +got):\n%s", diff)
	}
	require.Len(t, tools.Rows, 4)
	assert.Equal(t, "Claw Hammer", tools.Cell(tools.Rows[0], tools.Headers[0]))
	assert.Equal(t, "unknown", tools.Cell(tools.Rows[3], tools.Headers[5]))

	assert.Equal(t, "Services", sheets[1].Section)
	assert.Equal(t, "Archive", sheets[2].Section)
	assert.Contains(t, buf.String(), "unknown reference found at F6")
	assert.Contains(t, buf.String(), "worksheet contains no valid headers")
}

func TestReadSheetBlankHeaderEndsHeaderRow(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	sheet, ok := readSheet(ctx, "inv.xlsx", "Sheet1", [][]string{
		{"Name", "Price", "", "Extra"},
		{"Hammer", "12", "x", "y"},
	})
	require.True(t, ok)
	assert.Equal(t, []types.Header{{Name: "Name", Index: 1}, {Name: "Price", Index: 2}}, sheet.Headers)
	assert.Equal(t, [][]string{{"Hammer", "12"}}, sheet.Rows)
	assert.Contains(t, buf.String(), "blank header C1 will be ignored")
}

func TestReadSheetRejects(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{name: "empty", rows: nil},
		{name: "title only", rows: [][]string{{"Inventory"}, {"", "x"}}},
		{name: "header without data", rows: [][]string{{"Name", "Price"}}},
		{name: "blank row after header", rows: [][]string{{"Name", "Price"}, {"", " "}, {"Hammer", "12"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := readSheet(context.Background(), "inv.xlsx", "Sheet1", tt.rows)
			assert.False(t, ok)
		})
	}
}

func TestLoadSheetsWithoutHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	testutil.WriteWorkbook(t, path, testutil.Worksheet{Name: "Sheet1", Rows: [][]string{{"title"}}})

	_, err := NewXlsxSourceAdapter().LoadSheets(context.Background(), []string{path})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestLoadSheetsMissingFile(t *testing.T) {
	_, err := NewXlsxSourceAdapter().LoadSheets(context.Background(), []string{filepath.Join(t.TempDir(), "absent.xlsx")})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}
