// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// Worksheet is the content of one generated worksheet, row by row.
type Worksheet struct {
	Name string
	Rows [][]string
}

// WriteWorkbook saves an xlsx workbook with the given worksheets in order.
func WriteWorkbook(t *testing.T, path string, sheets ...Worksheet) {
	t.Helper()
	require.NotEmpty(t, sheets)
	f := excelize.NewFile()
	defer func() {
		require.NoError(t, f.Close())
	}()

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheets[0].Name))
	for _, sheet := range sheets[1:] {
		_, err := f.NewSheet(sheet.Name)
		require.NoError(t, err)
	}
	for _, sheet := range sheets {
		for i, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			values := make([]interface{}, len(row))
			for j, value := range row {
				values[j] = value
			}
			require.NoError(t, f.SetSheetRow(sheet.Name, cell, &values))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

// InventoryWorkbook writes the sample hardware store workbook used with
// fixtures/product.axm and returns its path.
func InventoryWorkbook(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "inventory.xlsx")
	WriteWorkbook(t, path,
		Worksheet{Name: "Tools", Rows: [][]string{
			{"Hardware Store Inventory"},
			{"Name", "Category", "Size", "Retail", "Cost", "Notes"},
			{"Claw Hammer", "Hand Tools", "Unit", "$12.50", "7.25", "steel head"},
			{"Wood Screws", "FAS", "1 kg", "4.99", "2.10", ""},
			{"", "", "", "", "", ""},
			{"Tape", "Hardware", "10m roll", "3", "1.5", "#REF!"},
		}},
		Worksheet{Name: "Services", Rows: [][]string{
			{"Item", "Category", "Unit", "Price"},
			{"Key Cutting", "Misc", "Unit", "5.00"},
		}},
		Worksheet{Name: "Archive", Rows: [][]string{
			{"Legacy", "Stuff"},
			{"old", "row"},
		}},
		Worksheet{Name: "Notes", Rows: [][]string{
			{"just a title"},
		}},
	)
	return path
}
