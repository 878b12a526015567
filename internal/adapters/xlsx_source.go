package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"invconv/internal/ports"
	"invconv/internal/shared"
	"invconv/internal/types"
)

const (
	brokenReference  = "#REF!"
	unknownReference = "unknown"
)

// XlsxSourceAdapter reads worksheets of xlsx workbooks as Sheets.
type XlsxSourceAdapter struct{}

func NewXlsxSourceAdapter() XlsxSourceAdapter {
	return XlsxSourceAdapter{}
}

// LoadSheets returns every worksheet that has a header row followed by
// data, in workbook then worksheet order.
func (a XlsxSourceAdapter) LoadSheets(ctx context.Context, paths []string) ([]types.Sheet, error) {
	var sheets []types.Sheet
	for _, path := range paths {
		loaded, err := a.loadWorkbook(ctx, path)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, loaded...)
	}
	if len(sheets) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no file contained valid headers")
	}
	return sheets, nil
}

func (a XlsxSourceAdapter) loadWorkbook(ctx context.Context, path string) ([]types.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to open workbook %s", path)).
			WithCause(err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Ctx(ctx).Warn().Err(cerr).Str("file", path).Msg("failed to close workbook")
		}
	}()

	var sheets []types.Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("failed to read worksheet %s of %s", name, path)).
				WithCause(err)
		}
		sheet, ok := readSheet(ctx, path, name, rows)
		if !ok {
			log.Ctx(ctx).Warn().
				Str("file", path).
				Str("section", name).
				Msg("worksheet contains no valid headers")
			continue
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// readSheet finds the header row, the first row whose first two cells are
// filled, and keeps the rows below it.
func readSheet(ctx context.Context, file string, section string, rows [][]string) (types.Sheet, bool) {
	headerRow := -1
	for i, row := range rows {
		if len(row) >= 2 && strings.TrimSpace(row[0]) != "" && strings.TrimSpace(row[1]) != "" {
			headerRow = i
			break
		}
	}
	if headerRow < 0 || headerRow+1 >= len(rows) || shared.IsBlankRow(rows[headerRow+1]) {
		return types.Sheet{}, false
	}

	logger := log.Ctx(ctx).With().Str("file", file).Str("section", section).Logger()
	var headers []types.Header
	for i, cell := range rows[headerRow] {
		if strings.TrimSpace(cell) == "" {
			cellName, _ := excelize.CoordinatesToCellName(i+1, headerRow+1)
			logger.Warn().Msgf("blank header %s will be ignored", cellName)
			break
		}
		headers = append(headers, types.Header{Name: cell, Index: i + 1})
	}

	data := make([][]string, 0, len(rows)-headerRow-1)
	for r, row := range rows[headerRow+1:] {
		cells := make([]string, 0, len(headers))
		for c, cell := range row {
			if c >= len(headers) {
				break
			}
			if cell == brokenReference {
				cellName, _ := excelize.CoordinatesToCellName(c+1, headerRow+r+2)
				logger.Warn().Msgf("unknown reference found at %s; defaulting to %q", cellName, unknownReference)
				cell = unknownReference
			}
			cells = append(cells, cell)
		}
		data = append(data, cells)
	}
	return types.Sheet{File: file, Section: section, Headers: headers, Rows: data}, true
}

var _ ports.CellSourcePort = XlsxSourceAdapter{}
