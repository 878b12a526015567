package core

import (
	"invconv/internal/types"
)

// FieldTransforms supplies the per-column transforms applied while rows
// are built. Deferred columns are built after all others, so their
// transforms can read the values already produced for the row.
type FieldTransforms interface {
	BeginRow(values map[string]string)
	Transform(column string) (TransformFunc, bool)
	Deferred(column string) bool
}

// RowBuilder turns spreadsheet rows into output column values through a
// finalized Table.
type RowBuilder struct {
	table      *Table
	columns    []string
	transforms FieldTransforms
}

func NewRowBuilder(table *Table, columns []string, transforms FieldTransforms) RowBuilder {
	return RowBuilder{table: table, columns: columns, transforms: transforms}
}

// Build returns the values of one row. An empty result means the sheet
// produces nothing, e.g. because it is avoided.
func (b RowBuilder) Build(sheet types.Sheet, row []string) map[string]string {
	values := map[string]string{}
	if b.transforms != nil {
		b.transforms.BeginRow(values)
	}
	var deferred []string
	for _, column := range b.columns {
		if b.transforms != nil && b.transforms.Deferred(column) {
			deferred = append(deferred, column)
			continue
		}
		b.buildColumn(sheet, row, column, values)
	}
	for _, column := range deferred {
		b.buildColumn(sheet, row, column, values)
	}
	return values
}

// buildColumn resolves column from the cell under its matched header. A
// column without a matched header is resolved once from empty text.
func (b RowBuilder) buildColumn(sheet types.Sheet, row []string, column string, values map[string]string) {
	src := sheet.FileSection()
	var transform TransformFunc
	if b.transforms != nil {
		transform, _ = b.transforms.Transform(column)
	}
	_, matched := b.table.ResolvedInput(src, column)
	for _, header := range sheet.Headers {
		if !b.table.IsResolvable(src, column, header.Name) {
			continue
		}
		raw := ""
		if matched {
			raw = sheet.Cell(row, header)
		}
		values[column] = b.table.Resolve(src, column, raw, transform)
		return
	}
}
