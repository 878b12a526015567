package core

import (
	"context"
	"strings"

	"invconv/internal/types"
)

// TransformFunc turns the raw text of a cell into the value of an output
// column.
type TransformFunc func(raw string) string

// materialize fills the output templates. Matched columns get their header
// and name substituted; columns without a template output $output_txt.
func (t *Table) materialize(ctx context.Context) error {
	for _, fs := range t.Valid.Keys() {
		t.Output.AddEmpty(fs)
		for _, column := range t.Valid.Names(fs) {
			input, _ := t.Valid.Get(fs, column)
			template, ok := t.Templates.Get(fs, column)
			if !ok {
				t.Output.Set(fs, column, VarOutputTxt)
				continue
			}
			template = strings.ReplaceAll(template, VarInputCol, input)
			t.Output.Set(fs, column, strings.ReplaceAll(template, VarOutputCol, column))
		}
	}
	for _, fs := range t.Templates.Keys() {
		if t.Avoid.Has(fs) {
			continue
		}
		for _, column := range t.Templates.Names(fs) {
			if _, ok := t.Output.Get(fs, column); ok {
				continue
			}
			template, _ := t.Templates.Get(fs, column)
			t.Output.Set(fs, column, strings.ReplaceAll(template, VarOutputCol, column))
		}
	}
	t.final = true
	return nil
}

// Sections reports the finalized columns of every FileSection an input
// resolved to.
func (t *Table) Sections() []types.ResolvedSection {
	var sections []types.ResolvedSection
	for _, fs := range t.Output.Keys() {
		section := types.ResolvedSection{FileSection: fs}
		for _, column := range t.Output.Names(fs) {
			template, _ := t.Output.Get(fs, column)
			input, _ := t.Valid.Get(fs, column)
			optional, _ := t.Optional.Get(fs, column)
			section.Columns = append(section.Columns, types.ResolvedColumn{
				Output:   column,
				Input:    input,
				Template: template,
				Optional: optional,
			})
		}
		sections = append(sections, section)
	}
	return sections
}
