package core

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invconv/internal/types"
)

// ---------------------------------------------------------------------------
// Name resolution
// ---------------------------------------------------------------------------

func TestResolveFileSection(t *testing.T) {
	table := NewTable()
	table.Mappings.Set(types.GenericFileSection(), "name", []string{"NAME"})
	table.Mappings.Set(types.NewFileSection("inv", types.SectFallback), "name", []string{"NAME"})
	table.Mappings.Set(types.NewFileSection("inv", "Tools"), "name", []string{"NAME"})
	table.Avoid.AddEmpty(types.NewFileSection("inv", "Old"))

	abs, err := filepath.Abs("inv.xlsx")
	require.NoError(t, err)

	tests := []struct {
		name    string
		file    string
		section string
		want    types.FileSection
	}{
		{name: "extension stripped", file: "inv.xlsx", section: "Tools", want: types.NewFileSection("inv", "Tools")},
		{name: "directory and extension", file: filepath.Join("data", "inv.xlsx"), section: "Tools", want: types.NewFileSection("inv", "Tools")},
		{name: "absolute path", file: abs, section: "Tools", want: types.NewFileSection("inv", "Tools")},
		{name: "padded section", file: "inv", section: "  Tools ", want: types.NewFileSection("inv", "Tools")},
		{name: "file fallback", file: "inv.xlsx", section: "Parts", want: types.NewFileSection("inv", types.SectFallback)},
		{name: "global fallback", file: "other.xlsx", section: "Tools", want: types.GenericFileSection()},
		{name: "avoided key", file: "inv.xlsx", section: "Old", want: types.NewFileSection("inv", "Old")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.ResolveFileSection(tt.file, tt.section)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFileSectionWithoutFallback(t *testing.T) {
	table := NewTable()
	table.Mappings.Set(types.NewFileSection("inv", "Tools"), "name", []string{"NAME"})

	_, ok := table.ResolveFileSection("inv.xlsx", "Parts")
	assert.False(t, ok)
	_, ok = table.ResolveFileSection("other.xlsx", "Tools")
	assert.False(t, ok)
}

// ---------------------------------------------------------------------------
// Materialization and downstream interface
// ---------------------------------------------------------------------------

func finalizedTable(t *testing.T, sheets []types.Sheet, lines ...string) *Table {
	t.Helper()
	p, err := finalizeMapping(t, context.Background(), sheets, lines...)
	require.NoError(t, err)
	return p.Table()
}

func TestMaterializeTemplates(t *testing.T) {
	sheets := []types.Sheet{newSheet("inv.xlsx", "Sheet1", "Name", "Weight")}
	table := finalizedTable(t, sheets,
		"name : Name",
		"weight : Weight",
		`weight < "$output_col from $input_col: $input_txt"`,
		`productTypeSelect < "product"`,
		`label < "$output_col"`,
	)

	fs := types.GenericFileSection()
	got, _ := table.Output.Get(fs, "name")
	assert.Equal(t, VarOutputTxt, got)
	got, _ = table.Output.Get(fs, "weight")
	assert.Equal(t, "weight from Weight: $input_txt", got)
	got, _ = table.Output.Get(fs, "productTypeSelect")
	assert.Equal(t, "product", got)
	got, _ = table.Output.Get(fs, "label")
	assert.Equal(t, "label", got)
}

func TestResolve(t *testing.T) {
	sheets := []types.Sheet{newSheet("inv.xlsx", "Sheet1", "Name", "Weight")}
	table := finalizedTable(t, sheets,
		"name : Name",
		"weight : Weight",
		`weight < "$input_txt ($output_txt)"`,
	)
	src := types.NewFileSection("inv.xlsx", "Sheet1")
	upper := func(raw string) string { return strings.ToUpper(raw) }

	assert.Equal(t, "WIDGET", table.Resolve(src, "name", "widget", upper))
	assert.Equal(t, "widget", table.Resolve(src, "name", "widget", nil))
	assert.Equal(t, "5 kg (5 KG)", table.Resolve(src, "weight", "5 kg", upper))
	assert.Equal(t, "fallback", table.Resolve(src, "code", "ignored", func(raw string) string {
		if raw == "" {
			return "fallback"
		}
		return raw
	}))
	assert.Equal(t, "", table.Resolve(src, "code", "ignored", nil))
}

func TestIsResolvable(t *testing.T) {
	sheets := []types.Sheet{
		newSheet("inv.xlsx", "Sheet1", "Name", "Notes"),
		newSheet("inv.xlsx", "Old", "Name"),
	}
	table := finalizedTable(t, sheets,
		"name : Name",
		"~description : Description",
		"!AVOID [FILE: inv.xlsx, SECTION: Old]",
	)
	src := types.NewFileSection("inv.xlsx", "Sheet1")

	assert.True(t, table.IsResolvable(src, "name", "Name"))
	assert.False(t, table.IsResolvable(src, "name", "Notes"))
	assert.True(t, table.IsResolvable(src, "description", "Notes"))
	assert.True(t, table.IsResolvable(src, "code", "Notes"))
	assert.False(t, table.IsResolvable(types.NewFileSection("inv.xlsx", "Old"), "name", "Name"))
}

func TestSections(t *testing.T) {
	sheets := []types.Sheet{newSheet("inv.xlsx", "Sheet1", "Name", "Notes")}
	table := finalizedTable(t, sheets,
		"name : Name",
		"~description : Notes",
	)

	sections := table.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, types.GenericFileSection(), sections[0].FileSection)
	assert.Equal(t, []types.ResolvedColumn{
		{Output: "description", Input: "Notes", Template: VarOutputTxt, Optional: true},
		{Output: "name", Input: "Name", Template: VarOutputTxt},
	}, sections[0].Columns)
}
