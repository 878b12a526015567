package core

import (
	"path/filepath"
	"strings"

	"invconv/internal/types"
)

// Template placeholders.
const (
	VarInputCol  = "$input_col"
	VarOutputCol = "$output_col"
	VarInputTxt  = "$input_txt"
	VarOutputTxt = "$output_txt"
)

// Table is the state of one mapping file: the raw declarations gathered
// while parsing and the resolved results produced by finalize.
type Table struct {
	Mappings  *Registry[[]string]
	Templates *Registry[string]
	Optional  *Registry[bool]
	Deletions *Registry[bool]
	Avoid     *KeyList

	// Valid holds the matched input header per output column. An empty
	// string means the column is unresolved.
	Valid *Registry[string]
	// Output holds the materialized template per output column.
	Output *Registry[string]

	inputs     map[types.FileSection][]string
	inputOrder []types.FileSection

	// resolved caches name resolution once the table is final.
	resolved map[types.FileSection]resolvedName
	final    bool
}

type resolvedName struct {
	fs types.FileSection
	ok bool
}

func NewTable() *Table {
	return &Table{
		Mappings:  NewRegistry[[]string](),
		Templates: NewRegistry[string](),
		Optional:  NewRegistry[bool](),
		Deletions: NewRegistry[bool](),
		Avoid:     NewKeyList(),
		Valid:     NewRegistry[string](),
		Output:    NewRegistry[string](),
		inputs:    map[types.FileSection][]string{},
		resolved:  map[types.FileSection]resolvedName{},
	}
}

// AddInput records the headers of a real (file, section) source. Repeated
// sources keep their first position and take the latest headers.
func (t *Table) AddInput(fs types.FileSection, headers []string) {
	if _, ok := t.inputs[fs]; !ok {
		t.inputOrder = append(t.inputOrder, fs)
	}
	t.inputs[fs] = append([]string(nil), headers...)
}

// Inputs returns the real sources in the order they were added.
func (t *Table) Inputs() []types.FileSection {
	return append([]types.FileSection(nil), t.inputOrder...)
}

// Headers returns the headers recorded for a real source.
func (t *Table) Headers(fs types.FileSection) []string {
	return t.inputs[fs]
}

// known is the universe specialization expands into: every key that
// received a declaration.
func (t *Table) known() ([]types.FileSection, error) {
	seen := map[types.FileSection]bool{}
	var keys []types.FileSection
	declared := [][]types.FileSection{
		t.Mappings.Keys(),
		t.Templates.Keys(),
		t.Optional.Keys(),
		t.Deletions.Keys(),
	}
	for _, registryKeys := range declared {
		for _, key := range registryKeys {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	if len(keys) == 0 {
		return nil, errSourceNotIterable("the declared file sections")
	}
	sortFileSections(keys)
	return keys, nil
}

// names is the universe name resolution searches: declared keys plus
// avoided keys.
func (t *Table) names() []types.FileSection {
	keys, _ := t.known()
	for _, key := range t.Avoid.Keys() {
		if !containsFileSection(keys, key) {
			keys = append(keys, key)
		}
	}
	sortFileSections(keys)
	return keys
}

// ResolveFileSection finds the declared FileSection a real file and section
// belong to. It falls back to (file, common) and then (common, common).
func (t *Table) ResolveFileSection(file string, section string) (types.FileSection, bool) {
	key := types.NewFileSection(file, section)
	if cached, ok := t.resolved[key]; ok && t.final {
		return cached.fs, cached.ok
	}
	fs, ok := t.resolveFileSection(file, section)
	if t.final {
		t.resolved[key] = resolvedName{fs: fs, ok: ok}
	}
	return fs, ok
}

func (t *Table) resolveFileSection(file string, section string) (types.FileSection, bool) {
	universe := t.names()
	name := matchFileName(universe, file)
	if name == "" {
		name = types.FileFallback
	}
	sect := matchSectionName(universe, section)
	if sect == "" {
		sect = types.SectFallback
	}
	candidates := []types.FileSection{
		types.NewFileSection(name, sect),
		types.NewFileSection(name, types.SectFallback),
		types.GenericFileSection(),
	}
	for _, candidate := range candidates {
		if containsFileSection(universe, candidate) {
			return candidate, true
		}
	}
	return types.FileSection{}, false
}

// IsAvoided reports whether a real source resolves to an avoided key.
func (t *Table) IsAvoided(fs types.FileSection) bool {
	resolved, ok := t.ResolveFileSection(fs.File, fs.Section)
	return ok && t.Avoid.Has(resolved)
}

func matchFileName(universe []types.FileSection, file string) string {
	abs, _ := filepath.Abs(file)
	rel := file
	if wd, err := filepath.Abs("."); err == nil {
		if r, err := filepath.Rel(wd, abs); err == nil {
			rel = r
		}
	}
	base := filepath.Base(file)
	for _, key := range universe {
		switch key.File {
		case file, abs, rel, base:
			return key.File
		}
	}
	if ext := filepath.Ext(file); ext != "" && len(file) > 1 {
		return matchFileName(universe, strings.TrimSuffix(file, ext))
	}
	return ""
}

func matchSectionName(universe []types.FileSection, section string) string {
	for _, key := range universe {
		if key.Section == section {
			return key.Section
		}
	}
	if trimmed := strings.TrimSpace(section); trimmed != section {
		return matchSectionName(universe, trimmed)
	}
	return ""
}

func containsFileSection(keys []types.FileSection, fs types.FileSection) bool {
	for _, key := range keys {
		if key == fs {
			return true
		}
	}
	return false
}

// ResolvedInput returns the header an output column of a real source was
// matched to.
func (t *Table) ResolvedInput(src types.FileSection, column string) (string, bool) {
	fs, ok := t.ResolveFileSection(src.File, src.Section)
	if !ok {
		return "", false
	}
	input, ok := t.Valid.Get(fs, column)
	if !ok || input == "" {
		return "", false
	}
	return input, true
}

// Resolve renders the output text of column for a cell of a real source.
// $input_txt becomes raw and $output_txt becomes transform(raw), or raw
// when there is no transform. Columns without a template yield
// transform("").
func (t *Table) Resolve(src types.FileSection, column string, raw string, transform TransformFunc) string {
	if fs, ok := t.ResolveFileSection(src.File, src.Section); ok {
		if template, ok := t.Output.Get(fs, column); ok {
			out := strings.ReplaceAll(template, VarInputTxt, raw)
			if strings.Contains(out, VarOutputTxt) {
				value := raw
				if transform != nil {
					value = transform(raw)
				}
				out = strings.ReplaceAll(out, VarOutputTxt, value)
			}
			return out
		}
	}
	if transform != nil {
		return transform("")
	}
	return ""
}

// IsResolvable reports whether a cell under inputCol may produce the value
// of column. It is false for unknown or avoided sources and for any header
// other than the one the column resolved to.
func (t *Table) IsResolvable(src types.FileSection, column string, inputCol string) bool {
	fs, ok := t.ResolveFileSection(src.File, src.Section)
	if !ok || !t.Output.Has(fs) {
		return false
	}
	if !t.Valid.Has(fs) {
		return true
	}
	if _, ok := t.Output.Get(fs, column); !ok {
		return true
	}
	input, ok := t.Valid.Get(fs, column)
	if !ok || input == "" {
		return true
	}
	return input == inputCol
}
