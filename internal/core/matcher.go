package core

import (
	"context"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog/log"

	"invconv/internal/shared"
	"invconv/internal/types"
)

func (t *Table) resolutionSteps() []scheduledOperation {
	return []scheduledOperation{
		{phase: types.PhaseValidColumn, name: "prepare valid columns", run: t.prepValid},
		{phase: types.PhaseValidColumn, name: "find valid columns", run: t.findValid},
		{phase: types.PhaseValidColumn, name: "purge valid columns", run: t.purgeValid},
		{phase: types.PhaseValidColumn, name: "check valid columns", run: t.checkValid},
		{phase: types.PhaseOutputString, name: "materialize output templates", run: t.materialize},
	}
}

// applyDeletions drops deleted columns. A FileSection left with nothing to
// produce is avoided.
func (t *Table) applyDeletions(ctx context.Context) error {
	for _, fs := range t.Deletions.Keys() {
		for _, column := range t.Deletions.Names(fs) {
			t.Mappings.Delete(fs, column)
			t.Templates.Delete(fs, column)
		}
		if t.Mappings.Has(fs) && t.Mappings.Len(fs) == 0 && t.Templates.Len(fs) == 0 {
			t.Avoid.AddEmpty(fs)
			log.Ctx(ctx).Debug().Str("file_section", fs.String()).Msg("every column deleted; section avoided")
		}
	}
	return nil
}

func (t *Table) applyAvoid(ctx context.Context) error {
	for _, fs := range t.Avoid.Keys() {
		t.Mappings.Remove(fs)
		t.Templates.Remove(fs)
		t.Optional.Remove(fs)
		t.Deletions.Remove(fs)
	}
	return nil
}

// prepValid starts every declared column of every resolved input section
// as unresolved.
func (t *Table) prepValid(ctx context.Context) error {
	for _, src := range t.inputOrder {
		fs, ok := t.ResolveFileSection(src.File, src.Section)
		if !ok {
			return errInvalidFileSection(src.File, src.Section)
		}
		if t.Avoid.Has(fs) {
			log.Ctx(ctx).Info().Str("file", src.File).Str("section", src.Section).Msg("section is avoided")
			continue
		}
		if !t.Mappings.Has(fs) && !t.Templates.Has(fs) {
			return errInvalidFileSection(src.File, src.Section)
		}
		t.Valid.AddEmpty(fs)
		for _, column := range t.Mappings.Names(fs) {
			if _, ok := t.Valid.Get(fs, column); !ok {
				t.Valid.Set(fs, column, "")
			}
		}
	}
	return nil
}

// findValid matches each column against the headers of the sources that
// resolve to its FileSection. The first source to match a column wins.
func (t *Table) findValid(ctx context.Context) error {
	for _, src := range t.inputOrder {
		fs, ok := t.ResolveFileSection(src.File, src.Section)
		if !ok || !t.Valid.Has(fs) {
			continue
		}
		headers := t.inputs[src]
		for _, column := range t.Valid.Names(fs) {
			if input, _ := t.Valid.Get(fs, column); input != "" {
				continue
			}
			candidates, _ := t.Mappings.Get(fs, column)
			t.Valid.Set(fs, column, matchColumn(candidates, headers))
		}
		t.logUnused(ctx, src, fs, headers)
	}
	return nil
}

func (t *Table) logUnused(ctx context.Context, src types.FileSection, fs types.FileSection, headers []string) {
	used := map[string]bool{}
	for _, column := range t.Valid.Names(fs) {
		input, _ := t.Valid.Get(fs, column)
		used[input] = true
	}
	for _, header := range headers {
		if strings.TrimSpace(header) == "" || used[header] {
			continue
		}
		log.Ctx(ctx).Info().
			Str("file", src.File).
			Str("section", src.Section).
			Msgf("column %q will be ignored", header)
	}
}

// matchColumn returns the first header matching the candidates in order.
// Each candidate is tried as an exact match, then as a substring of the
// header, ignoring case.
func matchColumn(candidates []string, headers []string) string {
	for _, candidate := range candidates {
		candidate = shared.NormalizeHeader(candidate)
		for _, header := range headers {
			if strings.TrimSpace(header) != "" && strings.ToUpper(header) == candidate {
				return header
			}
		}
		for _, header := range headers {
			if strings.TrimSpace(header) != "" && strings.Contains(strings.ToUpper(header), candidate) {
				return header
			}
		}
	}
	return ""
}

// purgeValid removes everything that may stay unresolved: avoided
// sections, deleted columns, unresolved optional columns and generic
// sections no input resolved to.
func (t *Table) purgeValid(ctx context.Context) error {
	for _, fs := range t.Avoid.Keys() {
		t.Valid.Remove(fs)
	}
	for _, fs := range t.Deletions.Keys() {
		if !t.Valid.Has(fs) {
			continue
		}
		for _, column := range t.Deletions.Names(fs) {
			t.Valid.Delete(fs, column)
		}
	}
	for _, fs := range t.Optional.Keys() {
		if !t.Valid.Has(fs) {
			continue
		}
		for _, column := range t.Optional.Names(fs) {
			if input, ok := t.Valid.Get(fs, column); ok && input == "" {
				t.Valid.Delete(fs, column)
			}
		}
	}
	used := map[types.FileSection]bool{}
	for _, src := range t.inputOrder {
		if fs, ok := t.ResolveFileSection(src.File, src.Section); ok {
			used[fs] = true
		}
	}
	for _, fs := range t.Valid.Keys() {
		if fs.IsFileGeneric() && !used[fs] {
			t.Valid.Remove(fs)
		}
	}
	return nil
}

// checkValid fails when a required column is still unresolved.
func (t *Table) checkValid(ctx context.Context) error {
	var missing []MissingColumn
	for _, fs := range t.Valid.Keys() {
		for _, column := range t.Valid.Names(fs) {
			if input, _ := t.Valid.Get(fs, column); input == "" {
				missing = append(missing, MissingColumn{FileSection: fs, Column: column})
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	for _, entry := range missing {
		t.logSuggestion(ctx, entry)
	}
	return errExpectedVarNotFound(missing)
}

// logSuggestion points at the headers closest to a missing column.
func (t *Table) logSuggestion(ctx context.Context, entry MissingColumn) {
	var headers []string
	for _, src := range t.inputOrder {
		if fs, ok := t.ResolveFileSection(src.File, src.Section); ok && fs == entry.FileSection {
			headers = append(headers, t.inputs[src]...)
		}
	}
	suggestion := suggestHeader(entry.Column, headers)
	if suggestion == "" {
		return
	}
	log.Ctx(ctx).Warn().
		Str("file_section", entry.FileSection.String()).
		Str("column", entry.Column).
		Msgf("no input column found; did you mean %q?", suggestion)
}

// suggestHeader returns the header that most closely contains the letters
// of column in order, or "".
func suggestHeader(column string, headers []string) string {
	var nonBlank []string
	for _, header := range headers {
		if strings.TrimSpace(header) != "" {
			nonBlank = append(nonBlank, header)
		}
	}
	ranks := fuzzy.RankFindFold(column, nonBlank)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
