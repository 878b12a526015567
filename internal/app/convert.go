package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"invconv/internal/core"
	"invconv/internal/policies"
	"invconv/internal/ports"
	"invconv/internal/shared"
	"invconv/internal/types"
)

// Convert writes one Axelor CSV record per non-blank row of every sheet
// that is not avoided.
func (s Service) Convert(ctx context.Context, req ConvertRequest) (result ConvertResult, err error) {
	dataPath := strings.TrimSpace(req.DataPath)
	if dataPath == "" {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("lookup data file is required")
	}
	tables, err := s.Lookups.LoadLookupTables(dataPath)
	if err != nil {
		return ConvertResult{}, err
	}
	policy, err := policies.NewFieldPolicy(tables, req.Fallbacks)
	if err != nil {
		return ConvertResult{}, err
	}
	table, sheets, err := s.loadMapping(ctx, req.MappingPath, req.Inputs)
	if err != nil {
		return ConvertResult{}, err
	}

	writer, err := s.OpenWriter(req.OutputPath)
	if err != nil {
		return ConvertResult{}, err
	}
	defer func() {
		if cerr := writer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := writer.WriteHeader(policy.Columns()); err != nil {
		return ConvertResult{}, err
	}

	summary, err := convertSheets(ctx, table, policy, sheets, writer)
	if err != nil {
		return ConvertResult{}, err
	}
	log.Ctx(ctx).Info().
		Int("sheets", summary.Sheets).
		Int("skipped", summary.Skipped).
		Int("rows", summary.Rows).
		Msg("conversion complete")
	return ConvertResult{OutputPath: req.OutputPath, Summary: summary}, nil
}

func convertSheets(ctx context.Context, table *core.Table, policy ports.RowPolicyPort, sheets []types.Sheet, writer ports.RowWriterPort) (types.ConversionSummary, error) {
	summary := types.ConversionSummary{}
	builder := core.NewRowBuilder(table, policy.Columns(), policy)
	for _, sheet := range sheets {
		fs, ok := table.ResolveFileSection(sheet.File, sheet.Section)
		if !ok || table.IsAvoided(fs) {
			log.Ctx(ctx).Info().
				Str("file", sheet.File).
				Str("section", sheet.Section).
				Msg("skipping avoided sheet")
			summary.Skipped++
			continue
		}
		policy.BeginSheet(ctx, sheet)
		summary.Sheets++
		for _, row := range sheet.Rows {
			if shared.IsBlankRow(row) {
				continue
			}
			values := builder.Build(sheet, row)
			if len(values) == 0 {
				continue
			}
			if err := writer.WriteRecord(policy.Commit(values)); err != nil {
				return summary, err
			}
			summary.Rows++
		}
	}
	return summary, nil
}
