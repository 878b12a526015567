package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"invconv/internal/core"
	"invconv/internal/types"
)

// loadMapping reads the input workbooks, then parses and finalizes the
// mapping file against their headers.
func (s Service) loadMapping(ctx context.Context, mappingPath string, inputs []string) (*core.Table, []types.Sheet, error) {
	mappingPath = strings.TrimSpace(mappingPath)
	if mappingPath == "" {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("mapping file is required")
	}
	if len(inputs) == 0 {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one input file is required")
	}
	sheets, err := s.Cells.LoadSheets(ctx, inputs)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.Mappings.OpenMapping(mappingPath)
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()

	parser, err := core.NewParser()
	if err != nil {
		return nil, nil, err
	}
	parser.Init(sheets)
	if err := parser.Parse(ctx, reader); err != nil {
		return nil, nil, err
	}
	if err := parser.Finalize(ctx); err != nil {
		return nil, nil, err
	}
	log.Ctx(ctx).Debug().
		Str("mapping", mappingPath).
		Int("sheets", len(sheets)).
		Msg("mapping loaded")
	return parser.Table(), sheets, nil
}
