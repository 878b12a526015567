package app

import "context"

// Validate parses and finalizes the mapping without writing output.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	table, sheets, err := s.loadMapping(ctx, req.MappingPath, req.Inputs)
	if err != nil {
		return ValidateResult{}, err
	}
	sections := table.Sections()
	columns := 0
	for _, section := range sections {
		columns += len(section.Columns)
	}
	return ValidateResult{
		Sheets:   len(sheets),
		Sections: len(sections),
		Columns:  columns,
	}, nil
}
