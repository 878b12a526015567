package app

import "context"

// Inspect reports the resolved column table of every FileSection.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	table, _, err := s.loadMapping(ctx, req.MappingPath, req.Inputs)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{Sections: table.Sections()}, nil
}
