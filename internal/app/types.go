package app

import "invconv/internal/types"

type ConvertRequest struct {
	MappingPath string
	DataPath    string
	OutputPath  string
	Inputs      []string
	Fallbacks   types.FallbackOverrides
}

type ConvertResult struct {
	OutputPath string
	Summary    types.ConversionSummary
}

type ValidateRequest struct {
	MappingPath string
	Inputs      []string
}

type ValidateResult struct {
	Sheets   int
	Sections int
	Columns  int
}

type InspectRequest struct {
	MappingPath string
	Inputs      []string
}

type InspectResult struct {
	Sections []types.ResolvedSection `yaml:"sections"`
}
