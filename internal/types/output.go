package types

// ResolvedColumn is one output column of a finalized mapping as reported by
// validate and inspect.
type ResolvedColumn struct {
	Output   string `yaml:"output"`
	Input    string `yaml:"input,omitempty"`
	Template string `yaml:"template,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
}

type ResolvedSection struct {
	FileSection FileSection      `yaml:"file_section"`
	Columns     []ResolvedColumn `yaml:"columns"`
}

type ConversionSummary struct {
	Sheets  int `yaml:"sheets"`
	Skipped int `yaml:"skipped"`
	Rows    int `yaml:"rows"`
}
