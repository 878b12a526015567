package adapters

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"invconv/internal/ports"
	"invconv/internal/types"
)

// LookupFormatVersion is the only data file layout this build reads.
const LookupFormatVersion = 4

type LookupFileAdapter struct{}

func NewLookupFileAdapter() LookupFileAdapter {
	return LookupFileAdapter{}
}

func (a LookupFileAdapter) LoadLookupTables(path string) (types.LookupTables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.LookupTables{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("lookup file not found").
			WithCause(err)
	}
	var tables types.LookupTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return types.LookupTables{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse lookup yaml").
			WithCause(err)
	}
	if tables.FormatVersion != LookupFormatVersion {
		return types.LookupTables{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("lookup file format_version %d is not supported (want %d)", tables.FormatVersion, LookupFormatVersion))
	}
	if len(tables.Columns) == 0 {
		return types.LookupTables{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("lookup file lists no columns")
	}
	return tables, nil
}

var _ ports.LookupTablePort = LookupFileAdapter{}
