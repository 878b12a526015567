package adapters

import (
	"io"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"invconv/internal/ports"
)

type MappingFileAdapter struct{}

func NewMappingFileAdapter() MappingFileAdapter {
	return MappingFileAdapter{}
}

func (a MappingFileAdapter) OpenMapping(path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("mapping file is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("mapping file not found").
			WithCause(err)
	}
	return f, nil
}

var _ ports.MappingSourcePort = MappingFileAdapter{}
