package app

import (
	"invconv/internal/adapters"
	"invconv/internal/ports"
)

type Service struct {
	Mappings   ports.MappingSourcePort
	Cells      ports.CellSourcePort
	Lookups    ports.LookupTablePort
	OpenWriter func(path string) (ports.RowWriterPort, error)
}

func NewService() Service {
	return Service{
		Mappings: adapters.NewMappingFileAdapter(),
		Cells:    adapters.NewXlsxSourceAdapter(),
		Lookups:  adapters.NewLookupFileAdapter(),
		OpenWriter: func(path string) (ports.RowWriterPort, error) {
			return adapters.NewCSVOutputAdapter(path)
		},
	}
}
