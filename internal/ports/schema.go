package ports

import "invconv/internal/types"

type LookupTablePort interface {
	LoadLookupTables(path string) (types.LookupTables, error)
}
