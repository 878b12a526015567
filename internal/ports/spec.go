package ports

import "io"

// MappingSourcePort opens an AXM mapping file for the parser.
type MappingSourcePort interface {
	OpenMapping(path string) (io.ReadCloser, error)
}
