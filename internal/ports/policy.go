package ports

import (
	"context"

	"invconv/internal/core"
	"invconv/internal/types"
)

// RowPolicyPort derives output values while rows are built and completes
// each record in column order.
type RowPolicyPort interface {
	core.FieldTransforms
	Columns() []string
	BeginSheet(ctx context.Context, sheet types.Sheet)
	Commit(values map[string]string) []string
}
