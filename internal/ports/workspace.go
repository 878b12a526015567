package ports

import (
	"context"

	"invconv/internal/types"
)

// CellSourcePort reads every usable worksheet of the given workbooks.
type CellSourcePort interface {
	LoadSheets(ctx context.Context, paths []string) ([]types.Sheet, error)
}
