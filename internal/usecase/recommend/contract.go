package recommend

import (
	"context"

	domcat "github.com/boardka/boardka/internal/domain/catalog"
)

// CatalogReader provides the current catalog snapshot.
type CatalogReader interface {
	Snapshot() (*domcat.Catalog, error)
}

// PreferenceReader returns the strongest stored tag preferences.
type PreferenceReader interface {
	Top(ctx context.Context, n int) ([]string, error)
}
