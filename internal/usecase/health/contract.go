package health

import (
	"context"

	domcat "github.com/boardka/boardka/internal/domain/catalog"
)

// StorePinger checks preference store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// CatalogChecker exposes the current catalog snapshot.
type CatalogChecker interface {
	Snapshot() (*domcat.Catalog, error)
}
