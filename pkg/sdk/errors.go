package boardka

import "github.com/boardka/boardka/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrGameNotFound      = domain.ErrGameNotFound
	ErrInvalidQuery      = domain.ErrInvalidQuery
	ErrCatalogNotLoaded  = domain.ErrCatalogNotLoaded
	ErrCatalogLoad       = domain.ErrCatalogLoad
	ErrUnsupportedFormat = domain.ErrUnsupportedFormat
	ErrNoTags            = domain.ErrNoTags
	ErrPreferenceStore   = domain.ErrPreferenceStore
)
