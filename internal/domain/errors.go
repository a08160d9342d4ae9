package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrGameNotFound signals a game id absent from the current catalog.
	ErrGameNotFound = errors.New("game not found")
	// ErrInvalidQuery signals a recommendation query that failed validation.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrCatalogNotLoaded signals that no catalog snapshot is available yet.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
	// ErrCatalogLoad signals a failure reading or parsing the catalog source.
	ErrCatalogLoad = errors.New("catalog load failed")
	// ErrUnsupportedFormat signals a catalog file format the loaders do not handle.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	// ErrNoTags signals a like on a game that carries no tags.
	ErrNoTags = errors.New("game has no tags")
	// ErrPreferenceStore signals a preference storage failure.
	ErrPreferenceStore = errors.New("preference store error")
)
