package geoassist

import "context"

// Lookup is the provider-facing client contract.
//
// Implementations must honor ctx cancellation, report rate limiting with an
// error matching ErrRateLimited (or mentioning "rate limit"/"429"), and drop
// results whose coordinates are out of bounds.
type Lookup interface {
	Search(ctx context.Context, text string, opts Options) ([]Place, error)
	Reverse(ctx context.Context, at Coordinates) (Place, bool, error)
}

// SearchAPI exposes query-driven lookups.
type SearchAPI interface {
	Autocomplete(ctx context.Context, query string, opts Options) (Result, error)
	DebouncedAutocomplete(ctx context.Context, query string, opts Options) (Result, error)
	Reverse(ctx context.Context, at Coordinates) (Place, bool, error)
	CancelPendingRequests()
}

// SelectionAPI exposes the remembered place slot.
type SelectionAPI interface {
	RememberSelectedPlace(ctx context.Context, place Place)
	RememberedPlace(ctx context.Context) (Place, bool)
	ClearRememberedPlace(ctx context.Context)
}

// MaintenanceAPI exposes cache housekeeping.
type MaintenanceAPI interface {
	ClearAllCaches(ctx context.Context) error
}

// Autocompleter is the full facade surface implemented by *Service.
type Autocompleter interface {
	SearchAPI
	SelectionAPI
	MaintenanceAPI
}

var _ Autocompleter = (*Service)(nil)
