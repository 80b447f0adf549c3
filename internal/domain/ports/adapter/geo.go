package adapter

import (
	"context"

	"telegram-city-weather/internal/domain/model"
)

// CityLookupGateway wraps the external city-search service. Implementations
// are stateless and safe for concurrent use; every call is potentially
// blocking network I/O and honors ctx.
type CityLookupGateway interface {
	// Search returns up to limit candidates matching the name prefix,
	// ordered by the provider (population descending).
	Search(ctx context.Context, namePrefix string, limit int) ([]model.CityCandidate, error)
	// Details fetches the full record for a previously returned candidate ID.
	Details(ctx context.Context, id string) (*model.CityCandidate, error)
	// TopByPopulation returns the provider's most populous cities, ordered.
	TopByPopulation(ctx context.Context, limit int) ([]model.CityCandidate, error)
}
