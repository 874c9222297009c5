package sector

import (
	"context"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
	"github.com/tanchhohang/airlines-api/internal/cache"
)

// ListingCachePrefix is the cache namespace holding sector listings.
const ListingCachePrefix = "soap:sectors"

// InvalidatingStore decorates a sector store so that every mutation
// invalidates the cached sector listings immediately and synchronously.
type InvalidatingStore struct {
	Store
	cache cache.Store
}

// NewInvalidating wraps store with sector-listing cache invalidation.
func NewInvalidating(store Store, c cache.Store) *InvalidatingStore {
	return &InvalidatingStore{Store: store, cache: c}
}

func (s *InvalidatingStore) UpsertByCode(ctx context.Context, code, name string) (models.Sector, error) {
	sector, err := s.Store.UpsertByCode(ctx, code, name)
	if err != nil {
		return models.Sector{}, err
	}
	if err := s.cache.DeletePrefix(ctx, ListingCachePrefix); err != nil {
		return models.Sector{}, err
	}
	return sector, nil
}

func (s *InvalidatingStore) Delete(ctx context.Context, code string) error {
	if err := s.Store.Delete(ctx, code); err != nil {
		return err
	}
	return s.cache.DeletePrefix(ctx, ListingCachePrefix)
}
