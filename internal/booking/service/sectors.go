package service

import (
	"context"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
	"github.com/tanchhohang/airlines-api/internal/cache"
	"github.com/tanchhohang/airlines-api/internal/platform/middleware"
	"github.com/tanchhohang/airlines-api/internal/soap"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

var sectorFields = []soap.Field{
	{Out: "sector_code", Names: []string{"SectorCode"}, Kind: soap.String, Required: true},
	{Out: "sector_name", Names: []string{"SectorName"}, Kind: soap.String},
}

// SyncSectors fetches the backend's sector listing, upserts every row into
// the persisted store keyed by code, and returns the listing in backend
// order. Listings are cached per agency; any sector mutation invalidates the
// whole listing namespace.
func (s *Service) SyncSectors(ctx context.Context, creds middleware.Credentials) ([]models.Sector, error) {
	key := cache.Key("sectors", map[string]string{"agency": creds.AgencyID})
	sectors, hit, err := cache.GetOrCompute(ctx, s.cache, s.logger, key, s.sectorTTL, func(ctx context.Context) ([]models.Sector, error) {
		return s.fetchSectors(ctx, creds)
	})
	if err != nil {
		return nil, err
	}
	s.observeCache("sectors", hit)
	if sectors == nil {
		sectors = []models.Sector{}
	}
	return sectors, nil
}

func (s *Service) fetchSectors(ctx context.Context, creds middleware.Credentials) ([]models.Sector, error) {
	elem, err := s.call(ctx, "SectorCode", credParams(creds))
	if err != nil {
		return nil, err
	}
	if elem == nil {
		// Listing-style operation: absent result means no data.
		return []models.Sector{}, nil
	}

	records, err := soap.MapList(elem, "Sector", sectorFields)
	if err != nil {
		return nil, err
	}

	sectors := make([]models.Sector, 0, len(records))
	for _, record := range records {
		upserted, err := s.sectors.UpsertByCode(ctx, record.String("sector_code"), record.String("sector_name"))
		if err != nil {
			return nil, dErrors.Wrap(dErrors.CodeInternal, "persist sector", err)
		}
		sectors = append(sectors, upserted)
	}
	return sectors, nil
}

// ListSectors returns the persisted sector rows.
func (s *Service) ListSectors(ctx context.Context) ([]models.Sector, error) {
	return s.sectors.List(ctx)
}

// GetSector returns one persisted sector by code.
func (s *Service) GetSector(ctx context.Context, code string) (models.Sector, error) {
	return s.sectors.GetByCode(ctx, code)
}
