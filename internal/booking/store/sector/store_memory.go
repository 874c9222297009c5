package sector

import (
	"context"
	"sort"
	"sync"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
)

// InMemoryStore is the map-backed sector store used for tests and
// database-less development.
type InMemoryStore struct {
	mu      sync.RWMutex
	sectors map[string]models.Sector
}

// NewInMemory constructs an in-memory sector store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{sectors: make(map[string]models.Sector)}
}

func (s *InMemoryStore) UpsertByCode(_ context.Context, code, name string) (models.Sector, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sector := models.Sector{SectorCode: code, SectorName: name}
	s.sectors[code] = sector
	return sector, nil
}

func (s *InMemoryStore) GetByCode(_ context.Context, code string) (models.Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sector, ok := s.sectors[code]
	if !ok {
		return models.Sector{}, ErrNotFound
	}
	return sector, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]models.Sector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sectors := make([]models.Sector, 0, len(s.sectors))
	for _, sector := range s.sectors {
		sectors = append(sectors, sector)
	}
	sort.Slice(sectors, func(i, j int) bool {
		return sectors[i].SectorCode < sectors[j].SectorCode
	})
	return sectors, nil
}

func (s *InMemoryStore) Delete(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sectors[code]; !ok {
		return ErrNotFound
	}
	delete(s.sectors, code)
	return nil
}
