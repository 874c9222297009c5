package airline

import (
	"context"
	"sort"
	"sync"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
)

// InMemoryStore is the map-backed airline store used for tests and
// database-less development.
type InMemoryStore struct {
	mu       sync.RWMutex
	airlines map[string]models.Airline
}

// NewInMemory constructs an in-memory airline store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{airlines: make(map[string]models.Airline)}
}

func (s *InMemoryStore) Upsert(_ context.Context, airline models.Airline) (models.Airline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.airlines[airline.AirlineID] = airline
	return airline, nil
}

func (s *InMemoryStore) UpsertName(_ context.Context, airlineID, airlineName string) (models.Airline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	airline := s.airlines[airlineID]
	airline.AirlineID = airlineID
	airline.AirlineName = airlineName
	s.airlines[airlineID] = airline
	return airline, nil
}

func (s *InMemoryStore) GetByID(_ context.Context, airlineID string) (models.Airline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	airline, ok := s.airlines[airlineID]
	if !ok {
		return models.Airline{}, ErrNotFound
	}
	return airline, nil
}

func (s *InMemoryStore) List(_ context.Context) ([]models.Airline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	airlines := make([]models.Airline, 0, len(s.airlines))
	for _, airline := range s.airlines {
		airlines = append(airlines, airline)
	}
	sort.Slice(airlines, func(i, j int) bool {
		return airlines[i].AirlineID < airlines[j].AirlineID
	})
	return airlines, nil
}
