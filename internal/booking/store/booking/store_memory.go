package booking

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
)

// InMemoryStore is the slice-backed booking store used for tests and
// database-less development.
type InMemoryStore struct {
	mu         sync.RWMutex
	nextID     int64
	bookings   []models.Booking
	passengers map[int64][]models.Passenger
}

// NewInMemory constructs an in-memory booking store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{nextID: 1, passengers: make(map[int64][]models.Passenger)}
}

func (s *InMemoryStore) Create(_ context.Context, b models.Booking, passengers []models.Passenger) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.nextID
	s.nextID++
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	s.bookings = append(s.bookings, b)
	for i := range passengers {
		passengers[i].ID = int64(i + 1)
		passengers[i].BookingID = b.ID
	}
	s.passengers[b.ID] = append([]models.Passenger{}, passengers...)
	return b, nil
}

func (s *InMemoryStore) GetByPNR(_ context.Context, username, pnr string) (models.Booking, []models.Passenger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.Username == username && b.PNR == pnr {
			return b, append([]models.Passenger{}, s.passengers[b.ID]...), nil
		}
	}
	return models.Booking{}, nil, ErrNotFound
}

func (s *InMemoryStore) ListByUser(_ context.Context, username string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var bookings []models.Booking
	for _, b := range s.bookings {
		if b.Username == username {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (s *InMemoryStore) AttachTickets(_ context.Context, pnr string, rows []models.ItineraryRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.PNR != pnr {
			continue
		}
		passengers := s.passengers[b.ID]
		for _, row := range rows {
			for i := range passengers {
				fullName := passengers[i].FirstName + " " + passengers[i].LastName
				if strings.EqualFold(strings.TrimSpace(row.PassengerName), fullName) {
					passengers[i].TicketNo = row.TicketNo
					passengers[i].Fare = row.Fare
					passengers[i].FuelSurcharge = row.FuelSurcharge
					passengers[i].Tax = row.Tax
				}
			}
		}
		s.passengers[b.ID] = passengers
	}
	return nil
}
