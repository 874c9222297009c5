package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
)

func seedBooking(t *testing.T, store *InMemoryStore) models.Booking {
	t.Helper()
	created, err := store.Create(context.Background(), models.Booking{
		Username: "sita",
		PNR:      "PNR001",
		FlightID: "U4-601",
	}, []models.Passenger{
		{PaxType: "ADT", FirstName: "Sita", LastName: "Rai"},
		{PaxType: "CHD", FirstName: "Maya", LastName: "Rai"},
	})
	require.NoError(t, err)
	return created
}

func TestCreateAndGetByPNR(t *testing.T) {
	store := NewInMemory()
	created := seedBooking(t, store)
	assert.NotZero(t, created.ID)

	booking, passengers, err := store.GetByPNR(context.Background(), "sita", "PNR001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, booking.ID)
	require.Len(t, passengers, 2)
	assert.Equal(t, created.ID, passengers[0].BookingID)
}

func TestGetByPNRScopedToUser(t *testing.T) {
	store := NewInMemory()
	seedBooking(t, store)

	_, _, err := store.GetByPNR(context.Background(), "ram", "PNR001")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAttachTicketsMatchesByName(t *testing.T) {
	store := NewInMemory()
	seedBooking(t, store)
	ctx := context.Background()

	err := store.AttachTickets(ctx, "PNR001", []models.ItineraryRow{
		{PassengerName: "sita rai", TicketNo: "TKT001", Fare: 5000, FuelSurcharge: 1500, Tax: 200},
		{PassengerName: "Nobody Else", TicketNo: "TKT999"},
	})
	require.NoError(t, err)

	_, passengers, err := store.GetByPNR(ctx, "sita", "PNR001")
	require.NoError(t, err)
	// Case-insensitive match on full name; unmatched rows are ignored.
	assert.Equal(t, "TKT001", passengers[0].TicketNo)
	assert.Equal(t, 5000.0, passengers[0].Fare)
	assert.Empty(t, passengers[1].TicketNo)
}

func TestListByUser(t *testing.T) {
	store := NewInMemory()
	seedBooking(t, store)
	ctx := context.Background()

	_, err := store.Create(ctx, models.Booking{Username: "sita", PNR: "PNR002"}, nil)
	require.NoError(t, err)
	_, err = store.Create(ctx, models.Booking{Username: "ram", PNR: "PNR003"}, nil)
	require.NoError(t, err)

	bookings, err := store.ListByUser(ctx, "sita")
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}
