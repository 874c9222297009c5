package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanchhohang/airlines-api/internal/booking/service"
	"github.com/tanchhohang/airlines-api/internal/booking/store/airline"
	bookingstore "github.com/tanchhohang/airlines-api/internal/booking/store/booking"
	"github.com/tanchhohang/airlines-api/internal/booking/store/sector"
	"github.com/tanchhohang/airlines-api/internal/cache"
	jwttoken "github.com/tanchhohang/airlines-api/internal/jwt_token"
)

type cannedBackend struct {
	responses map[string]string
}

func (b *cannedBackend) Call(_ context.Context, method, _ string) (string, error) {
	return b.responses[method], nil
}

func envelope(payload string) string {
	return `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<soapenv:Body><ns2:Response xmlns:ns2="http://booking.us.org/">` +
		`<return><![CDATA[` + payload + `]]></return>` +
		`</ns2:Response></soapenv:Body></soapenv:Envelope>`
}

func newRouter(t *testing.T, responses map[string]string) (http.Handler, string) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	cacheStore := cache.NewMemory()
	sectors := sector.NewInMemory()
	svc, err := service.New(
		&cannedBackend{responses: responses},
		cacheStore,
		sector.NewInvalidating(sectors, cacheStore),
		airline.NewInMemory(),
		bookingstore.NewInMemory(),
		logger,
	)
	require.NoError(t, err)

	tokens := jwttoken.NewJWTService("test-signing-key", "airlines-api", "airlines-api")
	token, err := tokens.GenerateAccessToken("sita", "agent007", "s3cret", "AG123", time.Hour)
	require.NoError(t, err)

	h := New(svc, logger, jwttoken.NewJWTServiceAdapter(tokens))
	r := chi.NewRouter()
	h.Register(r)
	return r, token
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	router, _ := newRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/sectors", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSyncSectorsEndpoint(t *testing.T) {
	payload := `<FlightSector>` +
		`<Sector><SectorCode>KTM</SectorCode><SectorName>Kathmandu</SectorName></Sector>` +
		`<Sector><SectorCode>PKR</SectorCode><SectorName>Pokhara</SectorName></Sector>` +
		`</FlightSector>`
	router, token := newRouter(t, map[string]string{"SectorCode": envelope(payload)})

	rec := doJSON(t, router, http.MethodPost, "/sectors/sync", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Sectors []struct {
			SectorCode string `json:"sector_code"`
			SectorName string `json:"sector_name"`
		} `json:"sectors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Sectors, 2)
	assert.Equal(t, "KTM", resp.Sectors[0].SectorCode)

	// Synced rows are now served from the persisted store.
	listRec := doJSON(t, router, http.MethodGet, "/sectors/KTM", token, nil)
	require.Equal(t, http.StatusOK, listRec.Code)
}

func TestCheckBalanceEndpoint(t *testing.T) {
	payload := `<Balance><Airline><AirlineName>Buddha Air</AirlineName>` +
		`<AgencyName>Sky Travels</AgencyName><BalanceAmount>10000000.00</BalanceAmount></Airline></Balance>`
	router, token := newRouter(t, map[string]string{"CheckBalance": envelope(payload)})

	rec := doJSON(t, router, http.MethodPost, "/balance", token, map[string]string{"airline_id": "U4"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Balances []struct {
			AirlineName   string  `json:"airline_name"`
			BalanceAmount float64 `json:"balance_amount"`
		} `json:"balances"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Balances, 1)
	assert.Equal(t, "Buddha Air", resp.Balances[0].AirlineName)
}

func TestCheckBalanceValidation(t *testing.T) {
	router, token := newRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/balance", token, map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Error)
	assert.Contains(t, resp.Fields, "AirlineID")
}

func TestAvailabilityEndpointDerivedTotals(t *testing.T) {
	payload := `<Availability><OutBound><Flight>` +
		`<FlightId>U4-601</FlightId><AdultFare>5000</AdultFare>` +
		`<FuelSurcharge>1500</FuelSurcharge><Tax>200</Tax>` +
		`</Flight></OutBound></Availability>`
	router, token := newRouter(t, map[string]string{"FlightAvailability": envelope(payload)})

	rec := doJSON(t, router, http.MethodPost, "/flights/availability", token, map[string]any{
		"sector_from": "KTM",
		"sector_to":   "PKR",
		"flight_date": "2025-03-15",
		"adult":       1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Outbound []struct {
			TotalAdultFare float64 `json:"total_adult_fare"`
		} `json:"outbound_flights"`
		Inbound []any `json:"inbound_flights"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Outbound, 1)
	assert.Equal(t, 6700.0, resp.Outbound[0].TotalAdultFare)
	assert.NotNil(t, resp.Inbound)
	assert.Empty(t, resp.Inbound)
}

func TestAvailabilityMalformedBackendOpaque(t *testing.T) {
	router, token := newRouter(t, map[string]string{
		"FlightAvailability": envelope(`<Availability><OutBound><Flight>`),
	})

	rec := doJSON(t, router, http.MethodPost, "/flights/availability", token, map[string]any{
		"sector_from": "KTM",
		"sector_to":   "PKR",
		"flight_date": "2025-03-15",
		"adult":       1,
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// Protocol diagnostics never reach the caller.
	var resp struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "internal_error", resp.Error)
	assert.Equal(t, "internal error", resp.ErrorDescription)
}

func TestReserveEndpointPersistsBooking(t *testing.T) {
	payload := `<PNRDetail><AirlineID>U4</AirlineID><FlightId>U4-601</FlightId>` +
		`<PNRNO>PNR001</PNRNO><ReservationStatus>CONFIRMED</ReservationStatus>` +
		`<TTLDate>2025-01-01</TTLDate><TTLTime>12:00</TTLTime></PNRDetail>`
	router, token := newRouter(t, map[string]string{"Reservation": envelope(payload)})

	rec := doJSON(t, router, http.MethodPost, "/bookings", token, map[string]any{
		"flight_id": "U4-601",
		"passengers": []map[string]string{
			{"pax_type": "ADT", "first_name": "Sita", "last_name": "Rai"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Reservation struct {
			PNRNo  string `json:"pnr_no"`
			Status string `json:"reservation_status"`
		} `json:"reservation"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "PNR001", resp.Reservation.PNRNo)
	assert.Equal(t, "CONFIRMED", resp.Reservation.Status)

	listRec := doJSON(t, router, http.MethodGet, "/bookings/PNR001", token, nil)
	require.Equal(t, http.StatusOK, listRec.Code)
}

func TestItineraryEndpointExclusivity(t *testing.T) {
	router, token := newRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/itinerary?pnr_no=PNR001&ticket_no=TKT001", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/itinerary", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSalesReportEndpointValidation(t *testing.T) {
	router, token := newRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/reports/sales?date_from=March&date_to=2025-03-31", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Error)
	assert.Contains(t, resp.Fields, "DateFrom")

	rec = doJSON(t, router, http.MethodGet, "/reports/sales?date_from=2025-03-31&date_to=2025-03-01", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp.Fields = nil
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Fields, "DateTo")
	assert.NotContains(t, resp.Fields, "DateFrom")
}

func TestUnknownSectorNotFound(t *testing.T) {
	router, token := newRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/sectors/XXX", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
