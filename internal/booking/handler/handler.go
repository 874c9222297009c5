// Package handler exposes the gateway operations over REST/JSON.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
	"github.com/tanchhohang/airlines-api/internal/booking/service"
	"github.com/tanchhohang/airlines-api/internal/platform/middleware"
	"github.com/tanchhohang/airlines-api/internal/transport/http/shared"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

// Service defines the gateway operations the handlers depend on.
type Service interface {
	SyncSectors(ctx context.Context, creds middleware.Credentials) ([]models.Sector, error)
	ListSectors(ctx context.Context) ([]models.Sector, error)
	GetSector(ctx context.Context, code string) (models.Sector, error)
	ListAirlines(ctx context.Context) ([]models.Airline, error)
	GetAirline(ctx context.Context, airlineID string) (models.Airline, error)
	CheckBalance(ctx context.Context, creds middleware.Credentials, airlineID string) ([]models.BalanceEntry, error)
	FlightAvailability(ctx context.Context, creds middleware.Credentials, in service.AvailabilityInput) (service.AvailabilityResult, error)
	FlightDetail(ctx context.Context, creds middleware.Credentials, flightID string) (models.FlightOffer, error)
	Reserve(ctx context.Context, creds middleware.Credentials, username string, in service.ReservationInput) (models.Reservation, error)
	IssueTicket(ctx context.Context, creds middleware.Credentials, in service.IssueTicketInput) ([]models.ItineraryRow, error)
	Itinerary(ctx context.Context, creds middleware.Credentials, in service.ItineraryInput) ([]models.ItineraryRow, error)
	PNRDetail(ctx context.Context, creds middleware.Credentials, pnr string) (string, error)
	ListBookings(ctx context.Context, username string) ([]models.Booking, error)
	GetBooking(ctx context.Context, username, pnr string) (models.Booking, []models.Passenger, error)
	SalesReport(ctx context.Context, creds middleware.Credentials, in service.SalesReportInput) ([]models.SalesReportRow, error)
}

// Handler handles the booking-facing endpoints.
type Handler struct {
	logger       *slog.Logger
	svc          Service
	jwtValidator middleware.JWTValidator
}

// New creates a new booking Handler.
func New(svc Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		svc:          svc,
		jwtValidator: jwtValidator,
	}
}

// Register registers the booking routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	bookingRouter := chi.NewRouter()
	bookingRouter.Use(middleware.Recovery(h.logger))
	bookingRouter.Use(middleware.RequestID)
	bookingRouter.Use(middleware.Logger(h.logger))
	bookingRouter.Use(middleware.Timeout(30 * time.Second))
	bookingRouter.Use(middleware.ContentTypeJSON)
	bookingRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

	bookingRouter.Post("/sectors/sync", h.handleSyncSectors)
	bookingRouter.Get("/sectors", h.handleListSectors)
	bookingRouter.Get("/sectors/{code}", h.handleGetSector)
	bookingRouter.Get("/airlines", h.handleListAirlines)
	bookingRouter.Get("/airlines/{airline_id}", h.handleGetAirline)
	bookingRouter.Post("/balance", h.handleCheckBalance)
	bookingRouter.Post("/flights/availability", h.handleAvailability)
	bookingRouter.Get("/flights/{flight_id}", h.handleFlightDetail)
	bookingRouter.Post("/bookings", h.handleReserve)
	bookingRouter.Get("/bookings", h.handleListBookings)
	bookingRouter.Get("/bookings/{pnr}", h.handleGetBooking)
	bookingRouter.Post("/bookings/{pnr}/tickets", h.handleIssueTicket)
	bookingRouter.Get("/itinerary", h.handleItinerary)
	bookingRouter.Get("/pnr/{pnr}", h.handlePNRDetail)
	bookingRouter.Get("/reports/sales", h.handleSalesReport)

	r.Mount("/", bookingRouter)
}

// credentials pulls the authenticated caller out of the context. The auth
// middleware guarantees presence; absence is a wiring bug, not a client
// error.
func (h *Handler) credentials(w http.ResponseWriter, r *http.Request) (middleware.Credentials, bool) {
	creds, ok := middleware.GetCredentials(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), "credentials missing from context despite auth middleware",
			"request_id", middleware.GetRequestID(r.Context()),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return middleware.Credentials{}, false
	}
	return creds, true
}

func (h *Handler) writeOperationError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	code := dErrors.CodeOf(err)
	if dErrors.ToHTTPStatus(code) >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "operation failed",
			"operation", operation,
			"code", string(code),
			"request_id", middleware.GetRequestID(r.Context()),
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(r.Context(), "operation rejected",
			"operation", operation,
			"code", string(code),
			"request_id", middleware.GetRequestID(r.Context()),
		)
	}
	shared.WriteError(w, err)
}

func (h *Handler) handleSyncSectors(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.credentials(w, r)
	if !ok {
		return
	}
	sectors, err := h.svc.SyncSectors(r.Context(), creds)
	if err != nil {
		h.writeOperationError(w, r, "sync_sectors", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"sectors": sectors})
}

func (h *Handler) handleListSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.svc.ListSectors(r.Context())
	if err != nil {
		h.writeOperationError(w, r, "list_sectors", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"sectors": sectors})
}

func (h *Handler) handleGetSector(w http.ResponseWriter, r *http.Request) {
	sector, err := h.svc.GetSector(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeOperationError(w, r, "get_sector", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, sector)
}

func (h *Handler) handleListAirlines(w http.ResponseWriter, r *http.Request) {
	airlines, err := h.svc.ListAirlines(r.Context())
	if err != nil {
		h.writeOperationError(w, r, "list_airlines", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"airlines": airlines})
}

func (h *Handler) handleGetAirline(w http.ResponseWriter, r *http.Request) {
	airline, err := h.svc.GetAirline(r.Context(), chi.URLParam(r, "airline_id"))
	if err != nil {
		h.writeOperationError(w, r, "get_airline", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, airline)
}

func (h *Handler) handleCheckBalance(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.credentials(w, r)
	if !ok {
		return
	}
	var req CheckBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		shared.WriteValidationError(w, fieldErrors(err))
		return
	}
	balances, err := h.svc.CheckBalance(r.Context(), creds, req.AirlineID)
	if err != nil {
		h.writeOperationError(w, r, "check_balance", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"balances": balances})
}

func (h *Handler) handleAvailability(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.credentials(w, r)
	if !ok {
		return
	}
	var req AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		shared.WriteValidationError(w, fieldErrors(err))
		return
	}
	result, err := h.svc.FlightAvailability(r.Context(), creds, req.toInput())
	if err != nil {
		h.writeOperationError(w, r, "flight_availability", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleFlightDetail(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.credentials(w, r)
	if !ok {
		return
	}
	offer, err := h.svc.FlightDetail(r.Context(), creds, chi.URLParam(r, "flight_id"))
	if err != nil {
		h.writeOperationError(w, r, "flight_detail", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"flight": offer})
}

func (h *Handler) handleReserve(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.credentials(w, r)
	if !ok {
		return
	}
	var req ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		shared.WriteValidationError(w, fieldErrors(err))
		return
	}
	reservation, err := h.svc.Reserve(r.Context(), creds, middleware.GetUsername(r.Context()), req.toInput())
	if err != nil {
		h.writeOperationError(w, r, "reserve", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, map[string]any{"reservation": reservation})
}

func (h *Handler) handleListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListBookings(r.Context(), middleware.GetUsername(r.Context()))
	if err != nil {
		h.writeOperationError(w, r, "list_bookings", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (h *Handler) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	booking, passengers, err := h.svc.GetBooking(r.Context(), middleware.GetUsername(r.Context()), chi.URLParam(r, "pnr"))
	if err != nil {
		h.writeOperationError(w, r, "get_booking", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"booking":    booking,
		"passengers": passengers,
	})
}

func (h *Handler) handleIssueTicket(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.credentials(w, r)
	if !ok {
		return
	}
	var req IssueTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		shared.WriteValidationError(w, fieldErrors(err))
		return
	}
	passengers := make([]service.PassengerInput, 0, len(req.Passengers))
	for _, p := range req.Passengers {
		passengers = append(passengers, p.toInput())
	}
	rows, err := h.svc.IssueTicket(r.Context(), creds, service.IssueTicketInput{
		PNRNo:      chi.URLParam(r, "pnr"),
		Passengers: passengers,
	})
	if err != nil {
		h.writeOperationError(w, r, "issue_ticket", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"tickets": rows})
}

func (h *Handler) handleItinerary(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.credentials(w, r)
	if !ok {
		return
	}
	rows, err := h.svc.Itinerary(r.Context(), creds, service.ItineraryInput{
		PNRNo:    r.URL.Query().Get("pnr_no"),
		TicketNo: r.URL.Query().Get("ticket_no"),
	})
	if err != nil {
		h.writeOperationError(w, r, "itinerary", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"tickets": rows})
}

func (h *Handler) handlePNRDetail(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.credentials(w, r)
	if !ok {
		return
	}
	url, err := h.svc.PNRDetail(r.Context(), creds, chi.URLParam(r, "pnr"))
	if err != nil {
		h.writeOperationError(w, r, "pnr_detail", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"url": url})
}

func (h *Handler) handleSalesReport(w http.ResponseWriter, r *http.Request) {
	creds, ok := h.credentials(w, r)
	if !ok {
		return
	}
	query := SalesReportQuery{
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
	}
	if fields := query.Validate(); fields != nil {
		shared.WriteValidationError(w, fields)
		return
	}
	rows, err := h.svc.SalesReport(r.Context(), creds, service.SalesReportInput{
		DateFrom: query.DateFrom,
		DateTo:   query.DateTo,
	})
	if err != nil {
		h.writeOperationError(w, r, "sales_report", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{"report": rows})
}
