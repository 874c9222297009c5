// Package service implements the gateway operations. Each operation is a
// linear pipeline: validate input, optionally consult the cache, build an
// envelope carrying the caller's upstream credentials, send it, extract the
// result, map it to the stable output schema, apply side effects, return.
// No state is retained between calls; every operation is a single backend
// round trip.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/beevik/etree"

	bookingstore "github.com/tanchhohang/airlines-api/internal/booking/store/booking"
	"github.com/tanchhohang/airlines-api/internal/booking/store/airline"
	"github.com/tanchhohang/airlines-api/internal/booking/store/sector"
	"github.com/tanchhohang/airlines-api/internal/cache"
	"github.com/tanchhohang/airlines-api/internal/platform/metrics"
	"github.com/tanchhohang/airlines-api/internal/platform/middleware"
	"github.com/tanchhohang/airlines-api/internal/soap"
)

// Backend issues one SOAP call to the reservation backend.
type Backend interface {
	Call(ctx context.Context, method, body string) (string, error)
}

// Service composes the translation layer with the persisted stores.
type Service struct {
	backend  Backend
	cache    cache.Store
	sectors  sector.Store
	airlines airline.Store
	bookings bookingstore.Store
	logger   *slog.Logger
	metrics  *metrics.Metrics

	sectorTTL time.Duration
	reportTTL time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics attaches cache instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithTTLs overrides the listing and report cache TTLs.
func WithTTLs(sectorTTL, reportTTL time.Duration) Option {
	return func(s *Service) {
		if sectorTTL > 0 {
			s.sectorTTL = sectorTTL
		}
		if reportTTL > 0 {
			s.reportTTL = reportTTL
		}
	}
}

// New constructs the gateway service. All collaborators are required.
func New(
	backend Backend,
	cacheStore cache.Store,
	sectors sector.Store,
	airlines airline.Store,
	bookings bookingstore.Store,
	logger *slog.Logger,
	opts ...Option,
) (*Service, error) {
	if backend == nil {
		return nil, errors.New("backend client is required")
	}
	if cacheStore == nil {
		return nil, errors.New("cache store is required")
	}
	if sectors == nil || airlines == nil || bookings == nil {
		return nil, errors.New("persisted stores are required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	s := &Service{
		backend:   backend,
		cache:     cacheStore,
		sectors:   sectors,
		airlines:  airlines,
		bookings:  bookings,
		logger:    logger,
		sectorTTL: 15 * time.Minute,
		reportTTL: 15 * time.Minute,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// credParams renders the caller identity the way the backend expects it at
// the head of every argument list.
func credParams(creds middleware.Credentials) []soap.Param {
	return []soap.Param{
		{Name: "strUserId", Value: creds.UserID},
		{Name: "strPassword", Value: creds.APIPassword},
		{Name: "strAgencyId", Value: creds.AgencyID},
	}
}

// call runs one build → send → extract round trip and returns the result
// node, which is nil when the backend returned no result element.
func (s *Service) call(ctx context.Context, method string, params []soap.Param) (*etree.Element, error) {
	body := soap.BuildEnvelope(method, params)
	response, err := s.backend.Call(ctx, method, body)
	if err != nil {
		return nil, err
	}
	return soap.ExtractReturn(response, soap.ReturnTag)
}

func (s *Service) observeCache(operation string, hit bool) {
	s.metrics.ObserveCache(operation, hit)
}
