package service

import (
	"context"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
	"github.com/tanchhohang/airlines-api/internal/platform/middleware"
	"github.com/tanchhohang/airlines-api/internal/soap"
)

var balanceFields = []soap.Field{
	{Out: "airline_name", Names: []string{"AirlineName"}, Kind: soap.String, Required: true},
	{Out: "agency_name", Names: []string{"AgencyName"}, Kind: soap.String},
	{Out: "balance_amount", Names: []string{"BalanceAmount"}, Kind: soap.Float},
}

// CheckBalance returns the agency's balance with the given airline.
func (s *Service) CheckBalance(ctx context.Context, creds middleware.Credentials, airlineID string) ([]models.BalanceEntry, error) {
	params := append(credParams(creds), soap.Param{Name: "strAirlineId", Value: airlineID})

	elem, err := s.call(ctx, "CheckBalance", params)
	if err != nil {
		return nil, err
	}
	if elem == nil {
		return []models.BalanceEntry{}, nil
	}

	records, err := soap.MapList(elem, "Airline", balanceFields)
	if err != nil {
		return nil, err
	}

	balances := make([]models.BalanceEntry, 0, len(records))
	for _, record := range records {
		balances = append(balances, models.BalanceEntry{
			AirlineName:   record.String("airline_name"),
			AgencyName:    record.String("agency_name"),
			BalanceAmount: record.Float("balance_amount"),
		})
	}

	// Balance checks are the only call that confirms a carrier exists, so
	// refresh the airline display name from the reply. Name-only: the fare
	// column is seeded out of band and must survive the refresh. Persistence
	// trouble must not hide a successful balance.
	if len(balances) > 0 {
		_, err := s.airlines.UpsertName(ctx, airlineID, balances[0].AirlineName)
		if err != nil {
			s.logger.Warn("airline upsert failed", "airline_id", airlineID, "error", err)
		}
	}
	return balances, nil
}

// ListAirlines returns the persisted airline reference rows.
func (s *Service) ListAirlines(ctx context.Context) ([]models.Airline, error) {
	return s.airlines.List(ctx)
}

// GetAirline returns one persisted airline by carrier code.
func (s *Service) GetAirline(ctx context.Context, airlineID string) (models.Airline, error) {
	return s.airlines.GetByID(ctx, airlineID)
}
