package service

import (
	"context"

	"github.com/beevik/etree"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
	"github.com/tanchhohang/airlines-api/internal/cache"
	"github.com/tanchhohang/airlines-api/internal/platform/middleware"
	"github.com/tanchhohang/airlines-api/internal/soap"
)

var salesReportFields = []soap.Field{
	{Out: "ticket_no", Names: []string{"TicketNO", "TicketNo"}, Kind: soap.String, Required: true},
	{Out: "pnr_no", Names: []string{"PNRNO", "PNRNo"}, Kind: soap.String},
	{Out: "passenger_name", Names: []string{"PaxName", "PassengerName"}, Kind: soap.String},
	{Out: "flight_no", Names: []string{"FlightNo"}, Kind: soap.String},
	{Out: "flight_date", Names: []string{"FlightDate"}, Kind: soap.Date},
	{Out: "issue_date", Names: []string{"IssueDate"}, Kind: soap.Date},
	{Out: "fare", Names: []string{"Fare"}, Kind: soap.Float},
	{Out: "tax", Names: []string{"Tax"}, Kind: soap.Float},
	{Out: "commission", Names: []string{"Commission"}, Kind: soap.Float},
}

// SalesReportInput is an inclusive issue-date range, already normalized to
// YYYY-MM-DD by the handler.
type SalesReportInput struct {
	DateFrom string
	DateTo   string
}

// SalesReport lists the tickets issued by the caller's agency within a date
// range. Reports are expensive on the backend and change slowly, so results
// are cached per agency and range.
func (s *Service) SalesReport(ctx context.Context, creds middleware.Credentials, in SalesReportInput) ([]models.SalesReportRow, error) {
	key := cache.Key("SalesReport", map[string]string{
		"agency": creds.AgencyID,
		"from":   in.DateFrom,
		"to":     in.DateTo,
	})
	rows, hit, err := cache.GetOrCompute(ctx, s.cache, s.logger, key, s.reportTTL, func(ctx context.Context) ([]models.SalesReportRow, error) {
		return s.fetchSalesReport(ctx, creds, in)
	})
	if err != nil {
		return nil, err
	}
	s.observeCache("SalesReport", hit)
	return rows, nil
}

func (s *Service) fetchSalesReport(ctx context.Context, creds middleware.Credentials, in SalesReportInput) ([]models.SalesReportRow, error) {
	params := append(credParams(creds),
		soap.Param{Name: "strDateFrom", Value: in.DateFrom},
		soap.Param{Name: "strDateTo", Value: in.DateTo},
	)

	elem, err := s.call(ctx, "SalesReport", params)
	if err != nil {
		return nil, err
	}
	if elem == nil {
		return []models.SalesReportRow{}, nil
	}
	return mapSalesReport(elem)
}

func mapSalesReport(elem *etree.Element) ([]models.SalesReportRow, error) {
	records, err := soap.MapList(elem, "Ticket", salesReportFields)
	if err != nil {
		return nil, err
	}
	rows := make([]models.SalesReportRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, models.SalesReportRow{
			TicketNo:      record.String("ticket_no"),
			PNRNo:         record.String("pnr_no"),
			PassengerName: record.String("passenger_name"),
			FlightNo:      record.String("flight_no"),
			FlightDate:    record.String("flight_date"),
			IssueDate:     record.String("issue_date"),
			Fare:          record.Float("fare"),
			Tax:           record.Float("tax"),
			Commission:    record.Float("commission"),
		})
	}
	return rows, nil
}
