package service

import (
	"context"
	"strings"

	"github.com/tanchhohang/airlines-api/internal/platform/middleware"
	"github.com/tanchhohang/airlines-api/internal/soap"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

// PNRDetail returns the backend's maintenance URL for a reservation. This is
// the one operation whose payload is a plain scalar: the result element's
// text is the URL, with no nested document to parse.
func (s *Service) PNRDetail(ctx context.Context, creds middleware.Credentials, pnr string) (string, error) {
	params := append(credParams(creds),
		soap.Param{Name: "strPnrNo", Value: pnr},
	)

	elem, err := s.call(ctx, "PNRDetail", params)
	if err != nil {
		return "", err
	}
	if elem == nil {
		return "", dErrors.New(dErrors.CodeMissingData, "pnr detail returned no data")
	}

	url := strings.TrimSpace(elem.Text())
	if url == "" {
		return "", dErrors.New(dErrors.CodeMissingData, "pnr detail returned no data")
	}
	return url, nil
}
