package service

import (
	"context"
	"time"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"

	"github.com/rs/zerolog"
)

type reportService struct {
	accounts ports.AccountAPI
	log      zerolog.Logger
	now      func() time.Time
}

func NewReportService(accounts ports.AccountAPI, log zerolog.Logger) ports.ReportService {
	return &reportService{accounts: accounts, log: log, now: time.Now}
}

// Summary fetches the per-type summary and derives portfolio totals.
func (s *reportService) Summary(ctx context.Context) (*domain.SummaryOverview, error) {
	rows, err := s.accounts.GetSummaryReport(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load account summary")
		return nil, backendError(err, "summary report")
	}
	overview := domain.BuildSummaryOverview(rows, s.now())
	return &overview, nil
}
