package service

import (
	"context"
	"testing"
	"time"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/internal/core/ports/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReportService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAccountAPI(ctrl)
	svc := NewReportService(api, newTestLogger()).(*reportService)
	fixed := time.Date(2025, 5, 5, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	api.EXPECT().GetSummaryReport(gomock.Any()).Return([]domain.AccountSummaryReport{
		{AccountType: domain.AccountTypeSavings, TotalAccounts: 6, TotalBalance: decimal.NewFromInt(750), ActiveAccountsCount: 5, FrozenAccountsCount: 1},
		{AccountType: domain.AccountTypeBusiness, TotalAccounts: 4, TotalBalance: decimal.NewFromInt(250), ActiveAccountsCount: 3, ClosedAccountsCount: 1},
	}, nil)

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, got.TotalAccounts)
	assert.Equal(t, 8, got.TotalActive)
	assert.Equal(t, domain.HealthExcellent, got.HealthStatus)
	assert.True(t, got.Rows[0].BalanceShare.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, "Business Accounts", got.Rows[1].Label)
	assert.Equal(t, fixed, got.LastUpdated)
}

func TestReportService_Summary_BackendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAccountAPI(ctrl)
	svc := NewReportService(api, newTestLogger())

	api.EXPECT().GetSummaryReport(gomock.Any()).Return(nil, &ports.BackendError{StatusCode: 500})

	_, err := svc.Summary(context.Background())
	requireAppError(t, err, "BANK_001")
}
