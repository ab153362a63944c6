package service

import (
	"context"
	"errors"
	"testing"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/internal/core/ports/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func validFreezeCommand() ports.FreezeCommand {
	limit := decimal.NewFromInt(500)
	return ports.FreezeCommand{
		AccountID: "A-1",
		Form: domain.FreezeForm{
			FreezeType:       domain.FreezeTypeFull,
			Reason:           domain.FreezeReasonSuspiciousActivity,
			AuthorizedBy:     " Officer Kay ",
			Comments:         "Multiple chargebacks reported today",
			ReviewDate:       "2025-07-01",
			TransactionLimit: &limit,
		},
		Confirmation: domain.FreezeConfirmation{
			ConfirmAccountNumber: "A-1",
			ConfirmFreeze:        true,
			OfficerSignature:     "OK",
		},
	}
}

func TestFreezeService_Freeze(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAccountAPI(ctrl)
	svc := NewFreezeService(api, newTestLogger())

	api.EXPECT().GetAccount(gomock.Any(), "A-1").
		Return(&domain.Account{AccountNumber: "A-1", Status: domain.AccountStatusActive}, nil)
	api.EXPECT().FreezeAccount(gomock.Any(), "A-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req domain.FreezeAccountRequest) (*domain.FreezeAccountResponse, error) {
			assert.Equal(t, "A-1", req.AccountNumber)
			assert.Equal(t, domain.FreezeActionFreeze, req.Action)
			assert.Equal(t, domain.FreezeTypeFull, req.FreezeType)
			assert.Equal(t, "Officer Kay", req.AuthorizedBy)
			assert.Equal(t, "2025-07-01", req.ReviewDate)
			return &domain.FreezeAccountResponse{AccountNumber: "A-1", CurrentStatus: "FROZEN"}, nil
		})

	resp, err := svc.Freeze(context.Background(), validFreezeCommand())
	require.NoError(t, err)
	assert.Equal(t, "FROZEN", resp.CurrentStatus)
}

func TestFreezeService_MissingAccountID(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewFreezeService(mocks.NewMockAccountAPI(ctrl), newTestLogger())

	cmd := validFreezeCommand()
	cmd.AccountID = ""
	_, err := svc.Freeze(context.Background(), cmd)
	appErr := requireAppError(t, err, "NAV_001")
	assert.Equal(t, "/app/accounts", appErr.RedirectTo)
}

func TestFreezeService_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*ports.FreezeCommand)
		field string
		msg   string
	}{
		{"short comments", func(c *ports.FreezeCommand) { c.Form.Comments = "too short" }, "comments", "Comments must be at least 10 characters"},
		{"missing reason", func(c *ports.FreezeCommand) { c.Form.Reason = "" }, "reason", "Reason is required"},
		{"partial needs limit", func(c *ports.FreezeCommand) {
			c.Form.FreezeType = domain.FreezeTypePartial
			c.Form.TransactionLimit = nil
		}, "transactionLimit", "Transaction Limit is required"},
		{"negative partial limit", func(c *ports.FreezeCommand) {
			c.Form.FreezeType = domain.FreezeTypePartial
			neg := decimal.NewFromInt(-1)
			c.Form.TransactionLimit = &neg
		}, "transactionLimit", "Transaction Limit must be at least 0"},
		{"unknown freeze type", func(c *ports.FreezeCommand) { c.Form.FreezeType = "BOGUS" }, "freezeType", "Freeze Type is not a recognised option"},
		{"unknown reason", func(c *ports.FreezeCommand) { c.Form.Reason = "NOPE" }, "reason", "Reason is not a recognised option"},
		{"unconfirmed", func(c *ports.FreezeCommand) { c.Confirmation.ConfirmFreeze = false }, "confirmFreeze", "Freeze Confirmation is required"},
		{"unsigned", func(c *ports.FreezeCommand) { c.Confirmation.OfficerSignature = " " }, "officerSignature", "Officer Signature is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := NewFreezeService(mocks.NewMockAccountAPI(ctrl), newTestLogger())

			cmd := validFreezeCommand()
			tt.edit(&cmd)
			_, err := svc.Freeze(context.Background(), cmd)
			appErr := requireAppError(t, err, "VAL_002")
			assert.Equal(t, tt.msg, appErr.Fields[tt.field])
		})
	}
}

func TestFreezeService_ConfirmationMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAccountAPI(ctrl)
	svc := NewFreezeService(api, newTestLogger())

	api.EXPECT().GetAccount(gomock.Any(), "A-1").Return(&domain.Account{AccountNumber: "A-1"}, nil)

	cmd := validFreezeCommand()
	cmd.Confirmation.ConfirmAccountNumber = "A-2"
	_, err := svc.Freeze(context.Background(), cmd)
	appErr := requireAppError(t, err, "VAL_002")
	assert.Contains(t, appErr.Fields, "confirmAccountNumber")
}

func TestFreezeService_BackendErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAccountAPI(ctrl)
	svc := NewFreezeService(api, newTestLogger())

	api.EXPECT().GetAccount(gomock.Any(), "A-1").Return(nil, ports.ErrBackendNotFound)
	_, err := svc.Freeze(context.Background(), validFreezeCommand())
	requireAppError(t, err, "BANK_002")

	api.EXPECT().GetAccount(gomock.Any(), "A-1").Return(&domain.Account{AccountNumber: "A-1"}, nil)
	api.EXPECT().FreezeAccount(gomock.Any(), "A-1", gomock.Any()).Return(nil, errors.New("timeout"))
	_, err = svc.Freeze(context.Background(), validFreezeCommand())
	requireAppError(t, err, "BANK_001")
}
