package service

import (
	"context"
	"strings"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/pkg/apperror"

	"github.com/rs/zerolog"
)

type freezeService struct {
	accounts ports.AccountAPI
	log      zerolog.Logger
}

func NewFreezeService(accounts ports.AccountAPI, log zerolog.Logger) ports.FreezeService {
	return &freezeService{accounts: accounts, log: log}
}

// Freeze validates the instruction and its confirmation, loads the target
// account and sends the freeze to the backend.
func (s *freezeService) Freeze(ctx context.Context, cmd ports.FreezeCommand) (*domain.FreezeAccountResponse, error) {
	if cmd.AccountID == "" {
		return nil, apperror.ErrMissingParam("accountId", accountsPage)
	}

	form := cmd.Form
	form.Normalize()
	errs := form.Validate().Merge(cmd.Confirmation.Validate())
	if !errs.Valid() {
		return nil, apperror.ValidationFields("Please complete all required fields", errs)
	}

	account, err := s.accounts.GetAccount(ctx, cmd.AccountID)
	if err != nil {
		s.log.Error().Err(err).Str("account_id", cmd.AccountID).Msg("Failed to load account for freeze")
		return nil, backendError(err, "account")
	}

	if strings.TrimSpace(cmd.Confirmation.ConfirmAccountNumber) != account.AccountNumber {
		return nil, apperror.ValidationFields("Please complete all required fields", map[string]string{
			"confirmAccountNumber": "Account Number Confirmation does not match",
		})
	}

	req := domain.NewFreezeAccountRequest(account.AccountNumber, form)
	resp, err := s.accounts.FreezeAccount(ctx, account.AccountNumber, req)
	if err != nil {
		s.log.Error().Err(err).Str("account_number", account.AccountNumber).Msg("Failed to freeze account")
		return nil, backendError(err, "account")
	}

	s.log.Info().
		Str("account_number", account.AccountNumber).
		Str("freeze_type", string(req.FreezeType)).
		Str("reason", string(req.Reason)).
		Str("authorized_by", req.AuthorizedBy).
		Msg("Account frozen")
	return resp, nil
}
