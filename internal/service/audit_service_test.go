package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports/mocks"
	"secure-bank-console/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func requireAppError(t *testing.T, err error, code string) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func TestAuditService_Log_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, entry *domain.AuditLog) error {
			assert.Equal(t, domain.AuditActionAccountFreeze, entry.Action)
			assert.Equal(t, "jdoe", entry.Actor)
			assert.NoError(t, ctx.Err(), "persisting must survive request cancellation")
			close(done)
			return nil
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		Actor:        "jdoe",
		Action:       domain.AuditActionAccountFreeze,
		ResourceType: domain.ResourceAccount,
		ResourceID:   "ACC-1",
		IPAddress:    "127.0.0.1",
		CreatedAt:    time.Now(),
	})
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit log not persisted in time")
	}
}

func TestAuditService_Log_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, *domain.AuditLog) error {
			defer close(done)
			return errors.New("db down")
		},
	)

	svc.Log(context.Background(), &domain.AuditLog{ID: uuid.New(), Action: domain.AuditActionLogout})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit repo not called")
	}
}

func TestAuditService_Log_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())

	svc.Log(context.Background(), &domain.AuditLog{
		ID:           uuid.New(),
		Actor:        "jdoe",
		Action:       domain.AuditActionLogout,
		ResourceType: domain.ResourceSession,
		CreatedAt:    time.Now(),
	})

	time.Sleep(50 * time.Millisecond)
}

func TestAuditService_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	entries := []domain.AuditLog{{ID: uuid.New(), Actor: "jdoe", Action: domain.AuditActionAccountFreeze}}
	mockRepo.EXPECT().ListByResource(gomock.Any(), domain.ResourceAccount, "ACC-1", 20).Return(entries, nil)

	got, err := svc.History(context.Background(), domain.ResourceAccount, "ACC-1", 20)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestAuditService_History_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	_, err := svc.History(context.Background(), domain.ResourceAccount, "", 20)
	requireAppError(t, err, "VAL_001")

	mockRepo.EXPECT().ListByResource(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
	_, err = svc.History(context.Background(), domain.ResourceAccount, "ACC-1", 20)
	requireAppError(t, err, "SYS_001")
}

func TestAuditService_History_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())

	got, err := svc.History(context.Background(), domain.ResourceAccount, "ACC-1", 20)
	require.NoError(t, err)
	assert.Empty(t, got)
}
