package redis

import (
	"context"
	"testing"
	"time"

	"secure-bank-console/internal/core/domain"
	"secure-bank-console/internal/core/ports"
	"secure-bank-console/internal/core/wizard"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() *wizard.Session {
	customers := []domain.Customer{
		{CustomerID: "C-1", FirstName: "Jane", LastName: "Doe", Status: domain.CustomerStatusActive, CustomerType: domain.CustomerTypePersonal},
	}
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	return &wizard.Session{
		ID:        "wiz-1",
		Owner:     "user-1",
		State:     wizard.New(customers),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestWizardStore_SaveAndGet(t *testing.T) {
	mr, client := newMiniredis(t)
	store := NewWizardStore(client, 30*time.Minute)
	ctx := context.Background()

	session := sampleSession()
	require.NoError(t, session.State.SelectCustomer("C-1"))
	require.NoError(t, session.State.Next())
	_, err := session.State.ApplyPreset(domain.AccountTypeSavings)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, session))
	assert.Equal(t, 30*time.Minute, mr.TTL("wizard:wiz-1"))

	got, err := store.Get(ctx, "wiz-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.Owner)
	assert.Equal(t, wizard.StepAccountConfiguration, got.State.CurrentStep)
	require.NotNil(t, got.State.SelectedCustomer)
	assert.Equal(t, "C-1", got.State.SelectedCustomer.CustomerID)
	require.NotNil(t, got.State.AccountForm.InitialBalance)
	assert.True(t, got.State.AccountForm.InitialBalance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, session.CreatedAt, got.CreatedAt)
}

func TestWizardStore_SlidingTTL(t *testing.T) {
	mr, client := newMiniredis(t)
	store := NewWizardStore(client, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))
	mr.FastForward(8 * time.Minute)

	_, err := store.Get(ctx, "wiz-1")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, mr.TTL("wizard:wiz-1"), "reads refresh the expiry")

	mr.FastForward(11 * time.Minute)
	_, err = store.Get(ctx, "wiz-1")
	assert.ErrorIs(t, err, ports.ErrWizardNotFound)
}

func TestWizardStore_GetMissingAndCorrupt(t *testing.T) {
	mr, client := newMiniredis(t)
	store := NewWizardStore(client, time.Minute)
	ctx := context.Background()

	_, err := store.Get(ctx, "nope")
	assert.ErrorIs(t, err, ports.ErrWizardNotFound)

	require.NoError(t, mr.Set("wizard:bad", "{not json"))
	_, err = store.Get(ctx, "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrWizardNotFound)
}

func TestWizardStore_Delete(t *testing.T) {
	mr, client := newMiniredis(t)
	store := NewWizardStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))
	ok, err := store.AcquireSubmitLock(ctx, "wiz-1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, store.Delete(ctx, "wiz-1"))
	assert.False(t, mr.Exists("wizard:wiz-1"))
	assert.False(t, mr.Exists("wizard-submit:wiz-1"))
}

func TestWizardStore_SubmitLock(t *testing.T) {
	mr, client := newMiniredis(t)
	store := NewWizardStore(client, time.Minute)
	ctx := context.Background()

	ok, err := store.AcquireSubmitLock(ctx, "wiz-1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.AcquireSubmitLock(ctx, "wiz-1", 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok, "second acquire must fail while held")

	ok, err = store.AcquireSubmitLock(ctx, "wiz-2", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "locks are per wizard")

	require.NoError(t, store.ReleaseSubmitLock(ctx, "wiz-1"))
	ok, err = store.AcquireSubmitLock(ctx, "wiz-1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(31 * time.Second)
	ok, err = store.AcquireSubmitLock(ctx, "wiz-2", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "abandoned locks expire")
}
