package kiosksession

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abaleemmo/food-festival-express-checkout/pkg/config"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/enums"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
)

func newTestManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(config.SessionConfig{
		TTL:           30 * time.Minute,
		SweepInterval: 5 * time.Minute,
	}, 6, nil)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestCreateAndGetSession(t *testing.T) {
	m, _ := newTestManager(t)

	created, err := m.Create(enums.LineSideLeft)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, enums.LineSideLeft, created.Side())

	got, err := m.Get(created.ID)
	require.NoError(t, err)
	assert.Same(t, created, got)
}

func TestCreateRejectsUnknownLineSide(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Create(enums.LineSide("Middle"))
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestGetUnknownSession(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Get(uuid.New())
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeUnauthorized, coded.Code())
}

func TestGetExpiredSessionIsRemoved(t *testing.T) {
	m, now := newTestManager(t)

	created, err := m.Create(enums.LineSideRight)
	require.NoError(t, err)

	*now = now.Add(31 * time.Minute)

	_, err = m.Get(created.ID)
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeUnauthorized, coded.Code())
	assert.Zero(t, m.Count(), "expired session is dropped on access")
}

func TestGetRefreshesTTL(t *testing.T) {
	m, now := newTestManager(t)

	created, err := m.Create(enums.LineSideLeft)
	require.NoError(t, err)

	*now = now.Add(20 * time.Minute)
	_, err = m.Get(created.ID)
	require.NoError(t, err)

	// 20 more minutes would have expired the original deadline
	*now = now.Add(20 * time.Minute)
	_, err = m.Get(created.ID)
	require.NoError(t, err, "access keeps the session alive")
}

func TestReapExpiredSweepsOnlyStaleSessions(t *testing.T) {
	m, now := newTestManager(t)

	stale, err := m.Create(enums.LineSideLeft)
	require.NoError(t, err)

	*now = now.Add(31 * time.Minute)
	fresh, err := m.Create(enums.LineSideRight)
	require.NoError(t, err)

	reaped := m.reapExpired()
	assert.Equal(t, 1, reaped)
	assert.Equal(t, 1, m.Count())

	_, err = m.Get(stale.ID)
	require.Error(t, err)
	_, err = m.Get(fresh.ID)
	require.NoError(t, err)
}

func TestCheckoutStateGuard(t *testing.T) {
	m, _ := newTestManager(t)

	session, err := m.Create(enums.LineSideLeft)
	require.NoError(t, err)

	session.Do(func(state *State) {
		require.NoError(t, state.BeginCheckout())

		err := state.BeginCheckout()
		require.Error(t, err)
		coded := pkgerrors.As(err)
		require.NotNil(t, coded)
		assert.Equal(t, pkgerrors.CodeStateConflict, coded.Code())

		state.FailCheckout()
		require.NoError(t, state.BeginCheckout(), "failure returns the session to idle")

		state.CompleteCheckout()
		assert.Equal(t, enums.CheckoutStateCommitted, state.CheckoutState())
		assert.True(t, state.Cart().IsEmpty(), "commit clears the cart")
		require.NoError(t, state.BeginCheckout(), "a committed session can start a new order")
	})
}
