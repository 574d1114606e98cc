package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abaleemmo/food-festival-express-checkout/internal/cart"
	"github.com/abaleemmo/food-festival-express-checkout/internal/kiosksession"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/config"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/db/models"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/enums"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
	"github.com/google/uuid"
)

type stubRecorder struct {
	records []*models.Transaction
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (s *stubRecorder) Record(ctx context.Context, record *models.Transaction) (*models.Transaction, error) {
	if s.entered != nil {
		close(s.entered)
	}
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	record.ID = uuid.New()
	s.records = append(s.records, record)
	return record, nil
}

func newTestSession(t *testing.T) *kiosksession.Session {
	t.Helper()

	m := kiosksession.NewManager(config.SessionConfig{
		TTL:           time.Hour,
		SweepInterval: time.Hour,
	}, 6, nil)
	session, err := m.Create(enums.LineSideLeft)
	require.NoError(t, err)
	return session
}

func menuItem(name string, price string) models.FoodItem {
	return models.FoodItem{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
}

func fillCart(session *kiosksession.Session, items ...models.FoodItem) {
	session.Do(func(state *kiosksession.State) {
		for _, item := range items {
			state.Cart().Add(item)
		}
	})
}

func TestSummarizeComputesTotals(t *testing.T) {
	tofu := menuItem("Spicy Tofu Stir-fry", "12.50")
	soup := menuItem("Lentil Soup", "8.00")

	summary := Summarize([]cart.Line{
		{Item: tofu, Quantity: 2},
		{Item: soup, Quantity: 1},
	})

	require.Len(t, summary.Lines, 2)
	assert.Equal(t, 3, summary.ItemCount)
	assert.True(t, summary.Subtotal.Equal(decimal.RequireFromString("33.00")))
	assert.True(t, summary.Lines[0].LineTotal.Equal(decimal.RequireFromString("25.00")))
	assert.Equal(t, tofu.ID, summary.Lines[0].ItemID)
}

func TestCommitEmptyCartRejectedBeforeAnyWrite(t *testing.T) {
	rec := &stubRecorder{}
	svc, err := NewService(rec, time.Second, nil)
	require.NoError(t, err)

	session := newTestSession(t)

	_, err = svc.Commit(context.Background(), session)
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
	assert.Empty(t, rec.records, "nothing is persisted for an empty cart")

	session.Do(func(state *kiosksession.State) {
		assert.Equal(t, enums.CheckoutStateIdle, state.CheckoutState())
	})
}

func TestCommitPersistsAndClearsCart(t *testing.T) {
	rec := &stubRecorder{}
	svc, err := NewService(rec, time.Second, nil)
	require.NoError(t, err)

	session := newTestSession(t)
	tofu := menuItem("Spicy Tofu Stir-fry", "12.50")
	fillCart(session, tofu, tofu, menuItem("Lentil Soup", "8.00"))

	saved, err := svc.Commit(context.Background(), session)
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, 3, saved.ItemCount)
	assert.True(t, saved.TotalAmount.Equal(decimal.RequireFromString("33.00")))
	require.Len(t, rec.records, 1)

	session.Do(func(state *kiosksession.State) {
		assert.True(t, state.Cart().IsEmpty(), "committed checkout empties the cart")
		assert.Equal(t, enums.CheckoutStateCommitted, state.CheckoutState())
	})
}

func TestCommitFailureLeavesCartIntact(t *testing.T) {
	rec := &stubRecorder{err: errors.New("connection refused")}
	svc, err := NewService(rec, time.Second, nil)
	require.NoError(t, err)

	session := newTestSession(t)
	fillCart(session, menuItem("Lentil Soup", "8.00"))

	_, err = svc.Commit(context.Background(), session)
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeDependency, coded.Code())

	session.Do(func(state *kiosksession.State) {
		assert.False(t, state.Cart().IsEmpty(), "failed checkout keeps the order")
		assert.Equal(t, enums.CheckoutStateIdle, state.CheckoutState())
	})

	// the retry goes through once the backend recovers
	rec.err = nil
	_, err = svc.Commit(context.Background(), session)
	require.NoError(t, err)
}

func TestCommitWhileInFlightIsRefused(t *testing.T) {
	rec := &stubRecorder{
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	svc, err := NewService(rec, time.Second, nil)
	require.NoError(t, err)

	session := newTestSession(t)
	fillCart(session, menuItem("Lentil Soup", "8.00"))

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Commit(context.Background(), session)
		firstDone <- err
	}()

	<-rec.entered

	_, err = svc.Commit(context.Background(), session)
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeStateConflict, coded.Code())

	close(rec.block)
	require.NoError(t, <-firstDone)
}

func TestCommitTimesOut(t *testing.T) {
	rec := &stubRecorder{block: make(chan struct{})}
	svc, err := NewService(rec, 20*time.Millisecond, nil)
	require.NoError(t, err)

	session := newTestSession(t)
	fillCart(session, menuItem("Lentil Soup", "8.00"))

	_, err = svc.Commit(context.Background(), session)
	require.Error(t, err)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeDependency, coded.Code())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	session.Do(func(state *kiosksession.State) {
		assert.False(t, state.Cart().IsEmpty(), "timeout keeps the order")
		assert.Equal(t, enums.CheckoutStateIdle, state.CheckoutState())
	})
}
