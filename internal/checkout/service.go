package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/abaleemmo/food-festival-express-checkout/internal/cart"
	"github.com/abaleemmo/food-festival-express-checkout/internal/kiosksession"
	"github.com/abaleemmo/food-festival-express-checkout/internal/transactions"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/db/models"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/metrics"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/types"
)

// Summary is the order snapshot shown on the checkout screen. It is derived
// from the cart lines on every call, never cached.
type Summary struct {
	Lines     types.TransactionLines `json:"lines"`
	ItemCount int                    `json:"item_count"`
	Subtotal  decimal.Decimal        `json:"subtotal"`
}

// Summarize reduces cart lines to the checkout summary.
func Summarize(lines []cart.Line) Summary {
	summary := Summary{
		Lines:    make(types.TransactionLines, 0, len(lines)),
		Subtotal: decimal.Zero,
	}
	for _, line := range lines {
		summary.Lines = append(summary.Lines, types.TransactionLine{
			ItemID:    line.Item.ID,
			Name:      line.Item.Name,
			UnitPrice: line.Item.Price,
			Quantity:  line.Quantity,
			LineTotal: line.Total(),
		})
		summary.ItemCount += line.Quantity
		summary.Subtotal = summary.Subtotal.Add(line.Total())
	}
	return summary
}

// Recorder persists one committed checkout.
type Recorder interface {
	Record(ctx context.Context, record *models.Transaction) (*models.Transaction, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// GormRecorder writes the transaction inside a database transaction.
type GormRecorder struct {
	tx   txRunner
	repo *transactions.Repository
}

// NewGormRecorder builds the production recorder.
func NewGormRecorder(tx txRunner, repo *transactions.Repository) (*GormRecorder, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("transactions repository required")
	}
	return &GormRecorder{tx: tx, repo: repo}, nil
}

// Record implements Recorder.
func (r *GormRecorder) Record(ctx context.Context, record *models.Transaction) (*models.Transaction, error) {
	var saved *models.Transaction
	err := r.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		saved, err = r.repo.WithTx(tx).Create(ctx, record)
		return err
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Service drives the checkout lifecycle for kiosk sessions.
type Service struct {
	recorder Recorder
	timeout  time.Duration
	metrics  *metrics.CheckoutMetrics
}

// NewService builds a checkout service. Metrics may be nil in tests.
func NewService(recorder Recorder, timeout time.Duration, m *metrics.CheckoutMetrics) (*Service, error) {
	if recorder == nil {
		return nil, fmt.Errorf("recorder required")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("commit timeout must be positive")
	}
	return &Service{recorder: recorder, timeout: timeout, metrics: m}, nil
}

// Summarize returns the current order snapshot for the session.
func (s *Service) Summarize(session *kiosksession.Session) Summary {
	var summary Summary
	session.Do(func(state *kiosksession.State) {
		summary = Summarize(state.Cart().Lines())
	})
	return summary
}

// Commit submits the session's cart as a transaction. An empty cart is
// rejected before any state changes. While the write is in flight the
// session is in the submitting state and a second commit is refused. On
// failure the cart is left intact so the shopper can retry; on success the
// cart is cleared.
func (s *Service) Commit(ctx context.Context, session *kiosksession.Session) (*models.Transaction, error) {
	var lines []cart.Line
	var beginErr error
	session.Do(func(state *kiosksession.State) {
		if state.Cart().IsEmpty() {
			beginErr = pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
			return
		}
		if err := state.BeginCheckout(); err != nil {
			beginErr = err
			return
		}
		lines = state.Cart().Lines()
	})
	if beginErr != nil {
		s.metrics.IncFailed(failureReason(beginErr))
		return nil, beginErr
	}

	summary := Summarize(lines)
	record := &models.Transaction{
		UserID:         session.UserID,
		TotalAmount:    summary.Subtotal,
		ItemCount:      summary.ItemCount,
		ItemsPurchased: summary.Lines,
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	saved, err := s.recorder.Record(ctx, record)
	if err != nil {
		session.Do(func(state *kiosksession.State) {
			state.FailCheckout()
		})
		s.metrics.IncFailed(failureReason(err))
		s.metrics.ObserveCommit("failed", time.Since(start))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting checkout")
	}

	session.Do(func(state *kiosksession.State) {
		state.CompleteCheckout()
	})
	s.metrics.IncCommitted()
	s.metrics.ObserveCommit("committed", time.Since(start))
	return saved, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case pkgerrors.As(err) != nil && pkgerrors.As(err).Code() == pkgerrors.CodeValidation:
		return "empty_cart"
	case pkgerrors.As(err) != nil && pkgerrors.As(err).Code() == pkgerrors.CodeStateConflict:
		return "in_flight"
	default:
		return "storage"
	}
}
