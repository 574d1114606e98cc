package transactions

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/abaleemmo/food-festival-express-checkout/pkg/db/models"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
)

// Repository persists and reads completed checkout transactions.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a transaction record. Records are write-once, there is no
// update path.
func (r *Repository) Create(ctx context.Context, record *models.Transaction) (*models.Transaction, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating transaction")
	}
	return record, nil
}

// List returns all transactions, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Transaction, error) {
	var records []models.Transaction
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing transactions")
	}
	return records, nil
}

// Stats summarizes the transaction log for the admin dashboard.
type Stats struct {
	TransactionCount int64           `json:"transaction_count"`
	TotalItems       int64           `json:"total_items"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	UniqueUsers      int64           `json:"unique_users"`
}

type statsRow struct {
	TransactionCount int64
	TotalItems       int64
	TotalRevenue     decimal.Decimal
	KnownUsers       int64
	AnonymousRows    int64
}

// Stats computes the dashboard aggregates in one query. Anonymous checkouts
// (null user_id) count as a single user bucket.
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	var row statsRow
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select(`COUNT(*) AS transaction_count,
			COALESCE(SUM(item_count), 0) AS total_items,
			COALESCE(SUM(total_amount), 0) AS total_revenue,
			COUNT(DISTINCT user_id) AS known_users,
			COUNT(*) - COUNT(user_id) AS anonymous_rows`).
		Scan(&row).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "computing transaction stats")
	}

	stats := &Stats{
		TransactionCount: row.TransactionCount,
		TotalItems:       row.TotalItems,
		TotalRevenue:     row.TotalRevenue,
		UniqueUsers:      row.KnownUsers,
	}
	if row.AnonymousRows > 0 {
		stats.UniqueUsers++
	}
	return stats, nil
}
