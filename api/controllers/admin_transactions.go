package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/abaleemmo/food-festival-express-checkout/api/responses"
	"github.com/abaleemmo/food-festival-express-checkout/internal/transactions"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/db/models"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/logger"
)

// TransactionReader exposes the transaction log queries the dashboard uses.
type TransactionReader interface {
	List(ctx context.Context) ([]models.Transaction, error)
	Stats(ctx context.Context) (*transactions.Stats, error)
}

type transactionResponse struct {
	ID             string    `json:"id"`
	UserID         *string   `json:"user_id"`
	TotalAmount    string    `json:"total_amount"`
	ItemCount      int       `json:"item_count"`
	ItemsPurchased any       `json:"items_purchased"`
	CreatedAt      time.Time `json:"created_at"`
}

func newTransactionResponse(record *models.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:             record.ID.String(),
		TotalAmount:    record.TotalAmount.StringFixed(2),
		ItemCount:      record.ItemCount,
		ItemsPurchased: record.ItemsPurchased,
		CreatedAt:      record.CreatedAt,
	}
	if record.UserID != nil {
		id := record.UserID.String()
		resp.UserID = &id
	}
	return resp
}

// AdminTransactionsList returns the transaction log, newest first.
func AdminTransactionsList(reader TransactionReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := reader.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]transactionResponse, 0, len(records))
		for i := range records {
			out = append(out, newTransactionResponse(&records[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// AdminTransactionsStats returns the dashboard aggregates.
func AdminTransactionsStats(reader TransactionReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := reader.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

