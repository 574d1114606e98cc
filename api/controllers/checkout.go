package controllers

import (
	"net/http"
	"time"

	"github.com/abaleemmo/food-festival-express-checkout/api/middleware"
	"github.com/abaleemmo/food-festival-express-checkout/api/responses"
	"github.com/abaleemmo/food-festival-express-checkout/internal/checkout"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/logger"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/types"
)

// CheckoutSummary returns the order snapshot for the confirmation screen.
func CheckoutSummary(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.SessionFromContext(r.Context())
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}
		responses.WriteSuccess(w, svc.Summarize(session))
	}
}

type receiptResponse struct {
	TransactionID string                 `json:"transaction_id"`
	TotalAmount   string                 `json:"total_amount"`
	ItemCount     int                    `json:"item_count"`
	Lines         types.TransactionLines `json:"lines"`
	CreatedAt     time.Time              `json:"created_at"`
}

// CheckoutSubmit commits the cart as a transaction and returns the receipt.
func CheckoutSubmit(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.SessionFromContext(r.Context())
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}

		record, err := svc.Commit(r.Context(), session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receiptResponse{
			TransactionID: record.ID.String(),
			TotalAmount:   record.TotalAmount.StringFixed(2),
			ItemCount:     record.ItemCount,
			Lines:         record.ItemsPurchased,
			CreatedAt:     record.CreatedAt,
		})
	}
}
