package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/abaleemmo/food-festival-express-checkout/api/middleware"
	"github.com/abaleemmo/food-festival-express-checkout/api/responses"
	"github.com/abaleemmo/food-festival-express-checkout/api/validators"
	"github.com/abaleemmo/food-festival-express-checkout/internal/catalog"
	"github.com/abaleemmo/food-festival-express-checkout/internal/checkout"
	"github.com/abaleemmo/food-festival-express-checkout/internal/kiosksession"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/logger"
)

func cartView(session *kiosksession.Session) checkout.Summary {
	var summary checkout.Summary
	session.Do(func(state *kiosksession.State) {
		summary = checkout.Summarize(state.Cart().Lines())
	})
	return summary
}

// CartShow returns the cart with totals recomputed from its lines.
func CartShow(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.SessionFromContext(r.Context())
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}
		responses.WriteSuccess(w, cartView(session))
	}
}

type addCartItemRequest struct {
	ItemID          uuid.UUID `json:"item_id" validate:"required"`
	AllowIneligible bool      `json:"allow_ineligible"`
}

// CartAdd puts one unit of a menu item in the cart. An item that does not
// satisfy the session's dietary restrictions is refused unless the shopper
// confirmed with allow_ineligible; the unmet tags ride along in the error
// details so the kiosk can show the warning dialog.
func CartAdd(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.SessionFromContext(r.Context())
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), payload.ItemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if item.LineSide != session.Side() {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "item belongs to the other serving line"))
			return
		}

		var addErr error
		session.Do(func(state *kiosksession.State) {
			unmet := state.Restrictions().Unmet(*item)
			if len(unmet) > 0 && !payload.AllowIneligible {
				tags := make([]string, 0, len(unmet))
				for _, tag := range unmet {
					tags = append(tags, tag.String())
				}
				addErr = pkgerrors.New(pkgerrors.CodeConflict, "item does not meet dietary restrictions").
					WithDetails(map[string]any{"unmet_restrictions": tags})
				return
			}
			state.Cart().Add(*item)
		})
		if addErr != nil {
			responses.WriteError(r.Context(), logg, w, addErr)
			return
		}

		responses.WriteSuccess(w, cartView(session))
	}
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartSetQuantity sets the absolute quantity of one cart line. Zero or
// negative removes the line; an item not in the cart leaves it unchanged.
func CartSetQuantity(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.SessionFromContext(r.Context())
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session.Do(func(state *kiosksession.State) {
			state.Cart().SetQuantity(itemID, payload.Quantity)
		})

		responses.WriteSuccess(w, cartView(session))
	}
}

// CartClear empties the cart.
func CartClear(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.SessionFromContext(r.Context())
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}

		session.Do(func(state *kiosksession.State) {
			state.Cart().Clear()
		})

		responses.WriteSuccess(w, cartView(session))
	}
}

// CartRemove drops one line from the cart.
func CartRemove(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.SessionFromContext(r.Context())
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}

		itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		session.Do(func(state *kiosksession.State) {
			state.Cart().Remove(itemID)
		})

		responses.WriteSuccess(w, cartView(session))
	}
}
