package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/abaleemmo/food-festival-express-checkout/api/responses"
	"github.com/abaleemmo/food-festival-express-checkout/api/validators"
	"github.com/abaleemmo/food-festival-express-checkout/internal/catalog"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/db/models"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/enums"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/logger"
)

type itemPayload struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Price       string   `json:"price" validate:"required"`
	Description string   `json:"description" validate:"max=2000"`
	ImageURL    string   `json:"image_url" validate:"max=500"`
	DietaryTags []string `json:"dietary_tags" validate:"dive,oneof=Vegetarian Vegan Gluten-Free"`
	LineSide    string   `json:"line_side" validate:"required,oneof=Left Right"`
	Origin      *string  `json:"origin"`
}

func (p itemPayload) toInput() (catalog.ItemInput, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return catalog.ItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}

	side, err := enums.ParseLineSide(p.LineSide)
	if err != nil {
		return catalog.ItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line side")
	}

	tags := make([]enums.DietaryTag, 0, len(p.DietaryTags))
	for _, raw := range p.DietaryTags {
		tag, err := enums.ParseDietaryTag(raw)
		if err != nil {
			return catalog.ItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid dietary tag")
		}
		tags = append(tags, tag)
	}

	return catalog.ItemInput{
		Name:        p.Name,
		Price:       price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		DietaryTags: tags,
		LineSide:    side,
		Origin:      p.Origin,
	}, nil
}

type itemResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       string   `json:"price"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	DietaryTags []string `json:"dietary_tags"`
	LineSide    string   `json:"line_side"`
	Origin      *string  `json:"origin,omitempty"`
	SortOrder   int      `json:"sort_order"`
}

func newItemResponse(item *models.FoodItem) itemResponse {
	resp := itemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Price:       item.Price.StringFixed(2),
		Description: item.Description,
		ImageURL:    item.ImageURL,
		DietaryTags: []string(item.DietaryTags),
		LineSide:    item.LineSide.String(),
		Origin:      item.Origin,
		SortOrder:   item.SortOrder,
	}
	if resp.DietaryTags == nil {
		resp.DietaryTags = []string{}
	}
	return resp
}

func newItemListResponse(items []models.FoodItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for i := range items {
		out = append(out, newItemResponse(&items[i]))
	}
	return out
}

// AdminItemsList returns the whole catalog for the dashboard.
func AdminItemsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newItemListResponse(items))
	}
}

// AdminItemCreate adds a new item at the end of its serving line.
func AdminItemCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload itemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newItemResponse(item))
	}
}

// AdminItemUpdate replaces the editable fields of an item.
func AdminItemUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		var payload itemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newItemResponse(item))
	}
}

// AdminItemDelete removes an item from the catalog.
func AdminItemDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type reorderRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

// AdminItemReorder moves an item one position within its serving line and
// returns the line in its new order.
func AdminItemReorder(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "itemID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id"))
			return
		}

		var payload reorderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line, err := svc.Reorder(r.Context(), id, catalog.ReorderDirection(payload.Direction))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newItemListResponse(line))
	}
}
