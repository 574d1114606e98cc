package controllers

import (
	"net/http"
	"strconv"

	"github.com/abaleemmo/food-festival-express-checkout/api/middleware"
	"github.com/abaleemmo/food-festival-express-checkout/api/responses"
	"github.com/abaleemmo/food-festival-express-checkout/internal/catalog"
	"github.com/abaleemmo/food-festival-express-checkout/internal/dietary"
	"github.com/abaleemmo/food-festival-express-checkout/internal/kiosksession"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/logger"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/pagination"
)

type menuResponse struct {
	Items       []dietary.Annotation `json:"items"`
	Page        int                  `json:"page"`
	PageCount   int                  `json:"page_count"`
	PageSize    int                  `json:"page_size"`
	HasNext     bool                 `json:"has_next"`
	HasPrevious bool                 `json:"has_previous"`
}

type menuMove int

const (
	menuStay menuMove = iota
	menuNext
	menuPrevious
)

// menuPage loads the session's serving line, annotates it against the
// active restrictions, and returns the current page window. The paginator
// lands on the last page the first time a non-empty menu is seen.
func menuPage(w http.ResponseWriter, r *http.Request, svc catalog.Service, logg *logger.Logger, move menuMove) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
		return
	}

	items, err := svc.Menu(r.Context(), session.Side())
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	page, hasPage := -1, false
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid page"))
			return
		}
		page, hasPage = n, true
	}

	var resp menuResponse
	session.Do(func(state *kiosksession.State) {
		annotated := state.Restrictions().Annotate(items)

		menu := state.Menu()
		menu.Resize(len(annotated))
		if hasPage {
			menu.SetPage(page)
		}
		switch move {
		case menuNext:
			menu.Next()
		case menuPrevious:
			menu.Previous()
		}

		resp = menuResponse{
			Items:       pagination.Slice(menu, annotated),
			Page:        menu.Current(),
			PageCount:   menu.PageCount(),
			PageSize:    menu.PageSize(),
			HasNext:     menu.HasNext(),
			HasPrevious: menu.HasPrevious(),
		}
	})
	if resp.Items == nil {
		resp.Items = []dietary.Annotation{}
	}

	responses.WriteSuccess(w, resp)
}

// MenuShow returns the current menu page for the session's serving line.
func MenuShow(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menuPage(w, r, svc, logg, menuStay)
	}
}

// MenuNext advances one page; at the last page it stays put.
func MenuNext(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menuPage(w, r, svc, logg, menuNext)
	}
}

// MenuPrevious steps back one page; at the first page it stays put.
func MenuPrevious(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menuPage(w, r, svc, logg, menuPrevious)
	}
}
