package controllers

import (
	"net/http"

	"github.com/abaleemmo/food-festival-express-checkout/api/middleware"
	"github.com/abaleemmo/food-festival-express-checkout/api/responses"
	"github.com/abaleemmo/food-festival-express-checkout/api/validators"
	"github.com/abaleemmo/food-festival-express-checkout/internal/kiosksession"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/enums"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/logger"
)

type startSessionRequest struct {
	LineSide string `json:"line_side" validate:"required,oneof=Left Right"`
}

type sessionResponse struct {
	SessionID     string   `json:"session_id"`
	LineSide      string   `json:"line_side"`
	Restrictions  []string `json:"restrictions"`
	CheckoutState string   `json:"checkout_state"`
}

func newSessionResponse(session *kiosksession.Session) sessionResponse {
	resp := sessionResponse{
		SessionID: session.ID.String(),
		LineSide:  session.Side().String(),
	}
	session.Do(func(state *kiosksession.State) {
		resp.CheckoutState = state.CheckoutState().String()
		for _, tag := range state.Restrictions().Active() {
			resp.Restrictions = append(resp.Restrictions, tag.String())
		}
	})
	if resp.Restrictions == nil {
		resp.Restrictions = []string{}
	}
	return resp
}

// SessionCreator registers new kiosk sessions.
type SessionCreator interface {
	Create(side enums.LineSide) (*kiosksession.Session, error)
}

// SessionStart opens a fresh session for a kiosk. The shopper picks a
// serving line first, everything else starts empty.
func SessionStart(registry SessionCreator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload startSessionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		side, err := enums.ParseLineSide(payload.LineSide)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line side"))
			return
		}

		session, err := registry.Create(side)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newSessionResponse(session))
	}
}

// SessionShow returns the session state for the calling kiosk.
func SessionShow(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.SessionFromContext(r.Context())
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}
		responses.WriteSuccess(w, newSessionResponse(session))
	}
}

type chooseLineRequest struct {
	LineSide string `json:"line_side" validate:"required,oneof=Left Right"`
}

// SessionChooseLine switches the session to the other serving line. The
// menu pagination restarts on the new line; the cart carries over.
func SessionChooseLine(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.SessionFromContext(r.Context())
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}

		var payload chooseLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		side, err := enums.ParseLineSide(payload.LineSide)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line side"))
			return
		}

		session.Do(func(state *kiosksession.State) {
			state.SetLineSide(side)
		})

		responses.WriteSuccess(w, newSessionResponse(session))
	}
}

type toggleRestrictionRequest struct {
	Tag string `json:"tag" validate:"required"`
}

type toggleRestrictionResponse struct {
	Tag          string   `json:"tag"`
	Active       bool     `json:"active"`
	Restrictions []string `json:"restrictions"`
}

// RestrictionToggle flips one dietary restriction on the session.
func RestrictionToggle(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := middleware.SessionFromContext(r.Context())
		if session == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
			return
		}

		var payload toggleRestrictionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tag, err := enums.ParseDietaryTag(payload.Tag)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid dietary tag"))
			return
		}

		resp := toggleRestrictionResponse{Tag: tag.String(), Restrictions: []string{}}
		session.Do(func(state *kiosksession.State) {
			resp.Active = state.Restrictions().Toggle(tag)
			for _, active := range state.Restrictions().Active() {
				resp.Restrictions = append(resp.Restrictions, active.String())
			}
		})

		responses.WriteSuccess(w, resp)
	}
}
