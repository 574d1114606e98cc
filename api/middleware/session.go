package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/abaleemmo/food-festival-express-checkout/api/responses"
	"github.com/abaleemmo/food-festival-express-checkout/internal/kiosksession"
	pkgerrors "github.com/abaleemmo/food-festival-express-checkout/pkg/errors"
	"github.com/abaleemmo/food-festival-express-checkout/pkg/logger"
)

// SessionHeader carries the kiosk session id on every in-session request.
const SessionHeader = "X-Kiosk-Session"

type sessionCtxKey struct{}

// SessionRegistry resolves a live session by id.
type SessionRegistry interface {
	Get(id uuid.UUID) (*kiosksession.Session, error)
}

// KioskSession loads the session named by the request header and rejects
// requests without a live one. Expired and unknown sessions both come back
// unauthorized so the kiosk restarts its flow.
func KioskSession(registry SessionRegistry, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(SessionHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "session header required"))
				return
			}

			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session id"))
				return
			}

			session, err := registry.Get(id)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithSession(r.Context(), session)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, session.ID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithSession returns a context carrying the given session.
func WithSession(ctx context.Context, session *kiosksession.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, session)
}

// SessionFromContext returns the session loaded by KioskSession, or nil.
func SessionFromContext(ctx context.Context) *kiosksession.Session {
	session, _ := ctx.Value(sessionCtxKey{}).(*kiosksession.Session)
	return session
}

// SessionIDFromContext returns the loaded session id, or the empty string.
func SessionIDFromContext(ctx context.Context) string {
	if session := SessionFromContext(ctx); session != nil {
		return session.ID.String()
	}
	return ""
}
