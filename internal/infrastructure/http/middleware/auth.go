package middleware

import (
	"net/http"

	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/todoapi/internal/application/guard"
)

// AuthValidator resolves the bearer token to a user id (see UserFromContext).
type AuthValidator struct {
	guard *guard.Guard
	log   zerolog.Logger
}

func NewAuthValidator(g *guard.Guard, log zerolog.Logger) *AuthValidator {
	return &AuthValidator{guard: g, log: log}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.guard.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			m.log.Warn().
				Err(err).
				Str("request_id", chimid.GetReqID(r.Context())).
				Str("path", r.URL.Path).
				Msg("auth_audit")
			RecordAuthAttempt("authenticate", false)
			writeErr(w, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), userID)))
	})
}
