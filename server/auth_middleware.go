package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/taskhive/taskhive-server/auth"
	apperrors "github.com/taskhive/taskhive-server/internal/errors"
	"github.com/taskhive/taskhive-server/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyAuth stores the per-request authorization context
const ContextKeyAuth ContextKey = "auth_context"

const (
	msgNotAuthorized = "Not authorized. Try login again."
	msgNotAdmin      = "Not authorized as admin. Try login as admin."
)

// AuthContextFrom returns the authorization context installed by
// RequireAuthenticated, if any.
func AuthContextFrom(ctx context.Context) (auth.Context, bool) {
	authCtx, ok := ctx.Value(ContextKeyAuth).(auth.Context)
	return authCtx, ok
}

// RequireAuthenticated is middleware that admits a request only when it
// carries a valid session token resolving to a live identity. Every failure
// mode - missing cookie, bad signature, expiry, unknown subject - collapses
// to the same 401 body so clients learn nothing about which check failed.
func (s *Server) RequireAuthenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawToken, err := token.Extract(r)
		if err != nil {
			s.writeStatus(w, http.StatusUnauthorized, false, msgNotAuthorized)
			return
		}

		authCtx, err := s.auth.Authenticate(rawToken)
		if err != nil {
			if !apperrors.Is(err, apperrors.ErrInvalidCredential) && !apperrors.Is(err, apperrors.ErrUnknownSubject) {
				log.Error().Err(err).Msg("unexpected error authenticating request")
			}
			s.writeStatus(w, http.StatusUnauthorized, false, msgNotAuthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyAuth, authCtx)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdmin is middleware that admits only administrators. It performs no
// verification of its own: it trusts the authorization context installed by
// RequireAuthenticated and must always be chained after it. A chain missing
// that stage fails closed here.
func (s *Server) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authCtx, ok := AuthContextFrom(r.Context())
		if !ok || !authCtx.IsAdmin {
			s.writeStatus(w, http.StatusUnauthorized, false, msgNotAdmin)
			return
		}
		next(w, r)
	}
}
