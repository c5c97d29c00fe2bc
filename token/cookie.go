package token

import (
	"net/http"

	apperrors "github.com/taskhive/taskhive-server/internal/errors"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

// cookieMaxAge matches the token expiry horizon (1 day).
const cookieMaxAge = 24 * 60 * 60

// Attach writes the signed token into a response cookie. HttpOnly keeps it
// away from page scripts, SameSite=Strict withholds it on cross-origin
// navigations, and Secure is set outside local development.
func Attach(w http.ResponseWriter, signedToken string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signedToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   cookieMaxAge,
	})
}

// Extract reads the session token from the request cookie. A missing cookie
// is a normal outcome for unauthenticated clients, reported as
// ErrMissingCredential rather than treated as exceptional.
func Extract(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", apperrors.ErrMissingCredential
	}
	return cookie.Value, nil
}

// Clear expires the session cookie on the client. With stateless
// verification there is nothing server-side to revoke.
func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
}
