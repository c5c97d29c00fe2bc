package token_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/taskhive/taskhive-server/internal/errors"
	"github.com/taskhive/taskhive-server/token"
)

const (
	testSecret = "test-signing-secret"
	testUserID = "user-1"
)

func TestNewRequiresSecret(t *testing.T) {
	_, err := token.New("", 24*time.Hour)
	require.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	m, err := token.New(testSecret, 24*time.Hour)
	require.NoError(t, err)

	signed, err := m.Issue(testUserID)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := m.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, testUserID, userID)
}

func TestVerifyRejectsDifferentSecret(t *testing.T) {
	issuer, err := token.New(testSecret, 24*time.Hour)
	require.NoError(t, err)
	verifier, err := token.New("another-secret", 24*time.Hour)
	require.NoError(t, err)

	signed, err := issuer.Issue(testUserID)
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	require.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	current := time.Now()
	m, err := token.New(testSecret, time.Hour, token.WithNowTime(func() time.Time { return current }))
	require.NoError(t, err)

	signed, err := m.Issue(testUserID)
	require.NoError(t, err)

	// Still valid just before expiry
	current = current.Add(59 * time.Minute)
	_, err = m.Verify(signed)
	require.NoError(t, err)

	// Invalid at and after expiry
	current = current.Add(2 * time.Minute)
	_, err = m.Verify(signed)
	require.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	m, err := token.New(testSecret, 24*time.Hour)
	require.NoError(t, err)

	signed, err := m.Issue(testUserID)
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)

	// Flip a single byte of the signature segment
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.Verify(tampered)
	require.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m, err := token.New(testSecret, 24*time.Hour)
	require.NoError(t, err)

	_, err = m.Verify("not-a-token")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredential)
}

func TestAttachSetsProtectedCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	token.Attach(rec, "signed-token-value", true)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	require.Equal(t, token.CookieName, cookie.Name)
	require.Equal(t, "signed-token-value", cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	require.Equal(t, 86400, cookie.MaxAge)
}

func TestAttachSecureFlagOffInDevelopment(t *testing.T) {
	rec := httptest.NewRecorder()
	token.Attach(rec, "signed-token-value", false)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.False(t, cookies[0].Secure)
}

func TestExtract(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/task", nil)
	_, err := token.Extract(r)
	require.ErrorIs(t, err, apperrors.ErrMissingCredential)

	r.AddCookie(&http.Cookie{Name: token.CookieName, Value: "raw-token"})
	raw, err := token.Extract(r)
	require.NoError(t, err)
	require.Equal(t, "raw-token", raw)
}

func TestClearExpiresCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	token.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, token.CookieName, cookies[0].Name)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}
