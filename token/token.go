// Package token issues and verifies the signed session credential. Tokens
// are HS256 JWTs signed with a single process-wide secret; verification is
// stateless - validity is exactly signature + expiry.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	apperrors "github.com/taskhive/taskhive-server/internal/errors"
)

// Claims carries the registered claims plus the subject's user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Manager creates and verifies session tokens. The secret and expiry are
// injected at construction, never read from the environment here.
type Manager struct {
	secret  []byte
	expiry  time.Duration
	nowTime func() time.Time
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// New creates a token Manager. An empty secret is a configuration fault and
// must abort startup, so it is rejected here rather than at issue time.
func New(secret string, expiry time.Duration, options ...ManagerOption) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("[token.New] signing secret is required")
	}
	m := &Manager{
		secret:  []byte(secret),
		expiry:  expiry,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Issue creates a signed token for the given subject, expiring after the
// configured horizon.
func (m *Manager) Issue(userID string) (string, error) {
	now := m.nowTime()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
		UserID: userID,
	})

	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", errors.Wrap(err, "[Manager.Issue] SignedString")
	}
	return signed, nil
}

// Verify checks signature integrity and expiry and returns the subject's
// user ID. All failures wrap ErrInvalidCredential; callers surface a single
// generic unauthorized outcome, never the specific reason.
func (m *Manager) Verify(rawToken string) (string, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(rawToken, claims,
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.nowTime),
	)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrInvalidCredential, "parsing token: %v", err)
	}
	if !tok.Valid || claims.UserID == "" {
		return "", apperrors.ErrInvalidCredential
	}
	return claims.UserID, nil
}
