// Package auth implements the authentication boundary: credential
// verification at login and token-to-identity resolution on every
// protected request.
package auth

import (
	"github.com/pkg/errors"

	apperrors "github.com/taskhive/taskhive-server/internal/errors"
	"github.com/taskhive/taskhive-server/token"
	"github.com/taskhive/taskhive-server/users"
)

// Context is the per-request authorization context, built once after a
// successful verification and discarded at request end. It is derived from
// the stored identity, never from client-supplied data.
type Context struct {
	UserID  string
	Email   string
	IsAdmin bool
}

// Repos holds all repository dependencies for the Service
type Repos struct {
	Users users.UserRepo // Repository for user data
}

// Service provides login, token verification and password lifecycle
// operations over the identity store.
type Service struct {
	repos      Repos
	tokens     *token.Manager
	bcryptCost int
}

// New initializes a new auth Service with required dependencies.
func New(repos Repos, tokens *token.Manager, bcryptCost int) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[auth.New] Users repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[auth.New] token manager is required")
	}
	return &Service{
		repos:      repos,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}, nil
}

// Login checks the credentials and issues a signed session token. Unknown
// email and wrong password collapse to the same error so the response does
// not reveal which part failed.
func (s *Service) Login(email, password string) (*users.User, string, error) {
	user, err := s.repos.Users.GetByEmail(email)
	if err != nil {
		return nil, "", errors.Wrap(apperrors.ErrInvalidLogin, "[Service.Login] GetByEmail")
	}

	if !user.IsActive {
		return nil, "", apperrors.ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, "", apperrors.ErrInvalidLogin
	}

	signed, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", errors.Wrap(err, "[Service.Login] tokens.Issue")
	}
	return user, signed, nil
}

// Authenticate verifies a raw session token and resolves its subject to an
// authorization context. A valid token whose subject no longer exists (or
// was deactivated) is reported as ErrUnknownSubject - callers must surface
// it identically to a forged token.
func (s *Service) Authenticate(rawToken string) (Context, error) {
	userID, err := s.tokens.Verify(rawToken)
	if err != nil {
		return Context{}, errors.Wrap(err, "[Service.Authenticate] tokens.Verify")
	}

	user, err := s.repos.Users.GetByID(userID)
	if err != nil {
		return Context{}, errors.Wrap(apperrors.ErrUnknownSubject, "[Service.Authenticate] GetByID")
	}
	if !user.IsActive {
		return Context{}, errors.Wrap(apperrors.ErrUnknownSubject, "[Service.Authenticate] user deactivated")
	}

	return Context{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}

// Register creates a new user with a freshly hashed password.
func (s *Service) Register(user *users.User, password string) error {
	if err := user.SetPassword(password, s.bcryptCost); err != nil {
		return errors.Wrap(err, "[Service.Register] SetPassword")
	}
	user.IsActive = true
	if err := s.repos.Users.Upsert(user); err != nil {
		return errors.Wrap(err, "[Service.Register] Upsert")
	}
	return nil
}

// ChangePassword re-hashes only when the password actually changes; it is
// the only write path that touches the stored hash.
func (s *Service) ChangePassword(userID, current, next string) error {
	user, err := s.repos.Users.GetByID(userID)
	if err != nil {
		return errors.Wrap(apperrors.ErrUnknownSubject, "[Service.ChangePassword] GetByID")
	}

	if !user.CheckPassword(current) {
		return apperrors.ErrInvalidLogin
	}

	if err := user.SetPassword(next, s.bcryptCost); err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] SetPassword")
	}
	if err := s.repos.Users.Upsert(user); err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] Upsert")
	}
	return nil
}

// BcryptCost exposes the configured work factor for write paths that hash
// outside the service (e.g. admin-created accounts).
func (s *Service) BcryptCost() int {
	return s.bcryptCost
}
