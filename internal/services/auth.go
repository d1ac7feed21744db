package services

import (
	"context"

	"github.com/diewo77/presupuestos-app/internal/logger"
	"github.com/diewo77/presupuestos-app/internal/repos"
	"github.com/diewo77/presupuestos-app/internal/session"
)

// AuthService is the session authenticator. It never reaches for ambient
// state: the caller hands in the session to read or mutate.
type AuthService struct {
	users repos.UserRepo
	log   *logger.Logger
}

func NewAuthService(users repos.UserRepo, baseLog *logger.Logger) *AuthService {
	return &AuthService{users: users, log: baseLog.With("service", "AuthService")}
}

// Login matches credentials against a user record. On success the session
// becomes authenticated with the user's identity and role; on failure any
// prior session state is left untouched.
func (s *AuthService) Login(ctx context.Context, sess *session.Session, username, password string) (bool, error) {
	user, err := s.users.GetByCredentials(ctx, username, password)
	if err != nil {
		return false, err
	}
	if user == nil {
		s.log.Info("login rejected", "username", username)
		return false, nil
	}
	sess.Authenticated = true
	sess.Username = user.Username
	sess.DisplayName = user.DisplayName
	sess.Role = user.Role
	s.log.Info("login accepted", "username", username, "role", user.Role)
	return true, nil
}

// Logout clears all session state unconditionally.
func (s *AuthService) Logout(sess *session.Session) {
	sess.Clear()
}

func (s *AuthService) IsAuthenticated(sess *session.Session) bool {
	return sess != nil && sess.Authenticated
}

// HasAccessLevel compares the session's role with the required one by exact
// string equality. There is no hierarchy: an administrator does not satisfy
// a client check, or vice versa.
func (s *AuthService) HasAccessLevel(sess *session.Session, role string) bool {
	return sess != nil && sess.Role == role
}
