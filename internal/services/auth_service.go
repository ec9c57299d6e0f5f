package services

import (
	"errors"

	"autoguide/internal/domain"
	"autoguide/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds      = errors.New("invalid username or password")
	ErrUsernameTaken = errors.New("username already taken")
)

// Capabilities granted to the STAFF role. Regular users hold none of these.
var staffPerms = map[string]bool{
	"car.add":    true,
	"car.change": true,
	"car.delete": true,
}

// Can reports whether the user holds the named capability.
func Can(u *domain.User, perm string) bool {
	if u == nil {
		return false
	}
	return u.Role == "STAFF" && staffPerms[perm]
}

type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, username, password string) (*domain.User, error) {
	u, err := s.Users.ByUsername(username)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// Register creates a USER account and binds the session, so registration
// doubles as login.
func (s *AuthService) Register(sid, username, password string) (*domain.User, error) {
	if existing, _ := s.Users.ByUsername(username); existing != nil {
		return nil, ErrUsernameTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := &domain.User{ID: uuid.NewString(), Username: username, Hash: string(h), Role: "USER"}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
