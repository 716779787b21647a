package services

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/saaltamirano2-glitch/NexoShop/internal/domain"
	"github.com/saaltamirano2-glitch/NexoShop/internal/repos"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
)

type AuthService struct {
	Users *repos.UserRepo
	Carts *repos.CartRepo
}

// Login binds the session to the user and merges any anonymous cart carried
// under the same sid. Returns whether a cart merge moved items.
func (s *AuthService) Login(sid, email, password string) (*domain.User, bool, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, false, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, false, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, false, err
	}
	merged := false
	if s.Carts != nil {
		merged, err = s.Carts.MergeForLogin(u.ID, sid)
		if err != nil {
			return nil, false, err
		}
	}
	return u, merged, nil
}

func (s *AuthService) Register(sid, email, name, password string) (*domain.User, error) {
	if existing, _ := s.Users.ByEmail(email); existing != nil {
		return nil, ErrEmailTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.User{ID: uuid.NewString(), Email: email, Name: name, Hash: string(h), Role: "USER"}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	if s.Carts != nil {
		if _, err := s.Carts.MergeForLogin(u.ID, sid); err != nil {
			return nil, err
		}
	}
	return &u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
