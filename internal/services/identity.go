package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SauravKesari/billify/internal/models"
	"github.com/SauravKesari/billify/internal/storage"
)

var (
	// ErrEmailTaken is returned by Register for an exact-match duplicate email.
	ErrEmailTaken = errors.New("email already exists")
	// ErrInvalidCredentials is deliberately generic: it never says whether
	// the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IdentityService manages the user table and the single active session.
type IdentityService struct {
	store *storage.Store
}

func NewIdentityService(store *storage.Store) *IdentityService {
	return &IdentityService{store: store}
}

// Register creates an account and logs it in. Email matching is exact
// string equality, no case folding. The new scope is seeded with starter
// data so a fresh shop is not empty.
func (s *IdentityService) Register(email, password, shopName string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" || strings.TrimSpace(shopName) == "" {
		return nil, errors.New("email, password and shop name are required")
	}
	users, err := s.store.Users()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, ErrEmailTaken
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		ID:           "user_" + uuid.NewString(),
		Email:        email,
		ShopName:     strings.TrimSpace(shopName),
		PasswordHash: string(hash),
	}
	users = append(users, user)
	if err := s.store.SaveUsers(users); err != nil {
		return nil, err
	}
	return s.establish(user)
}

// Login scans the user table for an exact email match and verifies the
// password against the stored hash.
func (s *IdentityService) Login(email, password string) (*models.User, error) {
	users, err := s.store.Users()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		return s.establish(u)
	}
	return nil, ErrInvalidCredentials
}

// establish persists the sanitized session record and seeds the user's
// scope on first sight.
func (s *IdentityService) establish(u models.User) (*models.User, error) {
	session := u.Sanitized()
	if err := s.store.SaveSession(session); err != nil {
		return nil, err
	}
	if err := s.store.Seed(u.ID); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout clears the active session. Logging out while logged out is a no-op.
func (s *IdentityService) Logout() error {
	return s.store.ClearSession()
}

// Current returns the persisted session user, or nil when logged out.
// Called at process start to restore a prior login.
func (s *IdentityService) Current() (*models.User, error) {
	return s.store.Session()
}
