package services

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/SauravKesari/billify/internal/storage"
)

func setupStore(t *testing.T) *storage.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	s, err := storage.New(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestRegisterSeedsAndLogsIn(t *testing.T) {
	store := setupStore(t)
	svc := NewIdentityService(store)

	user, err := svc.Register("a@b.com", "secret", "Acme")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" || user.Email != "a@b.com" || user.ShopName != "Acme" {
		t.Fatalf("unexpected user: %#v", user)
	}
	if user.PasswordHash != "" {
		t.Fatal("returned user must not carry the credential")
	}

	// Registration establishes the session.
	current, err := svc.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current == nil || current.ID != user.ID {
		t.Fatalf("expected active session for %s, got %#v", user.ID, current)
	}
	if current.PasswordHash != "" {
		t.Fatal("session record must not carry the credential")
	}

	// The new scope is seeded with starter data.
	products, err := store.Products(user.ID)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	customers, err := store.Customers(user.ID)
	if err != nil {
		t.Fatalf("customers: %v", err)
	}
	if len(products) != 3 || len(customers) != 2 {
		t.Fatalf("expected 3 seeded products and 2 customers, got %d/%d", len(products), len(customers))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := setupStore(t)
	svc := NewIdentityService(store)

	if _, err := svc.Register("a@b.com", "secret", "Acme"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register("a@b.com", "other", "Other Shop"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	users, err := store.Users()
	if err != nil {
		t.Fatalf("users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("duplicate register must not create a second record, got %d", len(users))
	}
	// Case differs, exact match does not: a second account is allowed.
	if _, err := svc.Register("A@b.com", "secret", "Acme2"); err != nil {
		t.Fatalf("exact-match only: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	store := setupStore(t)
	svc := NewIdentityService(store)

	if _, err := svc.Register("a@b.com", "secret", "Acme"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Login("a@b.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if current, _ := svc.Current(); current != nil {
		t.Fatalf("failed login must not establish a session: %#v", current)
	}
	if _, err := svc.Login("nobody@b.com", "secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must report the same error, got %v", err)
	}
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	store := setupStore(t)
	svc := NewIdentityService(store)

	registered, err := svc.Register("a@b.com", "secret", "Acme")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if current, _ := svc.Current(); current != nil {
		t.Fatalf("session should be cleared: %#v", current)
	}
	user, err := svc.Login("a@b.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("login returned a different user: %s vs %s", user.ID, registered.ID)
	}
	// A second service over the same store restores the session, like a
	// process restart would.
	restored := NewIdentityService(store)
	current, err := restored.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current == nil || current.ID != registered.ID {
		t.Fatalf("expected restored session, got %#v", current)
	}
}
