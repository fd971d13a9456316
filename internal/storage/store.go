// Package storage is the persistence gateway: every collection is stored
// whole, as one JSON array per (scope, name) row. There is no partial
// update and no query language; writes are last-write-wins replacements.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/SauravKesari/billify/internal/models"
)

// PublicScope is the sentinel used when no user is logged in.
const PublicScope = "public"

// globalScope holds the user table and the active session, which are not
// partitioned per user.
const globalScope = "_global"

// Collection names as persisted.
const (
	colProducts  = "products"
	colCustomers = "customers"
	colInvoices  = "invoices"
	colUnits     = "units"
	colUsers     = "users"
	colSession   = "session"
)

// DefaultUnits is returned when a scope has never saved its unit list.
var DefaultUnits = []string{"pcs", "hrs", "kg", "lb", "box", "service"}

type collectionRow struct {
	ID        uint   `gorm:"primaryKey"`
	Scope     string `gorm:"size:64;not null;uniqueIndex:idx_scope_name,priority:1"`
	Name      string `gorm:"size:32;not null;uniqueIndex:idx_scope_name,priority:2"`
	Data      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (collectionRow) TableName() string { return "collections" }

// Store maps logical collections onto the collections table.
type Store struct {
	db *gorm.DB
}

// Open connects using the DSN and prepares the schema. A postgres:// DSN
// selects the postgres driver, anything else is treated as a sqlite path.
func Open(dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("storage: empty DSN")
	}
	var dial gorm.Dialector
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		dial = postgres.Open(dsn)
	} else {
		dial = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	return New(db)
}

// New wraps an existing gorm connection (tests pass an in-memory sqlite DB).
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&collectionRow{}); err != nil {
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// get returns the raw JSON for a collection; ok is false when it has never
// been saved for this scope.
func (s *Store) get(scope, name string) ([]byte, bool, error) {
	var row collectionRow
	err := s.db.Where("scope = ? AND name = ?", scope, name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage: read %s/%s: %w", scope, name, err)
	}
	return []byte(row.Data), true, nil
}

// put replaces a collection wholesale.
func (s *Store) put(scope, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s/%s: %w", scope, name, err)
	}
	row := collectionRow{Scope: scope, Name: name, Data: string(data)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("storage: write %s/%s: %w", scope, name, err)
	}
	return nil
}

// normalizeIDs rewrites every record's id to its string form. Older stored
// data may carry numeric ids; comparing those against string ids silently
// breaks updates and deletes, so the guard runs on every read.
func normalizeIDs(data []byte) ([]byte, error) {
	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, rec := range raw {
		v, ok := rec["id"]
		if !ok {
			continue
		}
		switch id := v.(type) {
		case string:
			// already canonical
		case float64:
			rec["id"] = strconv.FormatFloat(id, 'f', -1, 64)
		default:
			rec["id"] = fmt.Sprint(id)
		}
	}
	return json.Marshal(raw)
}

// readRecords decodes a collection of records, normalizing ids first.
// A missing collection yields an empty slice; corrupt data is a hard error
// for this collection, never silently truncated.
func readRecords[T any](s *Store, scope, name string) ([]T, error) {
	data, ok, err := s.get(scope, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	norm, err := normalizeIDs(data)
	if err != nil {
		return nil, fmt.Errorf("storage: corrupt %s for scope %s: %w", name, scope, err)
	}
	var out []T
	if err := json.Unmarshal(norm, &out); err != nil {
		return nil, fmt.Errorf("storage: corrupt %s for scope %s: %w", name, scope, err)
	}
	return out, nil
}

// Products returns the product catalog for a scope.
func (s *Store) Products(scope string) ([]models.Product, error) {
	return readRecords[models.Product](s, scope, colProducts)
}

// SaveProducts replaces the product catalog for a scope.
func (s *Store) SaveProducts(scope string, products []models.Product) error {
	return s.put(scope, colProducts, products)
}

// Customers returns the customer list for a scope.
func (s *Store) Customers(scope string) ([]models.Customer, error) {
	return readRecords[models.Customer](s, scope, colCustomers)
}

// SaveCustomers replaces the customer list for a scope.
func (s *Store) SaveCustomers(scope string, customers []models.Customer) error {
	return s.put(scope, colCustomers, customers)
}

// Invoices returns the invoice list for a scope.
func (s *Store) Invoices(scope string) ([]models.Invoice, error) {
	return readRecords[models.Invoice](s, scope, colInvoices)
}

// SaveInvoices replaces the invoice list for a scope.
func (s *Store) SaveInvoices(scope string, invoices []models.Invoice) error {
	return s.put(scope, colInvoices, invoices)
}

// Units returns the unit labels for a scope, falling back to DefaultUnits
// when the scope never saved any.
func (s *Store) Units(scope string) ([]string, error) {
	data, ok, err := s.get(scope, colUnits)
	if err != nil {
		return nil, err
	}
	if !ok {
		out := make([]string, len(DefaultUnits))
		copy(out, DefaultUnits)
		return out, nil
	}
	var units []string
	if err := json.Unmarshal(data, &units); err != nil {
		return nil, fmt.Errorf("storage: corrupt %s for scope %s: %w", colUnits, scope, err)
	}
	return units, nil
}

// SaveUnits replaces the unit labels for a scope.
func (s *Store) SaveUnits(scope string, units []string) error {
	return s.put(scope, colUnits, units)
}

// Users returns the global user table.
func (s *Store) Users() ([]models.User, error) {
	return readRecords[models.User](s, globalScope, colUsers)
}

// SaveUsers replaces the global user table.
func (s *Store) SaveUsers(users []models.User) error {
	return s.put(globalScope, colUsers, users)
}

// Session returns the active session's user, or nil when logged out.
func (s *Store) Session() (*models.User, error) {
	data, ok, err := s.get(globalScope, colSession)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("storage: corrupt session: %w", err)
	}
	if u.ID == "" {
		return nil, nil
	}
	return &u, nil
}

// SaveSession persists the active session record. Exactly one session exists
// per store; saving replaces any previous one.
func (s *Store) SaveSession(u models.User) error {
	return s.put(globalScope, colSession, u)
}

// ClearSession logs the store out.
func (s *Store) ClearSession() error {
	err := s.db.Where("scope = ? AND name = ?", globalScope, colSession).
		Delete(&collectionRow{}).Error
	if err != nil {
		return fmt.Errorf("storage: clear session: %w", err)
	}
	return nil
}
