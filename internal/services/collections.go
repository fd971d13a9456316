package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/SauravKesari/billify/internal/models"
	"github.com/SauravKesari/billify/internal/storage"
)

// ErrNotFound is returned by updates targeting an id that no longer exists.
var ErrNotFound = errors.New("record not found")

// The collection managers mutate a scope's collection and immediately write
// the whole result back through the gateway. New records are prepended so
// the most recent entry lists first. Deletes are unconditional; any
// confirmation is the caller's concern.

// ProductService manages the product catalog.
type ProductService struct {
	store *storage.Store
}

func NewProductService(store *storage.Store) *ProductService {
	return &ProductService{store: store}
}

// List returns the catalog for a scope.
func (s *ProductService) List(scope string) ([]models.Product, error) {
	return s.store.Products(scope)
}

// Add inserts a product, assigning an id and catalog defaults when missing.
func (s *ProductService) Add(scope string, p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.ApplyDefaults()
	products, err := s.store.Products(scope)
	if err != nil {
		return models.Product{}, err
	}
	products = append([]models.Product{p}, products...)
	if err := s.store.SaveProducts(scope, products); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Update replaces the product with the same id.
func (s *ProductService) Update(scope string, p models.Product) error {
	products, err := s.store.Products(scope)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == p.ID {
			p.ApplyDefaults()
			products[i] = p
			return s.store.SaveProducts(scope, products)
		}
	}
	return ErrNotFound
}

// Delete removes a product by id. Invoice items referencing it keep their
// snapshot fields untouched.
func (s *ProductService) Delete(scope, id string) error {
	products, err := s.store.Products(scope)
	if err != nil {
		return err
	}
	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return s.store.SaveProducts(scope, kept)
}

// CustomerService manages the customer list.
type CustomerService struct {
	store *storage.Store
}

func NewCustomerService(store *storage.Store) *CustomerService {
	return &CustomerService{store: store}
}

// List returns the customers for a scope.
func (s *CustomerService) List(scope string) ([]models.Customer, error) {
	return s.store.Customers(scope)
}

// Add inserts a customer, assigning an id when missing. Duplicate emails
// are allowed.
func (s *CustomerService) Add(scope string, c models.Customer) (models.Customer, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	customers, err := s.store.Customers(scope)
	if err != nil {
		return models.Customer{}, err
	}
	customers = append([]models.Customer{c}, customers...)
	if err := s.store.SaveCustomers(scope, customers); err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

// Update replaces the customer with the same id. Saved invoices keep their
// snapshot of the old values.
func (s *CustomerService) Update(scope string, c models.Customer) error {
	customers, err := s.store.Customers(scope)
	if err != nil {
		return err
	}
	for i := range customers {
		if customers[i].ID == c.ID {
			customers[i] = c
			return s.store.SaveCustomers(scope, customers)
		}
	}
	return ErrNotFound
}

// Delete removes a customer by id.
func (s *CustomerService) Delete(scope, id string) error {
	customers, err := s.store.Customers(scope)
	if err != nil {
		return err
	}
	kept := customers[:0]
	for _, c := range customers {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return s.store.SaveCustomers(scope, kept)
}
