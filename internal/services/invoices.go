package services

import (
	"sort"

	"github.com/SauravKesari/billify/internal/models"
	"github.com/SauravKesari/billify/internal/storage"
)

// InvoiceService manages the invoice collection.
type InvoiceService struct {
	store *storage.Store
}

func NewInvoiceService(store *storage.Store) *InvoiceService {
	return &InvoiceService{store: store}
}

// List returns the invoices for a scope in stored order.
func (s *InvoiceService) List(scope string) ([]models.Invoice, error) {
	return s.store.Invoices(scope)
}

// ListByDate returns the invoices newest first.
func (s *InvoiceService) ListByDate(scope string) ([]models.Invoice, error) {
	invoices, err := s.store.Invoices(scope)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].Date.After(invoices[j].Date)
	})
	return invoices, nil
}

// Get looks an invoice up by id.
func (s *InvoiceService) Get(scope, id string) (models.Invoice, error) {
	invoices, err := s.store.Invoices(scope)
	if err != nil {
		return models.Invoice{}, err
	}
	for _, inv := range invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return models.Invoice{}, ErrNotFound
}

// Put stores a composed invoice: an existing id is replaced in place, a new
// one is prepended.
func (s *InvoiceService) Put(scope string, inv models.Invoice) error {
	invoices, err := s.store.Invoices(scope)
	if err != nil {
		return err
	}
	for i := range invoices {
		if invoices[i].ID == inv.ID {
			invoices[i] = inv
			return s.store.SaveInvoices(scope, invoices)
		}
	}
	invoices = append([]models.Invoice{inv}, invoices...)
	return s.store.SaveInvoices(scope, invoices)
}

// Delete removes an invoice by id.
func (s *InvoiceService) Delete(scope, id string) error {
	invoices, err := s.store.Invoices(scope)
	if err != nil {
		return err
	}
	kept := invoices[:0]
	for _, inv := range invoices {
		if inv.ID != id {
			kept = append(kept, inv)
		}
	}
	return s.store.SaveInvoices(scope, kept)
}

// ToggleStatus flips an invoice between paid and pending and persists the
// result. Draft invoices are untouched by the toggle.
func (s *InvoiceService) ToggleStatus(scope, id string) (models.Invoice, error) {
	invoices, err := s.store.Invoices(scope)
	if err != nil {
		return models.Invoice{}, err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			invoices[i].Status = invoices[i].Status.Toggled()
			if err := s.store.SaveInvoices(scope, invoices); err != nil {
				return models.Invoice{}, err
			}
			return invoices[i], nil
		}
	}
	return models.Invoice{}, ErrNotFound
}

// DashboardStats summarizes a scope's invoices for the overview panel.
type DashboardStats struct {
	TotalRevenue float64 `json:"totalRevenue"`
	InvoiceCount int     `json:"invoiceCount"`
	PaidCount    int     `json:"paidCount"`
}

// Stats computes the dashboard aggregates.
func (s *InvoiceService) Stats(scope string) (DashboardStats, error) {
	invoices, err := s.store.Invoices(scope)
	if err != nil {
		return DashboardStats{}, err
	}
	var stats DashboardStats
	for _, inv := range invoices {
		stats.TotalRevenue += inv.Total
		stats.InvoiceCount++
		if inv.Status == models.StatusPaid {
			stats.PaidCount++
		}
	}
	return stats, nil
}
