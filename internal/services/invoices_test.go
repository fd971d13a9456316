package services

import (
	"errors"
	"testing"
	"time"

	"github.com/SauravKesari/billify/internal/models"
)

func seedInvoices(t *testing.T, svc *InvoiceService) (day1, day3 models.Invoice) {
	t.Helper()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	day1 = models.Invoice{
		ID: "inv-day1", InvoiceNumber: "INV-1001", Date: base,
		CustomerID: "c1", CustomerName: "Acme", Status: models.StatusPending,
		Items:    []models.InvoiceItem{{ID: "i1", ProductID: "p1", ProductName: "X", Quantity: 1, Price: 100, Total: 100}},
		Subtotal: 100, Total: 100,
	}
	day3 = models.Invoice{
		ID: "inv-day3", InvoiceNumber: "INV-1002", Date: base.AddDate(0, 0, 2),
		CustomerID: "c2", CustomerName: "Jane", Status: models.StatusPaid,
		Items:    []models.InvoiceItem{{ID: "i2", ProductID: "p1", ProductName: "X", Quantity: 2, Price: 100, Total: 200}},
		Subtotal: 200, Total: 200,
	}
	if err := svc.Put("u1", day1); err != nil {
		t.Fatalf("put day1: %v", err)
	}
	if err := svc.Put("u1", day3); err != nil {
		t.Fatalf("put day3: %v", err)
	}
	return day1, day3
}

func TestListByDateNewestFirst(t *testing.T) {
	svc := NewInvoiceService(setupStore(t))
	_, day3 := seedInvoices(t, svc)

	invoices, err := svc.ListByDate("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(invoices) != 2 || invoices[0].ID != day3.ID {
		t.Fatalf("expected day 3 first: %#v", invoices)
	}
}

func TestToggleStatus(t *testing.T) {
	svc := NewInvoiceService(setupStore(t))
	day1, _ := seedInvoices(t, svc)

	inv, err := svc.ToggleStatus("u1", day1.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if inv.Status != models.StatusPaid {
		t.Fatalf("pending should toggle to paid, got %s", inv.Status)
	}
	inv, err = svc.ToggleStatus("u1", day1.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if inv.Status != models.StatusPending {
		t.Fatalf("paid should toggle back to pending, got %s", inv.Status)
	}
	// The toggle persists.
	got, err := svc.Get("u1", day1.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Fatalf("status not persisted: %s", got.Status)
	}
	if _, err := svc.ToggleStatus("u1", "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutReplacesById(t *testing.T) {
	svc := NewInvoiceService(setupStore(t))
	day1, _ := seedInvoices(t, svc)

	day1.Total = 175
	day1.Subtotal = 175
	if err := svc.Put("u1", day1); err != nil {
		t.Fatalf("put: %v", err)
	}
	invoices, err := svc.List("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(invoices) != 2 {
		t.Fatalf("replace must not duplicate, got %d invoices", len(invoices))
	}
	got, _ := svc.Get("u1", day1.ID)
	if got.Total != 175 {
		t.Fatalf("replace not persisted: %#v", got)
	}
}

func TestDashboardStats(t *testing.T) {
	svc := NewInvoiceService(setupStore(t))
	seedInvoices(t, svc)

	stats, err := svc.Stats("u1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalRevenue != 300 || stats.InvoiceCount != 2 || stats.PaidCount != 1 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
}

func TestStatusParseRejectsUnknown(t *testing.T) {
	if _, err := models.ParseStatus("overdue"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	for _, s := range []string{"paid", "pending", "draft"} {
		if _, err := models.ParseStatus(s); err != nil {
			t.Fatalf("%s should parse: %v", s, err)
		}
	}
	// Draft is reachable but no flow toggles it anywhere.
	if models.StatusDraft.Toggled() != models.StatusDraft {
		t.Fatal("draft must not toggle")
	}
}
