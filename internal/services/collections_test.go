package services

import (
	"errors"
	"testing"

	"github.com/SauravKesari/billify/internal/models"
)

func TestProductAddAppliesDefaultsAndPrepends(t *testing.T) {
	store := setupStore(t)
	svc := NewProductService(store)

	first, err := svc.Add("u1", models.Product{Name: "Hosting", Price: 20})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if first.ID == "" || first.Unit != "pcs" || first.Category != "General" {
		t.Fatalf("defaults not applied: %#v", first)
	}
	second, err := svc.Add("u1", models.Product{Name: "Support", Price: 50, Unit: "hrs"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	products, err := svc.List("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 2 || products[0].ID != second.ID {
		t.Fatalf("newest record must list first: %#v", products)
	}
}

func TestProductUpdateAndDelete(t *testing.T) {
	store := setupStore(t)
	svc := NewProductService(store)

	p, err := svc.Add("u1", models.Product{Name: "Hosting", Price: 20})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	p.Price = 25
	if err := svc.Update("u1", p); err != nil {
		t.Fatalf("update: %v", err)
	}
	products, _ := svc.List("u1")
	if products[0].Price != 25 {
		t.Fatalf("update not persisted: %#v", products[0])
	}
	if err := svc.Update("u1", models.Product{ID: "ghost", Name: "X"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete("u1", p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	products, _ = svc.List("u1")
	if len(products) != 0 {
		t.Fatalf("delete not persisted: %#v", products)
	}
	// Deleting an absent id is not an error.
	if err := svc.Delete("u1", "ghost"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}

func TestCustomerDuplicateEmailsAllowed(t *testing.T) {
	store := setupStore(t)
	svc := NewCustomerService(store)

	if _, err := svc.Add("u1", models.Customer{Name: "A", Email: "same@x.com"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add("u1", models.Customer{Name: "B", Email: "same@x.com"}); err != nil {
		t.Fatalf("duplicate email must be permitted: %v", err)
	}
	customers, err := svc.List("u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(customers))
	}
}

func TestCustomerEditDoesNotRewriteInvoiceSnapshots(t *testing.T) {
	store := setupStore(t)
	customers := NewCustomerService(store)
	invoices := NewInvoiceService(store)

	c, err := customers.Add("u1", models.Customer{Name: "Jane Doe", Email: "jane@example.com", Address: "456 Resident St"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	inv := models.Invoice{
		ID: "inv1", InvoiceNumber: "INV-1000", CustomerID: c.ID,
		CustomerName: c.Name, CustomerAddress: c.Address,
		Items:  []models.InvoiceItem{{ID: "i1", ProductID: "p1", ProductName: "X", Quantity: 1, Price: 10, Total: 10}},
		Status: models.StatusPending, Subtotal: 10, Total: 10,
	}
	if err := invoices.Put("u1", inv); err != nil {
		t.Fatalf("put: %v", err)
	}
	c.Name = "Jane Smith"
	c.Address = "1 Elsewhere"
	if err := customers.Update("u1", c); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := invoices.Get("u1", "inv1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CustomerName != "Jane Doe" || got.CustomerAddress != "456 Resident St" {
		t.Fatalf("snapshot rewritten: %#v", got)
	}
}

func TestProductDeleteKeepsInvoiceItemSnapshots(t *testing.T) {
	store := setupStore(t)
	products := NewProductService(store)
	invoices := NewInvoiceService(store)

	p, err := products.Add("u1", models.Product{Name: "Logo Design", Price: 150})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	inv := models.Invoice{
		ID: "inv1", InvoiceNumber: "INV-1001", CustomerID: "c1", CustomerName: "Acme",
		Items: []models.InvoiceItem{{
			ID: "i1", ProductID: p.ID, ProductName: p.Name, Unit: p.Unit, Quantity: 2, Price: p.Price, Total: 300,
		}},
		Status: models.StatusPending, Subtotal: 300, Total: 300,
	}
	if err := invoices.Put("u1", inv); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := products.Delete("u1", p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := invoices.Get("u1", "inv1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	it := got.Items[0]
	if it.ProductName != "Logo Design" || it.Price != 150 || it.Unit != "pcs" || it.Total != 300 {
		t.Fatalf("item snapshot altered by product delete: %#v", it)
	}
}
