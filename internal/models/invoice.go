package models

import (
	"fmt"
	"time"
)

// InvoiceStatus is a closed set; parsing rejects anything outside it so a
// status column can never drift into free text.
type InvoiceStatus string

const (
	StatusPaid    InvoiceStatus = "paid"
	StatusPending InvoiceStatus = "pending"
	StatusDraft   InvoiceStatus = "draft"
)

// ParseStatus validates a raw status value.
func ParseStatus(s string) (InvoiceStatus, error) {
	switch InvoiceStatus(s) {
	case StatusPaid, StatusPending, StatusDraft:
		return InvoiceStatus(s), nil
	}
	return "", fmt.Errorf("invalid invoice status %q", s)
}

// Toggled returns the explicit paid/pending flip. Draft invoices are left
// alone: no current flow produces them, but the state stays representable.
func (s InvoiceStatus) Toggled() InvoiceStatus {
	switch s {
	case StatusPaid:
		return StatusPending
	case StatusPending:
		return StatusPaid
	}
	return s
}

// InvoiceItem is one line of an invoice. ProductID is a reference, not
// ownership: the product may be deleted later and the snapshot fields
// (ProductName, Unit, Price) must survive unchanged. Item identity is
// independent of the product, so the same product can appear twice.
type InvoiceItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// Invoice is a finalized bill. InvoiceNumber and Date are fixed at creation;
// the customer fields are snapshots taken at save time.
type Invoice struct {
	ID              string        `json:"id"`
	InvoiceNumber   string        `json:"invoiceNumber"`
	Date            time.Time     `json:"date"`
	CustomerID      string        `json:"customerId"`
	CustomerName    string        `json:"customerName"`
	CustomerAddress string        `json:"customerAddress,omitempty"`
	CustomerPhone   string        `json:"customerPhone,omitempty"`
	Items           []InvoiceItem `json:"items"`
	Subtotal        float64       `json:"subtotal"`
	TaxRate         float64       `json:"taxRate"`
	TaxAmount       float64       `json:"taxAmount"`
	Total           float64       `json:"total"`
	Status          InvoiceStatus `json:"status"`
}
