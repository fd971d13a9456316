package services

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SauravKesari/billify/internal/models"
)

var (
	// ErrNoCustomer rejects a save with no customer selected.
	ErrNoCustomer = errors.New("no customer selected")
	// ErrNoItems rejects a save with an empty item list.
	ErrNoItems = errors.New("invoice has no items")
	// ErrUnknownCustomer means the selected customer is not in the list.
	ErrUnknownCustomer = errors.New("unknown customer")
)

// Composer holds the single in-progress invoice draft. It moves from empty
// to building as a customer and items arrive, and back to empty once a new
// invoice is saved. Editing a saved invoice seeds the draft and preserves
// the invoice's identity, number, date and status on the next save.
//
// The catalog and customer list are passed into each operation rather than
// held here, so the draft always resolves products against current data.
type Composer struct {
	mu         sync.Mutex
	taxRate    float64
	customerID string
	items      []models.InvoiceItem
	editing    *models.Invoice
}

// NewComposer creates an empty draft. taxRate is the effective rate applied
// at save time (fraction, e.g. 0.10).
func NewComposer(taxRate float64) *Composer {
	return &Composer{taxRate: taxRate}
}

// Edit seeds the draft from a saved invoice.
func (c *Composer) Edit(inv models.Invoice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := inv
	cp.Items = append([]models.InvoiceItem(nil), inv.Items...)
	c.editing = &cp
	c.customerID = inv.CustomerID
	c.items = append([]models.InvoiceItem(nil), inv.Items...)
}

// Editing reports the invoice being edited, if any.
func (c *Composer) Editing() (models.Invoice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return models.Invoice{}, false
	}
	return *c.editing, true
}

// SelectCustomer records the draft's customer.
func (c *Composer) SelectCustomer(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customerID = id
}

// CustomerID returns the selected customer id, empty when none.
func (c *Composer) CustomerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customerID
}

// AddItem appends a line defaulted to the first catalog product, quantity 1.
// With an empty catalog it is a no-op and reports false.
func (c *Composer) AddItem(products []models.Product) bool {
	if len(products) == 0 {
		return false
	}
	p := products[0]
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, models.InvoiceItem{
		ID:          uuid.NewString(),
		ProductID:   p.ID,
		ProductName: p.Name,
		Unit:        p.Unit,
		Quantity:    1,
		Price:       p.Price,
		Total:       p.Price,
	})
	return true
}

// SetProduct repoints an item at another catalog product, copying its name,
// price and unit and recomputing the line total with the new price.
// Ids are compared as strings; an unknown item or product is ignored.
func (c *Composer) SetProduct(products []models.Product, itemID, productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID != itemID {
			continue
		}
		for _, p := range products {
			if p.ID != productID {
				continue
			}
			c.items[i].ProductID = p.ID
			c.items[i].ProductName = p.Name
			c.items[i].Price = p.Price
			c.items[i].Unit = p.Unit
			c.items[i].Total = c.items[i].Quantity * p.Price
			return
		}
		return
	}
}

// SetQuantity changes an item's quantity and recomputes its total.
func (c *Composer) SetQuantity(itemID string, qty float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items[i].Quantity = qty
			c.items[i].Total = qty * c.items[i].Price
			return
		}
	}
}

// SetPrice overrides an item's unit price and recomputes its total.
func (c *Composer) SetPrice(itemID string, price float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items[i].Price = price
			c.items[i].Total = c.items[i].Quantity * price
			return
		}
	}
}

// RemoveItem drops a line. Subtotals are derived on read, so nothing else
// needs recomputing.
func (c *Composer) RemoveItem(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, it := range c.items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// Items returns a copy of the draft lines.
func (c *Composer) Items() []models.InvoiceItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.InvoiceItem(nil), c.items...)
}

// Subtotal is the sum of line totals.
func (c *Composer) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotalLocked()
}

func (c *Composer) subtotalLocked() float64 {
	var sum float64
	for _, it := range c.items {
		sum += it.Total
	}
	return sum
}

// TaxAmount is subtotal times the effective rate.
func (c *Composer) TaxAmount() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotalLocked() * c.taxRate
}

// Total is subtotal plus tax.
func (c *Composer) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	sub := c.subtotalLocked()
	return sub + sub*c.taxRate
}

// Reset empties the draft and leaves editing mode.
func (c *Composer) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customerID = ""
	c.items = nil
	c.editing = nil
}

// Save validates the draft and produces the finalized invoice record,
// snapshotting the customer's name, address and phone. A new invoice gets a
// fresh id, an INV-<4 digits> number, the current time and pending status;
// an edit keeps all four from the saved invoice. On success a create resets
// the draft to empty and an edit exits editing mode. The caller persists
// the record through the invoice manager.
func (c *Composer) Save(customers []models.Customer) (models.Invoice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.customerID == "" {
		return models.Invoice{}, ErrNoCustomer
	}
	if len(c.items) == 0 {
		return models.Invoice{}, ErrNoItems
	}
	var customer *models.Customer
	for i := range customers {
		if customers[i].ID == c.customerID {
			customer = &customers[i]
			break
		}
	}
	if customer == nil {
		return models.Invoice{}, fmt.Errorf("customer %s: %w", c.customerID, ErrUnknownCustomer)
	}

	inv := models.Invoice{
		ID:              uuid.NewString(),
		InvoiceNumber:   fmt.Sprintf("INV-%d", 1000+rand.Intn(9000)),
		Date:            time.Now().UTC(),
		Status:          models.StatusPending,
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerAddress: customer.Address,
		CustomerPhone:   customer.Phone,
		Items:           append([]models.InvoiceItem(nil), c.items...),
	}
	if c.editing != nil {
		inv.ID = c.editing.ID
		inv.InvoiceNumber = c.editing.InvoiceNumber
		inv.Date = c.editing.Date
		inv.Status = c.editing.Status
	}
	for _, it := range inv.Items {
		inv.Subtotal += it.Total
	}
	inv.TaxRate = c.taxRate
	inv.TaxAmount = inv.Subtotal * c.taxRate
	inv.Total = inv.Subtotal + inv.TaxAmount

	if c.editing != nil {
		c.editing = nil
	} else {
		c.customerID = ""
		c.items = nil
	}
	return inv, nil
}
