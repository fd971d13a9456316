package models

// Catalog defaults applied when a product is created without them.
const (
	DefaultUnit     = "pcs"
	DefaultCategory = "General"
)

// Product is a catalog entry. Invoice items copy its fields at composition
// time, so later edits or deletion never touch historical invoices.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
}

// ApplyDefaults fills unit and category when the caller left them blank.
func (p *Product) ApplyDefaults() {
	if p.Unit == "" {
		p.Unit = DefaultUnit
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}
}
