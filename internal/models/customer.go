package models

// Customer is a billing contact. Email uniqueness is deliberately not
// enforced; two customers may share an address book entry.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}
