package models

// User is a shop account. PasswordHash is a bcrypt hash, never a raw
// password. Email is the login key, compared by exact string equality.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	ShopName     string `json:"shopName"`
	PasswordHash string `json:"password,omitempty"`
}

// Sanitized returns a copy safe to hand to clients or to persist as the
// session record: everything but the credential.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
