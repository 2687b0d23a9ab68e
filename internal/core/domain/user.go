package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User models an account that can sign in. PasswordHash never leaves the
// process: it is excluded from JSON and from every response schema.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TokenPayload is the identity a bearer token asserts. Role is captured at
// issuance and is not re-checked until the holder logs in again.
type TokenPayload struct {
	Subject string
	Role    string
	JTI     string
}
