package domain

import "time"

// ContactStatus is the read state of a contact submission.
type ContactStatus string

const (
	ContactStatusNew  ContactStatus = "new"
	ContactStatusRead ContactStatus = "read"
)

// Valid reports whether s is one of the known statuses.
func (s ContactStatus) Valid() bool {
	return s == ContactStatusNew || s == ContactStatusRead
}

// Contact is a lead submitted through the public contact form.
type Contact struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ContactPatch lists the fields an admin update may change. Nil fields are
// left untouched.
type ContactPatch struct {
	Name    *string
	Email   *string
	Message *string
	Status  *ContactStatus
}

// Empty reports whether the patch changes nothing.
func (p ContactPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Message == nil && p.Status == nil
}
