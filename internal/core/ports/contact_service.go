package ports

import (
	"context"
	"time"

	"github.com/leadsite/marketing-api/internal/core/domain"
)

// CreateContactInput is a public contact form submission.
type CreateContactInput struct {
	Name    string `validate:"required,min=2"`
	Email   string `validate:"required,email"`
	Message string `validate:"required,min=10"`
}

// ContactReceipt is the only view of a new submission returned to the submitter.
type ContactReceipt struct {
	ID        string
	CreatedAt time.Time
	Status    domain.ContactStatus
}

// ListContactsInput carries raw paging parameters. Nil Page/Limit select
// the defaults; supplied values are clamped by the service.
type ListContactsInput struct {
	Page   *int
	Limit  *int
	Status string `validate:"omitempty,oneof=new read"`
}

// ListContactsResult is one page of submissions.
type ListContactsResult struct {
	Items      []*domain.Contact
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UpdateContactInput is a partial update; nil fields are left untouched.
type UpdateContactInput struct {
	Name    *string `validate:"omitempty,min=2"`
	Email   *string `validate:"omitempty,email"`
	Message *string `validate:"omitempty,min=10"`
	Status  *string `validate:"omitempty,oneof=new read"`
}

// ContactService defines use-case operations for contact submissions.
type ContactService interface {
	Create(ctx context.Context, input CreateContactInput) (*ContactReceipt, error)
	List(ctx context.Context, input ListContactsInput) (*ListContactsResult, error)
	Get(ctx context.Context, id string) (*domain.Contact, error)
	Update(ctx context.Context, id string, input UpdateContactInput) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}
