package ports

import (
	"context"

	"github.com/leadsite/marketing-api/internal/core/domain"
)

// ListContactsFilter carries already-normalised query parameters.
type ListContactsFilter struct {
	Status domain.ContactStatus // empty = all statuses
	Skip   int
	Limit  int
}

// ContactRepository defines persistence operations for contact submissions.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) error
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	// List returns one page ordered newest first and the total number of
	// records matching the filter.
	List(ctx context.Context, filter ListContactsFilter) ([]*domain.Contact, int64, error)
	// Update applies the non-nil fields of patch and returns the stored record.
	Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.Contact, error)
	// Delete removes the record permanently. Returns domain.ErrContactNotFound
	// when nothing was deleted.
	Delete(ctx context.Context, id string) error
}
