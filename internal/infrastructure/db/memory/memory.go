// Package memory is an in-process store selected with STORE_DRIVER=memory.
// Data lives only as long as the process.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/leadsite/marketing-api/internal/core/domain"
	"github.com/leadsite/marketing-api/internal/core/ports"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, domain.ErrUserExists
	}
	u := *user
	r.byID[u.ID] = &u
	r.byEmail[key] = u.ID

	out := u
	return &out, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

type ContactRepository struct {
	mu       sync.RWMutex
	contacts map[string]*domain.Contact
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{contacts: make(map[string]*domain.Contact)}
}

func (r *ContactRepository) Create(_ context.Context, c *domain.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *c
	r.contacts[cp.ID] = &cp
	return nil
}

func (r *ContactRepository) FindByID(_ context.Context, id string) (*domain.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contacts[id]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	out := *c
	return &out, nil
}

// List orders newest first, breaking ties by id so paging is stable.
func (r *ContactRepository) List(_ context.Context, f ports.ListContactsFilter) ([]*domain.Contact, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		cp := *c
		matched = append(matched, &cp)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Skip >= len(matched) {
		return []*domain.Contact{}, total, nil
	}
	end := len(matched)
	if f.Limit > 0 && f.Limit < end-f.Skip {
		end = f.Skip + f.Limit
	}
	return matched[f.Skip:end], total, nil
}

func (r *ContactRepository) Update(_ context.Context, id string, p domain.ContactPatch) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.contacts[id]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Message != nil {
		c.Message = *p.Message
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	out := *c
	return &out, nil
}

func (r *ContactRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.contacts[id]; !ok {
		return domain.ErrContactNotFound
	}
	delete(r.contacts, id)
	return nil
}
