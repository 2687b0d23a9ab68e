package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadsite/marketing-api/internal/core/domain"
	"github.com/leadsite/marketing-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubContactRepo struct {
	byID       map[string]*domain.Contact
	lastFilter ports.ListContactsFilter
	createErr  error
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{byID: make(map[string]*domain.Contact)}
}

func (r *stubContactRepo) Create(_ context.Context, c *domain.Contact) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubContactRepo) FindByID(_ context.Context, id string) (*domain.Contact, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	clone := *c
	return &clone, nil
}

// List mirrors the real query: filter, newest first, skip/limit.
func (r *stubContactRepo) List(_ context.Context, f ports.ListContactsFilter) ([]*domain.Contact, int64, error) {
	r.lastFilter = f
	var matched []*domain.Contact
	for _, c := range r.byID {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if f.Skip >= len(matched) {
		return []*domain.Contact{}, total, nil
	}
	end := f.Skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[f.Skip:end], total, nil
}

func (r *stubContactRepo) Update(_ context.Context, id string, p domain.ContactPatch) (*domain.Contact, error) {
	c, ok := r.byID[id]
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
	clone := *c
	return &clone, nil
}

func (r *stubContactRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrContactNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func strPtr(s string) *string { return &s }

func seedContacts(repo *stubContactRepo, n int, status domain.ContactStatus) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s-%02d", status, i)
		repo.byID[id] = &domain.Contact{
			ID:        id,
			Name:      "Lead",
			Email:     "lead@example.com",
			Message:   "Please call me back soon.",
			Status:    status,
			CreatedAt: base.Add(time.Duration(len(repo.byID)) * time.Minute),
		}
	}
}

func validContactInput() ports.CreateContactInput {
	return ports.CreateContactInput{Name: "Sarah Chen", Email: "sarah@example.com", Message: "I would love to learn more."}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestContactService_Create_Success(t *testing.T) {
	repo := newStubContactRepo()
	svc := NewContactService(repo, discardLogger)

	receipt, err := svc.Create(context.Background(), validContactInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.ID == "" || receipt.CreatedAt.IsZero() {
		t.Fatalf("incomplete receipt: %+v", receipt)
	}
	if receipt.Status != domain.ContactStatusNew {
		t.Errorf("expected status %q, got %q", domain.ContactStatusNew, receipt.Status)
	}

	stored := repo.byID[receipt.ID]
	if stored == nil || stored.Message != "I would love to learn more." {
		t.Fatalf("contact not persisted: %+v", stored)
	}
}

func TestContactService_Create_Validation(t *testing.T) {
	cases := map[string]ports.CreateContactInput{
		"short message": {Name: "Jo", Email: "jo@x.com", Message: "short"},
		"short name":    {Name: "J", Email: "jo@x.com", Message: "long enough message"},
		"bad email":     {Name: "Jo", Email: "jo-at-x", Message: "long enough message"},
		"blank name":    {Name: "   ", Email: "jo@x.com", Message: "long enough message"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newStubContactRepo()
			svc := NewContactService(repo, discardLogger)

			_, err := svc.Create(context.Background(), in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(repo.byID) != 0 {
				t.Fatalf("expected no record created, got %d", len(repo.byID))
			}
		})
	}
}

func TestContactService_Create_RepoError(t *testing.T) {
	repo := newStubContactRepo()
	repo.createErr = errors.New("db down")
	svc := NewContactService(repo, discardLogger)

	if _, err := svc.Create(context.Background(), validContactInput()); err == nil {
		t.Fatal("expected error")
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestContactService_List_Defaults(t *testing.T) {
	repo := newStubContactRepo()
	seedContacts(repo, 12, domain.ContactStatusNew)
	svc := NewContactService(repo, discardLogger)

	res, err := svc.List(context.Background(), ports.ListContactsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Page != 1 || res.Limit != DefaultLimit {
		t.Fatalf("expected page 1 limit %d, got %d/%d", DefaultLimit, res.Page, res.Limit)
	}
	if len(res.Items) != 10 || res.Total != 12 || res.TotalPages != 2 {
		t.Fatalf("unexpected page: items=%d total=%d pages=%d", len(res.Items), res.Total, res.TotalPages)
	}
	for i := 1; i < len(res.Items); i++ {
		if res.Items[i].CreatedAt.After(res.Items[i-1].CreatedAt) {
			t.Fatal("items not ordered newest first")
		}
	}
}

func intPtr(v int) *int { return &v }

func TestContactService_List_Clamping(t *testing.T) {
	cases := []struct {
		name                string
		page, limit         *int
		wantPage, wantLimit int
	}{
		{name: "absent", wantPage: 1, wantLimit: 10},
		{name: "zero", page: intPtr(0), limit: intPtr(0), wantPage: 1, wantLimit: 1},
		{name: "negative", page: intPtr(-4), limit: intPtr(-1), wantPage: 1, wantLimit: 1},
		{name: "above max", page: intPtr(2), limit: intPtr(500), wantPage: 2, wantLimit: 50},
		{name: "in range", page: intPtr(3), limit: intPtr(7), wantPage: 3, wantLimit: 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubContactRepo()
			svc := NewContactService(repo, discardLogger)

			res, err := svc.List(context.Background(), ports.ListContactsInput{Page: tc.page, Limit: tc.limit})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Page != tc.wantPage || res.Limit != tc.wantLimit {
				t.Errorf("got %d/%d, want %d/%d", res.Page, res.Limit, tc.wantPage, tc.wantLimit)
			}
			if want := (tc.wantPage - 1) * tc.wantLimit; repo.lastFilter.Skip != want {
				t.Errorf("expected skip %d, got %d", want, repo.lastFilter.Skip)
			}
		})
	}
}

func TestContactService_List_ZeroLimitReturnsOneItem(t *testing.T) {
	repo := newStubContactRepo()
	seedContacts(repo, 3, domain.ContactStatusNew)
	svc := NewContactService(repo, discardLogger)

	res, err := svc.List(context.Background(), ports.ListContactsInput{Limit: intPtr(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Limit != 1 || len(res.Items) != 1 || res.TotalPages != 3 {
		t.Fatalf("expected limit 1, 1 item, 3 pages; got %d/%d/%d", res.Limit, len(res.Items), res.TotalPages)
	}
}

func TestContactService_List_HugePageDoesNotOverflow(t *testing.T) {
	repo := newStubContactRepo()
	seedContacts(repo, 3, domain.ContactStatusNew)
	svc := NewContactService(repo, discardLogger)

	res, err := svc.List(context.Background(), ports.ListContactsInput{Page: intPtr(math.MaxInt / 10), Limit: intPtr(50)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.Skip < 0 {
		t.Fatalf("skip overflowed: %d", repo.lastFilter.Skip)
	}
	if len(res.Items) != 0 || res.Items == nil || res.Total != 3 || res.TotalPages != 1 {
		t.Fatalf("expected empty page of 1, got items=%v total=%d pages=%d", res.Items, res.Total, res.TotalPages)
	}
}

func TestContactService_List_PageBeyondTotal(t *testing.T) {
	repo := newStubContactRepo()
	seedContacts(repo, 5, domain.ContactStatusNew)
	svc := NewContactService(repo, discardLogger)

	res, err := svc.List(context.Background(), ports.ListContactsInput{Page: intPtr(3), Limit: intPtr(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Items) != 0 || res.Items == nil {
		t.Fatalf("expected empty non-nil items, got %v", res.Items)
	}
	if res.Total != 5 || res.TotalPages != 1 {
		t.Fatalf("expected total 5 pages 1, got %d/%d", res.Total, res.TotalPages)
	}
}

func TestContactService_List_TotalPagesProperty(t *testing.T) {
	for total := 0; total <= 23; total++ {
		for _, limit := range []int{1, 3, 10, 50} {
			repo := newStubContactRepo()
			seedContacts(repo, total, domain.ContactStatusRead)
			svc := NewContactService(repo, discardLogger)

			for page := 1; page <= 3; page++ {
				res, err := svc.List(context.Background(), ports.ListContactsInput{Page: intPtr(page), Limit: intPtr(limit)})
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				want := (total + limit - 1) / limit
				if want < 1 {
					want = 1
				}
				if res.TotalPages != want {
					t.Fatalf("total=%d limit=%d: totalPages %d, want %d", total, limit, res.TotalPages, want)
				}
				if len(res.Items) > limit {
					t.Fatalf("total=%d limit=%d: %d items exceeds limit", total, limit, len(res.Items))
				}
			}
		}
	}
}

func TestContactService_List_StatusFilter(t *testing.T) {
	repo := newStubContactRepo()
	seedContacts(repo, 3, domain.ContactStatusNew)
	seedContacts(repo, 2, domain.ContactStatusRead)
	svc := NewContactService(repo, discardLogger)

	res, err := svc.List(context.Background(), ports.ListContactsInput{Status: "read"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 {
		t.Fatalf("expected 2 read contacts, got %d", res.Total)
	}
	for _, c := range res.Items {
		if c.Status != domain.ContactStatusRead {
			t.Fatalf("unexpected status %q", c.Status)
		}
	}

	if _, err := svc.List(context.Background(), ports.ListContactsInput{Status: "archived"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Get / Update / Delete
// ---------------------------------------------------------------------------

func TestContactService_Get(t *testing.T) {
	repo := newStubContactRepo()
	seedContacts(repo, 1, domain.ContactStatusNew)
	svc := NewContactService(repo, discardLogger)

	c, err := svc.Get(context.Background(), "new-00")
	if err != nil || c.ID != "new-00" {
		t.Fatalf("unexpected result: %+v, %v", c, err)
	}
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestContactService_Update_Partial(t *testing.T) {
	repo := newStubContactRepo()
	seedContacts(repo, 1, domain.ContactStatusNew)
	before := *repo.byID["new-00"]
	svc := NewContactService(repo, discardLogger)

	updated, err := svc.Update(context.Background(), "new-00", ports.UpdateContactInput{Status: strPtr("read")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.ContactStatusRead {
		t.Fatalf("expected status read, got %q", updated.Status)
	}
	if updated.Name != before.Name || updated.Email != before.Email || updated.Message != before.Message {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if !updated.CreatedAt.Equal(before.CreatedAt) {
		t.Fatal("createdAt must not change")
	}
}

func TestContactService_Update_Validation(t *testing.T) {
	repo := newStubContactRepo()
	seedContacts(repo, 1, domain.ContactStatusNew)
	svc := NewContactService(repo, discardLogger)

	cases := map[string]ports.UpdateContactInput{
		"status":  {Status: strPtr("archived")},
		"name":    {Name: strPtr("J")},
		"email":   {Email: strPtr("bad")},
		"message": {Message: strPtr("tiny")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.Update(context.Background(), "new-00", in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if repo.byID["new-00"].Status != domain.ContactStatusNew {
		t.Fatal("record modified by rejected update")
	}
}

func TestContactService_Update_NotFound(t *testing.T) {
	svc := NewContactService(newStubContactRepo(), discardLogger)

	_, err := svc.Update(context.Background(), "missing", ports.UpdateContactInput{Status: strPtr("read")})
	if !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

func TestContactService_Delete_Twice(t *testing.T) {
	repo := newStubContactRepo()
	seedContacts(repo, 1, domain.ContactStatusNew)
	svc := NewContactService(repo, discardLogger)

	if err := svc.Delete(context.Background(), "new-00"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "new-00"); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound on second delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), "never-existed"); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}
