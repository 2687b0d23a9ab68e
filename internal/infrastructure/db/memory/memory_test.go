package memory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/leadsite/marketing-api/internal/core/domain"
	"github.com/leadsite/marketing-api/internal/core/ports"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	u := &domain.User{ID: "u1", Email: "ada@example.com", Name: "Ada", Role: domain.RoleCustomer}
	if _, err := repo.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("expected u1, got %q", got.ID)
	}

	got.Name = "mutated"
	again, _ := repo.FindByID(ctx, "u1")
	if again.Name != "Ada" {
		t.Fatalf("store returned a shared pointer")
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	_, _ = repo.Create(ctx, &domain.User{ID: "u1", Email: "a@example.com"})
	_, err := repo.Create(ctx, &domain.User{ID: "u2", Email: "A@example.com"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository()
	if _, err := repo.FindByID(context.Background(), "nope"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByEmail(context.Background(), "x@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func seedContacts(t *testing.T, repo *ContactRepository, n int) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		status := domain.ContactStatusNew
		if i%2 == 1 {
			status = domain.ContactStatusRead
		}
		c := &domain.Contact{
			ID:        fmt.Sprintf("c%02d", i),
			Name:      "Lead",
			Email:     "lead@example.com",
			Message:   "hello there, world",
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(context.Background(), c); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
}

func TestContactRepository_ListNewestFirstAndPaged(t *testing.T) {
	repo := NewContactRepository()
	seedContacts(t, repo, 5)

	items, total, err := repo.List(context.Background(), ports.ListContactsFilter{Skip: 0, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(items) != 2 || items[0].ID != "c04" || items[1].ID != "c03" {
		t.Fatalf("unexpected first page: %+v", items)
	}

	items, _, _ = repo.List(context.Background(), ports.ListContactsFilter{Skip: 4, Limit: 2})
	if len(items) != 1 || items[0].ID != "c00" {
		t.Fatalf("unexpected last page: %+v", items)
	}

	items, total, _ = repo.List(context.Background(), ports.ListContactsFilter{Skip: 10, Limit: 2})
	if len(items) != 0 || total != 5 {
		t.Fatalf("expected empty page with total 5, got %d items total %d", len(items), total)
	}
}

func TestContactRepository_ListFiltersByStatus(t *testing.T) {
	repo := NewContactRepository()
	seedContacts(t, repo, 5)

	items, total, err := repo.List(context.Background(), ports.ListContactsFilter{Status: domain.ContactStatusRead, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 read contacts, got total %d len %d", total, len(items))
	}
	for _, c := range items {
		if c.Status != domain.ContactStatusRead {
			t.Fatalf("unexpected status %q", c.Status)
		}
	}
}

func TestContactRepository_UpdateAndDelete(t *testing.T) {
	repo := NewContactRepository()
	seedContacts(t, repo, 1)
	ctx := context.Background()

	read := domain.ContactStatusRead
	got, err := repo.Update(ctx, "c00", domain.ContactPatch{Status: &read})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Status != read || got.Name != "Lead" {
		t.Fatalf("unexpected record after update: %+v", got)
	}

	if _, err := repo.Update(ctx, "missing", domain.ContactPatch{Status: &read}); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}

	if err := repo.Delete(ctx, "c00"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "c00"); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound on second delete, got %v", err)
	}
}

func TestContactRepository_ListExtremeSkip(t *testing.T) {
	repo := NewContactRepository()
	seedContacts(t, repo, 3)

	items, total, err := repo.List(context.Background(), ports.ListContactsFilter{Skip: math.MaxInt, Limit: 50})
	if err != nil || len(items) != 0 || total != 3 {
		t.Fatalf("max skip: expected empty page, got %d items total %d err %v", len(items), total, err)
	}

	items, _, err = repo.List(context.Background(), ports.ListContactsFilter{Skip: -5, Limit: 2})
	if err != nil || len(items) != 2 || items[0].ID != "c02" {
		t.Fatalf("negative skip: expected first page, got %+v err %v", items, err)
	}
}
