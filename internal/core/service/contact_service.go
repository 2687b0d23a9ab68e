package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/leadsite/marketing-api/internal/core/domain"
	"github.com/leadsite/marketing-api/internal/core/ports"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 50
)

type ContactService struct {
	repo   ports.ContactRepository
	logger zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger}
}

// Create stores a public submission with status "new" and returns only its
// id, creation time and status.
func (s *ContactService) Create(ctx context.Context, in ports.CreateContactInput) (*ports.ContactReceipt, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validate(in); err != nil {
		return nil, err
	}

	contact := &domain.Contact{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		Status:    domain.ContactStatusNew,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		s.logger.Error().Err(err).Msg("failed to create contact")
		return nil, fmt.Errorf("create contact: %w", err)
	}

	s.logger.Info().Str("contact_id", contact.ID).Msg("contact submitted")

	return &ports.ContactReceipt{
		ID:        contact.ID,
		CreatedAt: contact.CreatedAt,
		Status:    contact.Status,
	}, nil
}

// List returns one page of submissions, newest first.
func (s *ContactService) List(ctx context.Context, in ports.ListContactsInput) (*ports.ListContactsResult, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	page, limit := normalizePaging(in.Page, in.Limit)

	items, total, err := s.repo.List(ctx, ports.ListContactsFilter{
		Status: domain.ContactStatus(in.Status),
		Skip:   offset(page, limit),
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	if items == nil {
		items = []*domain.Contact{}
	}

	return &ports.ListContactsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id is required")
	}
	return s.repo.FindByID(ctx, id)
}

// Update applies only the provided fields, each validated like on create.
func (s *ContactService) Update(ctx context.Context, id string, in ports.UpdateContactInput) (*domain.Contact, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("id is required")
	}
	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		in.Name = &v
	}
	if in.Email != nil {
		v := strings.TrimSpace(*in.Email)
		in.Email = &v
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	patch := domain.ContactPatch{Name: in.Name, Email: in.Email, Message: in.Message}
	if in.Status != nil {
		st := domain.ContactStatus(*in.Status)
		patch.Status = &st
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("contact_id", id).Str("status", string(updated.Status)).Msg("contact updated")
	return updated, nil
}

// Delete removes a submission permanently. A second delete of the same id
// returns domain.ErrContactNotFound.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.NewValidationError("id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("contact_id", id).Msg("contact deleted")
	return nil
}

// normalizePaging applies defaults to absent values and clamps supplied ones:
// page >= 1, limit in [1, MaxLimit].
func normalizePaging(pagePtr, limitPtr *int) (int, int) {
	page, limit := DefaultPage, DefaultLimit
	if pagePtr != nil {
		page = max(*pagePtr, 1)
	}
	if limitPtr != nil {
		limit = min(max(*limitPtr, 1), MaxLimit)
	}
	return page, limit
}

// offset is (page-1)*limit, saturating at math.MaxInt.
func offset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// totalPages is ceil(total/limit) with a floor of 1.
func totalPages(total int64, limit int) int {
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages < 1 {
		return 1
	}
	return pages
}
