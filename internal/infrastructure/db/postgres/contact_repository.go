package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadsite/marketing-api/internal/core/domain"
	"github.com/leadsite/marketing-api/internal/core/ports"
)

const contactColumns = `id, name, email, message, status, created_at`

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO contact_submissions (id, name, email, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Email, c.Message, string(c.Status), c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c, err := scanContact(r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contact_submissions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return c, nil
}

// List sends the page query and the count in one round trip.
func (r *ContactRepository) List(ctx context.Context, f ports.ListContactsFilter) ([]*domain.Contact, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	status := string(f.Status)

	batch := &pgx.Batch{}
	batch.Queue(`
		SELECT `+contactColumns+`
		FROM contact_submissions
		WHERE ($1::text = '' OR status = $1)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`, status, f.Limit, f.Skip)
	batch.Queue(`SELECT count(*) FROM contact_submissions WHERE ($1::text = '' OR status = $1)`, status)

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	rows, err := br.Query()
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	items := make([]*domain.Contact, 0, f.Limit)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		items = append(items, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}

	var total int64
	if err := br.QueryRow().Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}
	return items, total, nil
}

// Update writes only the non-nil patch fields; COALESCE keeps the rest.
func (r *ContactRepository) Update(ctx context.Context, id string, p domain.ContactPatch) (*domain.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var status *string
	if p.Status != nil {
		s := string(*p.Status)
		status = &s
	}

	c, err := scanContact(r.pool.QueryRow(ctx, `
		UPDATE contact_submissions SET
			name    = COALESCE($2, name),
			email   = COALESCE($3, email),
			message = COALESCE($4, message),
			status  = COALESCE($5, status)
		WHERE id = $1
		RETURNING `+contactColumns,
		id, p.Name, p.Email, p.Message, status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return c, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var (
		c      domain.Contact
		status string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &status, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Status = domain.ContactStatus(status)
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}
