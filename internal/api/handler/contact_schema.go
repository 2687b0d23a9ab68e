package handler

import (
	"time"

	"github.com/leadsite/marketing-api/internal/core/domain"
	"github.com/leadsite/marketing-api/internal/core/ports"
)

type createContactRequest struct {
	Name    string `json:"name" example:"Sarah Chen"`
	Email   string `json:"email" example:"sarah@example.com"`
	Message string `json:"message" example:"I would love to learn more about your services."`
}

// updateContactRequest fields are optional; absent fields keep their value.
type updateContactRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Message *string `json:"message,omitempty"`
	Status  *string `json:"status,omitempty" enums:"new,read"`
}

type contactReceiptResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Status    string    `json:"status" example:"new"`
}

type contactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status" enums:"new,read"`
	CreatedAt time.Time `json:"createdAt"`
}

type contactPageResponse struct {
	Items      []contactResponse `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

func toContactResponse(c *domain.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

func toContactPageResponse(r *ports.ListContactsResult) contactPageResponse {
	items := make([]contactResponse, len(r.Items))
	for i, c := range r.Items {
		items[i] = toContactResponse(c)
	}
	return contactPageResponse{
		Items:      items,
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}
