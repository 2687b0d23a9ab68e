package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadsite/marketing-api/internal/api/metrics"
	"github.com/leadsite/marketing-api/internal/core/domain"
	"github.com/leadsite/marketing-api/internal/core/ports"
)

type ContactHandler struct {
	svc ports.ContactService
}

func NewContactHandler(svc ports.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Create accepts a public contact form submission.
//
// @Summary      Submit a lead
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        body  body      createContactRequest  true  "Contact form"
// @Success      201   {object}  Response{data=contactReceiptResponse}
// @Failure      400   {object}  Response
// @Failure      429   {object}  Response
// @Failure      500   {object}  Response
// @Router       /contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req createContactRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	receipt, err := h.svc.Create(c.Request().Context(), ports.CreateContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	metrics.ContactsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, ok(contactReceiptResponse{
		ID:        receipt.ID,
		CreatedAt: receipt.CreatedAt,
		Status:    string(receipt.Status),
	}))
}

// List returns one page of submissions, newest first.
//
// @Summary      List leads
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 10, max 50)"
// @Param        status  query     string  false  "Status filter"  Enums(new, read)
// @Success      200     {object}  Response{data=contactPageResponse}
// @Failure      400     {object}  Response
// @Failure      401     {object}  Response
// @Failure      403     {object}  Response
// @Router       /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	var (
		in          ports.ListContactsInput
		page, limit int
	)
	err := echo.QueryParamsBinder(c).
		FailFast(true).
		Int("page", &page).
		Int("limit", &limit).
		String("status", &in.Status).
		BindError()
	if err != nil {
		var be *echo.BindingError
		if errors.As(err, &be) {
			return domain.NewValidationError(fmt.Sprintf("%s must be an integer", be.Field))
		}
		return domain.NewValidationError("invalid query parameters")
	}
	// Absent or empty parameters take the service defaults.
	if c.QueryParam("page") != "" {
		in.Page = &page
	}
	if c.QueryParam("limit") != "" {
		in.Limit = &limit
	}

	res, err := h.svc.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(toContactPageResponse(res)))
}

// Get returns a single submission.
//
// @Summary      Get a lead
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Contact ID"
// @Success      200  {object}  Response{data=contactResponse}
// @Failure      401  {object}  Response
// @Failure      403  {object}  Response
// @Failure      404  {object}  Response
// @Router       /contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	contact, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(toContactResponse(contact)))
}

// Update applies a partial update to a submission.
//
// @Summary      Update a lead
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Contact ID"
// @Param        body  body      updateContactRequest  true  "Fields to change"
// @Success      200   {object}  Response{data=contactResponse}
// @Failure      400   {object}  Response
// @Failure      404   {object}  Response
// @Router       /contacts/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	var req updateContactRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	contact, err := h.svc.Update(c.Request().Context(), c.Param("id"), ports.UpdateContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Status:  req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(toContactResponse(contact)))
}

// Delete permanently removes a submission.
//
// @Summary      Delete a lead
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Contact ID"
// @Success      200  {object}  Response{data=deleteResponse}
// @Failure      404  {object}  Response
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok(deleteResponse{Success: true}))
}
