package handler

import "github.com/leadsite/marketing-api/internal/core/domain"

var errInvalidBody = domain.NewValidationError("invalid request body")
