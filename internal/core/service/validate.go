package service

import (
	"github.com/leadsite/marketing-api/internal/core/domain"
	"github.com/leadsite/marketing-api/internal/pkg/validation"
)

var validator = validation.New()

// validate runs struct-tag validation and converts failures to a
// *domain.ValidationError.
func validate(in any) error {
	if err := validator.Struct(in); err != nil {
		return domain.NewValidationError(err.Error())
	}
	return nil
}
