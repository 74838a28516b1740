// internal/services/common.go
package services

import (
	"errors"

	"github.com/karyadesa/karya-desa-backend/internal/apperrors"
	"github.com/karyadesa/karya-desa-backend/internal/i18n"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

const instrumentationName = "github.com/karyadesa/karya-desa-backend/internal/services"

// validateRequest runs the struct's validate tags and reports failures as a
// validation error carrying per-field details.
func validateRequest(req interface{}) error {
	err := utils.ValidateStruct(req)
	if err == nil {
		return nil
	}

	appErr := apperrors.Validation("Invalid input").WithKey(i18n.KeyValidationInvalid, "input")
	if details := utils.GetValidationErrors(err); len(details) > 0 {
		appErr.WithDetails(details)
	}
	return appErr
}

// notFoundOr maps repository.ErrNotFound to notFound and wraps anything else
// as an internal failure.
func notFoundOr(err error, notFound *apperrors.Error, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return apperrors.Internal(action, err)
}
