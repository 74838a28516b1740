// internal/handlers/helpers.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/karyadesa/karya-desa-backend/internal/apperrors"
	"github.com/karyadesa/karya-desa-backend/internal/i18n"
	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

// bindJSON decodes the body into req and writes a 400 on malformed JSON.
// Field rules are checked by the services.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}

// parseID reads the :id path parameter. An id that is not a UUID cannot
// name any stored row, so it is answered with notFound.
func parseID(c *gin.Context, notFound *apperrors.Error) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, notFound)
		return uuid.Nil, false
	}
	return id, true
}

func productNotFound() *apperrors.Error {
	return apperrors.NotFound("Product not found").WithKey(i18n.KeyProductNotFound)
}

func orderNotFound() *apperrors.Error {
	return apperrors.NotFound("Order not found").WithKey(i18n.KeyOrderNotFound)
}

func msmeNotFound() *apperrors.Error {
	return apperrors.NotFound("MSME profile not found").WithKey(i18n.KeyMsmeNotFound)
}

func newsNotFound() *apperrors.Error {
	return apperrors.NotFound("News item not found").WithKey(i18n.KeyNewsNotFound)
}

func tourismNotFound() *apperrors.Error {
	return apperrors.NotFound("Tourism spot not found").WithKey(i18n.KeyTourismNotFound)
}

func notificationNotFound() *apperrors.Error {
	return apperrors.NotFound("Notification not found").WithKey(i18n.KeyNotificationNotFound)
}

// currentUser returns the authenticated caller. Routes behind an
// authenticated policy always have one.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
	}
	return userID, ok
}

// optionalUser returns the caller's id when the request is authenticated.
func optionalUser(c *gin.Context) *uuid.UUID {
	if userID, ok := utils.GetUserIDFromContext(c); ok {
		return &userID
	}
	return nil
}
