// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/karyadesa/karya-desa-backend/internal/apperrors"
	"github.com/karyadesa/karya-desa-backend/internal/i18n"
	"github.com/karyadesa/karya-desa-backend/internal/models"
)

// Context keys set by the locale and authentication middleware.
const (
	ContextKeyLang      = "lang"
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserName  = "user_name"
)

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.AbortWithStatusJSON(statusCode, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyValidationInvalid, "request")
	}
	ErrorResponse(c, http.StatusBadRequest, string(apperrors.KindValidation), message, details)
}

func UnauthorizedResponse(c *gin.Context, key string) {
	if key == "" {
		key = i18n.KeyAuthRequired
	}
	ErrorResponse(c, http.StatusUnauthorized, string(apperrors.KindUnauthenticated), i18n.T(GetLangFromContext(c), key), nil)
}

func ForbiddenResponse(c *gin.Context, key string) {
	if key == "" {
		key = i18n.KeyAuthForbidden
	}
	ErrorResponse(c, http.StatusForbidden, string(apperrors.KindForbidden), i18n.T(GetLangFromContext(c), key), nil)
}

func InternalErrorResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, string(apperrors.KindInternal), i18n.T(GetLangFromContext(c), i18n.KeyInternalError), nil)
}

// RespondError renders a service error. Application errors keep their kind
// and client message. Internal and foreign errors are logged and reported as
// a 500 that only shows a catalogue message.
func RespondError(c *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Kind == apperrors.KindInternal {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
		if ok && appErr.Key != "" {
			ErrorResponse(c, http.StatusInternalServerError, string(apperrors.KindInternal), i18n.T(GetLangFromContext(c), appErr.Key, appErr.Args...), nil)
			return
		}
		InternalErrorResponse(c)
		return
	}

	message := appErr.Message
	if appErr.Key != "" {
		if translated, found := i18n.Lookup(GetLangFromContext(c), appErr.Key, appErr.Args...); found {
			message = translated
		}
	}

	ErrorResponse(c, appErr.Status(), string(appErr.Kind), message, appErr.Details)
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get(ContextKeyLang); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return i18n.DefaultLang
}

func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	if userID, exists := c.Get(ContextKeyUserID); exists {
		if id, ok := userID.(uuid.UUID); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

func GetUserRoleFromContext(c *gin.Context) (models.UserRole, bool) {
	if role, exists := c.Get(ContextKeyUserRole); exists {
		if userRole, ok := role.(models.UserRole); ok {
			return userRole, true
		}
	}
	return "", false
}

// GetOwnerFilter returns the caller's id when the caller is an MSME, which
// scopes catalogue and order listings to their own records.
func GetOwnerFilter(c *gin.Context) *uuid.UUID {
	role, ok := GetUserRoleFromContext(c)
	if !ok || role != models.UserRoleMsme {
		return nil
	}
	if id, ok := GetUserIDFromContext(c); ok {
		return &id
	}
	return nil
}
