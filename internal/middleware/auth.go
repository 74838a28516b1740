// internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/karyadesa/karya-desa-backend/internal/i18n"
	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid bearer token")
)

// bearerClaims reads and validates the Authorization header.
func bearerClaims(c *gin.Context) (*utils.JWTClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errMissingToken
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return nil, errInvalidToken
	}

	claims, err := utils.ValidateJWT(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, errInvalidToken
	}
	if !models.UserRole(claims.Role).Valid() {
		return nil, errInvalidToken
	}
	return claims, nil
}

func setUserContext(c *gin.Context, claims *utils.JWTClaims) {
	c.Set(utils.ContextKeyUserID, claims.UserID())
	c.Set(utils.ContextKeyUserRole, models.UserRole(claims.Role))
	c.Set(utils.ContextKeyUserEmail, claims.Email)
	c.Set(utils.ContextKeyUserName, claims.Name)
}

func abortUnauthenticated(c *gin.Context, err error) {
	if errors.Is(err, errMissingToken) {
		utils.UnauthorizedResponse(c, "")
		return
	}
	utils.UnauthorizedResponse(c, i18n.KeyAuthInvalidToken)
}

func roleAllowed(role models.UserRole, roles []models.UserRole) bool {
	if len(roles) == 0 {
		return true
	}
	for _, allowed := range roles {
		if role == allowed {
			return true
		}
	}
	return false
}
