// internal/middleware/policy.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karyadesa/karya-desa-backend/internal/i18n"
	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

type AuthMode int

const (
	// AuthPublic never looks at the Authorization header.
	AuthPublic AuthMode = iota
	// AuthOptional identifies the caller when a valid token is sent and
	// ignores missing or broken tokens.
	AuthOptional
	// AuthAuthenticated requires a valid token and, when Roles is set, one
	// of those roles.
	AuthAuthenticated
)

type RoutePolicy struct {
	Mode  AuthMode
	Roles []models.UserRole
}

// Authorizer resolves the policy for a registered route pattern, as
// reported by gin's FullPath. ok is false for routes with no policy.
type Authorizer interface {
	Policy(method, route string) (policy RoutePolicy, ok bool)
}

type routeKey struct {
	method string
	route  string
}

// PolicyTable is a static Authorizer.
type PolicyTable map[routeKey]RoutePolicy

func (t PolicyTable) Policy(method, route string) (RoutePolicy, bool) {
	policy, ok := t[routeKey{method: method, route: route}]
	return policy, ok
}

// Allow adds a policy for method and route.
func (t PolicyTable) Allow(method, route string, mode AuthMode, roles ...models.UserRole) PolicyTable {
	t[routeKey{method: method, route: route}] = RoutePolicy{Mode: mode, Roles: roles}
	return t
}

var (
	anyRole   []models.UserRole
	msmeOnly  = []models.UserRole{models.UserRoleMsme}
	adminOnly = []models.UserRole{models.UserRoleAdmin}
)

// DefaultPolicy is the access table for every route the API serves.
func DefaultPolicy() PolicyTable {
	t := PolicyTable{}

	t.Allow(http.MethodGet, "/health", AuthPublic)
	t.Allow(http.MethodGet, "/uploads/*filepath", AuthPublic)
	t.Allow(http.MethodHead, "/uploads/*filepath", AuthPublic)

	t.Allow(http.MethodPost, "/auth/register", AuthPublic)
	t.Allow(http.MethodPost, "/auth/login", AuthPublic)
	t.Allow(http.MethodGet, "/auth/me", AuthAuthenticated, anyRole...)

	t.Allow(http.MethodGet, "/products", AuthOptional)
	t.Allow(http.MethodPost, "/products", AuthAuthenticated, msmeOnly...)
	t.Allow(http.MethodPut, "/products/:id", AuthAuthenticated, msmeOnly...)
	t.Allow(http.MethodDelete, "/products/:id", AuthAuthenticated, msmeOnly...)

	// Anonymous callers see every order; only MSME callers are scoped.
	t.Allow(http.MethodGet, "/orders", AuthOptional)
	t.Allow(http.MethodPost, "/orders", AuthAuthenticated, msmeOnly...)
	t.Allow(http.MethodPatch, "/orders/:id/status", AuthAuthenticated, msmeOnly...)

	t.Allow(http.MethodGet, "/reports/sales", AuthPublic)

	t.Allow(http.MethodGet, "/community/home", AuthPublic)
	t.Allow(http.MethodPost, "/community/news", AuthAuthenticated, adminOnly...)
	t.Allow(http.MethodDelete, "/community/news/:id", AuthAuthenticated, adminOnly...)
	t.Allow(http.MethodPost, "/community/tourism", AuthAuthenticated, adminOnly...)
	t.Allow(http.MethodDelete, "/community/tourism/:id", AuthAuthenticated, adminOnly...)
	t.Allow(http.MethodPost, "/community/tourism/images", AuthAuthenticated, adminOnly...)

	t.Allow(http.MethodGet, "/msme/profile", AuthAuthenticated, msmeOnly...)
	t.Allow(http.MethodPut, "/msme/profile", AuthAuthenticated, msmeOnly...)

	t.Allow(http.MethodGet, "/notifications", AuthAuthenticated, anyRole...)
	t.Allow(http.MethodPost, "/notifications", AuthAuthenticated, adminOnly...)
	t.Allow(http.MethodPost, "/notifications/:id/read", AuthAuthenticated, anyRole...)

	t.Allow(http.MethodGet, "/admin/dashboard", AuthAuthenticated, adminOnly...)
	t.Allow(http.MethodGet, "/admin/msmes", AuthAuthenticated, adminOnly...)
	t.Allow(http.MethodPatch, "/admin/msmes/:id", AuthAuthenticated, adminOnly...)

	return t
}

// Authorize evaluates the caller against authorizer once per request.
// Registered routes without a policy are refused; unmatched paths fall
// through to the router's 404 handling.
func Authorize(authorizer Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}

		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		policy, ok := authorizer.Policy(c.Request.Method, route)
		if !ok {
			utils.ForbiddenResponse(c, i18n.KeyAuthRouteDenied)
			return
		}

		switch policy.Mode {
		case AuthPublic:
		case AuthOptional:
			if claims, err := bearerClaims(c); err == nil {
				setUserContext(c, claims)
			}
		default:
			claims, err := bearerClaims(c)
			if err != nil {
				abortUnauthenticated(c, err)
				return
			}
			setUserContext(c, claims)

			if !roleAllowed(models.UserRole(claims.Role), policy.Roles) {
				utils.ForbiddenResponse(c, "")
				return
			}
		}

		c.Next()
	}
}
