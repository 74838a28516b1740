// internal/tests/auth_test.go
package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/karyadesa/karya-desa-backend/internal/models"
)

type AuthTestSuite struct {
	suite.Suite
	server *testServer
}

func (suite *AuthTestSuite) SetupTest() {
	suite.server = newTestServer(suite.T())
}

func (suite *AuthTestSuite) TestUserRegistration() {
	body := suite.server.register(suite.T(), "Siti", "  Siti@Example.com ", models.UserRoleVillager)

	suite.Equal("siti@example.com", body.User.Email)
	suite.Equal(models.UserRoleVillager, body.User.Role)

	// Duplicate email
	w := suite.server.do(suite.T(), http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Siti Again",
		"email":    "siti@example.com",
		"password": "password123",
		"role":     "villager",
	})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AuthTestSuite) TestRegistrationValidation() {
	w := suite.server.do(suite.T(), http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "S",
		"email":    "not-an-email",
		"password": "short",
		"role":     "mayor",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	var body errorBody
	decode(suite.T(), w, &body)
	suite.Equal("VALIDATION_ERROR", body.Code)
	suite.NotEmpty(body.Details)
}

func (suite *AuthTestSuite) TestMalformedJSON() {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.server.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AuthTestSuite) TestUserLogin() {
	registered := suite.server.register(suite.T(), "Budi", "budi@example.com", models.UserRoleMsme)

	w := suite.server.do(suite.T(), http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "BUDI@example.com",
		"password": "password123",
	})
	suite.Equal(http.StatusOK, w.Code)

	var body authBody
	decode(suite.T(), w, &body)
	suite.NotEmpty(body.Token)
	suite.Equal(registered.User.ID, body.User.ID)

	w = suite.server.do(suite.T(), http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "budi@example.com",
		"password": "wrong-password",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.server.do(suite.T(), http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthTestSuite) TestMe() {
	registered := suite.server.register(suite.T(), "Ayu", "ayu@example.com", models.UserRoleAdmin)

	w := suite.server.do(suite.T(), http.MethodGet, "/auth/me", registered.Token, nil)
	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		User models.User `json:"user"`
	}
	decode(suite.T(), w, &body)
	suite.Equal(registered.User.ID, body.User.ID)
	suite.NotContains(w.Body.String(), "password")

	w = suite.server.do(suite.T(), http.MethodGet, "/auth/me", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.server.do(suite.T(), http.MethodGet, "/auth/me", "garbage", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthTestSuite) TestLocalizedErrors() {
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Accept-Language", "id-ID,id;q=0.9")
	w := httptest.NewRecorder()
	suite.server.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	var body errorBody
	decode(suite.T(), w, &body)
	suite.Equal("Autentikasi diperlukan", body.Message)
}

func (suite *AuthTestSuite) TestHealthAndUnknownRoute() {
	w := suite.server.do(suite.T(), http.MethodGet, "/health", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	var health struct {
		Status string  `json:"status"`
		Uptime float64 `json:"uptime"`
	}
	decode(suite.T(), w, &health)
	suite.Equal("ok", health.Status)
	suite.GreaterOrEqual(health.Uptime, 0.0)

	w = suite.server.do(suite.T(), http.MethodGet, "/nowhere", "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
