// internal/tests/helpers_test.go
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/karyadesa/karya-desa-backend/internal/config"
	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
	"github.com/karyadesa/karya-desa-backend/internal/repository/memory"
	"github.com/karyadesa/karya-desa-backend/internal/router"
	"github.com/karyadesa/karya-desa-backend/internal/services"
)

type recordingAuditLogs struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (r *recordingAuditLogs) Create(_ context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *recordingAuditLogs) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		actions = append(actions, e.Action)
	}
	return actions
}

// find returns the first recorded entry for action.
func (r *recordingAuditLogs) find(action string) (models.AuditLog, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Action == action {
			return e, true
		}
	}
	return models.AuditLog{}, false
}

type testServer struct {
	router    *gin.Engine
	store     *repository.Store
	auditLogs *recordingAuditLogs
	uploadDir string
}

func testConfig(uploadDir string) *config.Config {
	return &config.Config{
		Environment: "test",
		Server:      config.ServerConfig{Port: "5000"},
		JWT: config.JWTConfig{
			AccessTokenTTL: 1,
			Issuer:         "karya-desa",
		},
		RateLimit: config.RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
			AuthPerMinute:     1000,
			UploadsPerMinute:  1000,
		},
		AWS:       config.AWSConfig{UploadDir: uploadDir},
		Telemetry: config.TelemetryConfig{Exporter: "none", ServiceName: "karya-desa-test"},
		I18n:      config.I18nConfig{DefaultLocale: "en"},
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploadDir := t.TempDir()
	cfg := testConfig(uploadDir)

	store := memory.NewStore()
	auditLogs := &recordingAuditLogs{}
	store.AuditLogs = auditLogs

	storage, err := services.NewStorageService(cfg.AWS, "http://localhost:5000")
	require.NoError(t, err)

	r, err := router.Initialize(store, cfg, router.Options{Storage: storage})
	require.NoError(t, err)

	return &testServer{
		router:    r,
		store:     store,
		auditLogs: auditLogs,
		uploadDir: uploadDir,
	}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type authBody struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// register creates an account and returns its token and id.
func (s *testServer) register(t *testing.T, name, email string, role models.UserRole) authBody {
	t.Helper()

	w := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
		"role":     string(role),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body authBody
	decode(t, w, &body)
	require.NotEmpty(t, body.Token)
	return body
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}
