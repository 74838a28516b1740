package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestI18nMiddlewareSelectsLanguage(t *testing.T) {
	router := gin.New()
	router.Use(I18nMiddleware("en"))
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, utils.GetLangFromContext(c))
	})

	cases := map[string]string{
		"":                          "en",
		"id-ID,id;q=0.9,en;q=0.8":   "id",
		"en-US,en;q=0.9":            "en",
		"fr-FR,fr;q=0.9":            "en",
		"fr;q=0.9, id;q=0.8":        "id",
		"not a valid header;;;q=x,": "en",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Accept-Language", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Body.String(), header)
	}
}

func TestI18nMiddlewareDefaultLocale(t *testing.T) {
	router := gin.New()
	router.Use(I18nMiddleware("id"))
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, utils.GetLangFromContext(c))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "id", w.Body.String())
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	router := gin.New()
	router.Use(PerMinute(2).Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

type recordingAuditLogs struct {
	mu      sync.Mutex
	entries []*models.AuditLog
}

func (r *recordingAuditLogs) Create(_ context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func TestAuditLogRecordsMutations(t *testing.T) {
	logs := &recordingAuditLogs{}
	userID := uuid.New()

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(utils.ContextKeyUserID, userID)
		c.Next()
	}, AuditLogMiddleware(logs))
	router.GET("/products", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.DELETE("/products/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	productID := uuid.New()
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/products", nil),
		httptest.NewRequest(http.MethodDelete, "/products/"+productID.String(), nil),
	} {
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Len(t, logs.entries, 1)
	entry := logs.entries[0]
	assert.Equal(t, "DELETE /products/:id", entry.Action)
	assert.Equal(t, "products", entry.ResourceType)
	assert.Equal(t, http.StatusNoContent, entry.StatusCode)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, userID, *entry.UserID)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, productID, *entry.ResourceID)
}
