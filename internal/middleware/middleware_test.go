package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/appointment-services/internal/domain/identity"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

type stubTokens map[string]identity.Actor

func (s stubTokens) Authenticate(_ context.Context, raw string) (identity.Actor, error) {
	if raw == "db-down" {
		return identity.Actor{}, errors.New("dial tcp: connection refused")
	}
	a, ok := s[raw]
	if !ok {
		return identity.Actor{}, httperr.ErrUnauthorized("invalid_token", "bad token")
	}
	return a, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user": c.GetString(ContextUserRole),
		})
	})
	return r
}

func do(r http.Handler, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	admin := identity.Admin(uuid.New())
	r := newRouter(AuthMiddleware(stubTokens{"good": admin}))

	assert.Equal(t, http.StatusUnauthorized, do(r, "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Authorization", "Token good").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Authorization", "Bearer bad").Code)

	assert.Equal(t, http.StatusInternalServerError, do(r, "Authorization", "Bearer db-down").Code)

	w := do(r, "Authorization", "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), models.RoleAdmin)
}

func TestRequireRole(t *testing.T) {
	tokens := stubTokens{
		"admin":  identity.Admin(uuid.New()),
		"client": identity.Client(uuid.New()),
	}
	r := newRouter(AuthMiddleware(tokens), RequireRole(models.RoleAdmin))

	assert.Equal(t, http.StatusOK, do(r, "Authorization", "Bearer admin").Code)
	assert.Equal(t, http.StatusForbidden, do(r, "Authorization", "Bearer client").Code)
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := do(r, RequestIDHeader, "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = do(r, "", "")
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := newRouter(RequestID(), AccessLog(logger))

	do(r, RequestIDHeader, "req-1")

	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Contains(t, buf.String(), `"status":200`)
	assert.Contains(t, buf.String(), `"route":"/ping"`)
}

func TestCORS(t *testing.T) {
	r := newRouter(CORSMiddleware([]string{"https://app.example.com"}))

	w := do(r, "Origin", "https://app.example.com")
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, "Origin", "https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimiter_InMemory(t *testing.T) {
	rl := NewRateLimiter(nil, 2, time.Minute, "login", nil)
	r := newRouter(rl.Middleware())

	assert.Equal(t, http.StatusOK, do(r, "", "").Code)
	assert.Equal(t, http.StatusOK, do(r, "", "").Code)

	w := do(r, "", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate_limited")
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(nil, 1, time.Second, "", nil)
	now := time.Now()

	assert.True(t, rl.allowLocal("1.2.3.4", now))
	assert.False(t, rl.allowLocal("1.2.3.4", now))
	assert.True(t, rl.allowLocal("5.6.7.8", now))
	assert.True(t, rl.allowLocal("1.2.3.4", now.Add(2*time.Second)))
}

func TestRateLimiter_EvictsExpiredVisitors(t *testing.T) {
	rl := NewRateLimiter(nil, 5, time.Second, "", nil)
	now := time.Now()

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		assert.True(t, rl.allowLocal(ip, now))
	}
	assert.Len(t, rl.visitors, 3)

	assert.True(t, rl.allowLocal("10.0.0.9", now.Add(3*time.Second)))
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.9")
}
