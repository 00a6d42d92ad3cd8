package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/skillswap/skillswap-backend/internal/pkg/apperror"
)

type stubAuth struct {
	valid  string
	userID uuid.UUID
}

func (s stubAuth) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	if token != s.valid {
		return uuid.Nil, apperror.New(apperror.ErrCodeUnauthorized, "Token is not valid")
	}
	return s.userID, nil
}

type stubMonitor struct{ up atomic.Bool }

func (m *stubMonitor) Connected() bool { return m.up.Load() }

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func echoUser(c *gin.Context) {
	id, ok := UserID(c)
	if !ok {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, id.String())
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := stubAuth{valid: "good", userID: uuid.New()}
	r := gin.New()
	r.GET("/me", AuthMiddleware(auth), echoUser)

	w := serve(r, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token, authorization denied", body(t, w)["message"])

	w = serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is not valid", body(t, w)["message"])

	w = serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer good"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, auth.userID.String(), w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := stubAuth{valid: "good", userID: uuid.New()}
	r := gin.New()
	r.GET("/skills", OptionalAuth(auth), echoUser)

	assert.Equal(t, "anonymous", serve(r, http.MethodGet, "/skills", nil).Body.String())
	assert.Equal(t, "anonymous", serve(r, http.MethodGet, "/skills", map[string]string{"Authorization": "Bearer bad"}).Body.String())
	assert.Equal(t, auth.userID.String(), serve(r, http.MethodGet, "/skills", map[string]string{"Authorization": "Bearer good"}).Body.String())
}

func TestRequireDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	monitor := &stubMonitor{}
	r := gin.New()
	r.GET("/api/skills", RequireDatabase(monitor), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/api/skills", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	b := body(t, w)
	assert.Equal(t, "Database connection unavailable. Please try again later.", b["message"])
	assert.Equal(t, "SERVICE_UNAVAILABLE", b["error"])
	assert.NotEmpty(t, b["details"])

	monitor.up.Store(true)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/skills", nil).Code)
}

func TestUUIDValidator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/match-requests/:id/accept", UUIDValidator("id"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodPut, "/match-requests/123/accept", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID_FORMAT", body(t, w)["error"])

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPut, "/match-requests/"+uuid.NewString()+"/accept", nil).Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:5173"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/x", map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/x", map[string]string{"Origin": "http://evil.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodOptions, "/x", map[string]string{"Origin": "http://localhost:5173"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestOriginAllowed(t *testing.T) {
	check := OriginAllowed([]string{"http://localhost:5173"})
	req := httptest.NewRequest(http.MethodGet, "/api/ws", nil)
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://localhost:5173")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://evil.example")
	assert.False(t, check(req))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimitMiddleware(memory.NewStore(), 2, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/login", nil).Code)
	w := serve(r, http.MethodPost, "/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/login", nil).Code)
}

func TestErrorHandler_FallbackBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(assert.AnError) })

	w := serve(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server error", body(t, w)["message"])
}
