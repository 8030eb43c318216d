package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "label-42")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "label-42", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "label-42", w.Body.String())
}

func TestClientRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewClientRateLimiter(NewRateLimiterConfig(2, 60))
	router := gin.New()
	router.Use(rl.Middleware())
	router.POST("/print", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/print", nil)
		req.RemoteAddr = ip + ":50000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	w := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code, "clients are limited separately")
	assert.Equal(t, 2, rl.Clients())
}

func TestClientRateLimiter_Cleanup(t *testing.T) {
	rl := NewClientRateLimiter(NewRateLimiterConfig(30, 60))
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(5 * time.Minute)
	rl.getLimiter("10.0.0.2")
	now = now.Add(6 * time.Minute)
	rl.cleanup()

	assert.Equal(t, 1, rl.Clients())
}

func TestNewRateLimiterConfig(t *testing.T) {
	cfg := NewRateLimiterConfig(30, 60)

	assert.InDelta(t, 0.5, cfg.RequestsPerSecond, 1e-9)
	assert.Equal(t, 30, cfg.BurstSize)
}
