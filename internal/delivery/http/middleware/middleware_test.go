package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zordhalo/lontario-YC-sub000/internal/delivery/http/middleware"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/pkg/security"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const secret = "super-secret-jwt-key"

func init() {
	gin.SetMode(gin.TestMode)
}

func signHS256(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newSecLog() (*security.SecurityLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return security.WithZap(zap.New(core), "test", "test"), logs
}

func TestAuthMiddleware(t *testing.T) {
	secLog, logs := newSecLog()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/me", middleware.AuthMiddleware(nil, secret, secLog), func(c *gin.Context) {
		ctxUser, _ := c.Request.Context().Value(domain.KeyUserID).(string)
		c.JSON(http.StatusOK, gin.H{
			"user":     c.GetString(string(domain.KeyUserID)),
			"ctx_user": ctxUser,
			"role":     c.GetString(string(domain.KeyUserRole)),
		})
	})
	r.GET("/admin", middleware.AuthMiddleware(nil, secret, secLog), middleware.RequireRole(secLog, domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	get := func(path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("Should reject a request without a token", func(t *testing.T) {
		w := get("/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, 1, logs.FilterMessage(string(security.EventTokenMissing)).Len())
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		token := signHS256(t, jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(-time.Minute).Unix()})
		w := get("/me", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should put the user into gin and the request context", func(t *testing.T) {
		token := signHS256(t, jwt.MapClaims{
			"sub":   "user-1",
			"email": "rec@example.com",
			"role":  "authenticated",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})
		w := get("/me", token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user":"user-1","ctx_user":"user-1","role":"recruiter"}`, w.Body.String())
	})

	t.Run("Should enforce the role from app_metadata", func(t *testing.T) {
		recruiter := signHS256(t, jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix()})
		assert.Equal(t, http.StatusForbidden, get("/admin", recruiter).Code)
		assert.Equal(t, 1, logs.FilterMessage(string(security.EventForbidden)).Len())

		admin := signHS256(t, jwt.MapClaims{
			"sub":          "user-2",
			"exp":          time.Now().Add(time.Hour).Unix(),
			"app_metadata": map[string]interface{}{"role": "admin"},
		})
		assert.Equal(t, http.StatusNoContent, get("/admin", admin).Code)
	})
}

func TestRateLimiterInMemory(t *testing.T) {
	secLog, logs := newSecLog()
	rl := middleware.NewRateLimiter(nil, secLog)
	defer rl.Stop()

	r := gin.New()
	r.GET("/score", rl.Middleware(middleware.AITier(2, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/score", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("Should allow requests up to the limit", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, hit("10.0.0.1").Code)
		w := hit("10.0.0.1")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Should return 429 with Retry-After past the limit", func(t *testing.T) {
		w := hit("10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Equal(t, 1, logs.FilterMessage(string(security.EventRateLimitTriggered)).Len())
	})

	t.Run("Should count callers separately", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, hit("10.0.0.2").Code)
	})
}
