package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(1), 1)
	r := gin.New()
	r.Use(RateLimitMiddleware(limiter))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	rec1 := performRequest(r, http.MethodGet, "/", nil)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec1.Code)
	}

	rec2 := performRequest(r, http.MethodGet, "/", nil)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on rapid second request, got %d", rec2.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "headers") })

	rec := performRequest(r, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	required := []string{"X-Frame-Options", "X-Content-Type-Options", "Referrer-Policy"}
	for _, header := range required {
		if rec.Header().Get(header) == "" {
			t.Fatalf("expected header %s to be set", header)
		}
	}
}

func TestAdminKeyMiddleware(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sekret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash key: %v", err)
	}

	r := gin.New()
	r.Use(AdminKeyMiddleware(string(hash)))
	r.GET("/admin", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	if rec := performRequest(r, http.MethodGet, "/admin", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	if rec := performRequest(r, http.MethodGet, "/admin", map[string]string{"X-Admin-Key": "wrong"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", rec.Code)
	}

	if rec := performRequest(r, http.MethodGet, "/admin", map[string]string{"X-Admin-Key": "sekret"}); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with correct key, got %d", rec.Code)
	}

	if rec := performRequest(r, http.MethodGet, "/admin?admin_key=sekret", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with query key, got %d", rec.Code)
	}
}

func TestAdminKeyMiddlewareRejectsWhenUnconfigured(t *testing.T) {
	r := gin.New()
	r.Use(AdminKeyMiddleware(""))
	r.GET("/admin", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	if rec := performRequest(r, http.MethodGet, "/admin", map[string]string{"X-Admin-Key": ""}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when no hash is configured, got %d", rec.Code)
	}
}
