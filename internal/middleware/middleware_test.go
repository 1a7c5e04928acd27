package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AbhishekS200607/quickaid/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// Rate limiting
// ---------------------------------------------------------------------------

type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestLimiter(max int) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(max, 15*time.Minute, "Too many submissions. Please try again later.")
	rl.now = clock.Now
	return rl, clock
}

func TestRateLimiter_SixthRequestInWindowRejected(t *testing.T) {
	rl, clock := newTestLimiter(5)

	for i := 0; i < 5; i++ {
		allowed, _ := rl.Allow("10.0.0.1")
		assert.True(t, allowed, "request %d should pass", i+1)
		clock.Advance(time.Minute)
	}

	allowed, retryAfter := rl.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 10*time.Minute, retryAfter)

	clock.Advance(10 * time.Minute)
	allowed, _ = rl.Allow("10.0.0.1")
	assert.True(t, allowed, "a new window starts once the old one elapses")
}

func TestRateLimiter_ClientsAreIndependent(t *testing.T) {
	rl, _ := newTestLimiter(1)

	allowed, _ := rl.Allow("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = rl.Allow("10.0.0.1")
	assert.False(t, allowed)
	allowed, _ = rl.Allow("10.0.0.2")
	assert.True(t, allowed)
}

func TestRateLimiter_SweepDropsExpiredWindows(t *testing.T) {
	rl, clock := newTestLimiter(5)
	rl.Allow("a")
	rl.Allow("b")

	clock.Advance(16 * time.Minute)
	rl.Allow("c")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Len(t, rl.clients, 1)
	assert.Contains(t, rl.clients, "c")
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl, _ := newTestLimiter(2)
	r := gin.New()
	r.POST("/api/submit", rl.Middleware(), okHandler)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/submit", nil)
		req.RemoteAddr = "192.0.2.7:5555"
		assert.Equal(t, http.StatusOK, serve(r, req).Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/submit", nil)
	req.RemoteAddr = "192.0.2.7:5555"
	rec := serve(r, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Too many submissions. Please try again later."}`, rec.Body.String())
	assert.Equal(t, "901", rec.Header().Get("Retry-After"))
}

// ---------------------------------------------------------------------------
// CORS
// ---------------------------------------------------------------------------

func newCORSRouter() *gin.Engine {
	r := gin.New()
	r.Use(CORS([]string{"https://quickaid.example", " http://localhost:3000 "}))
	r.GET("/api/numbers", okHandler)
	return r
}

func TestCORS_AllowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/numbers", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := serve(newCORSRouter(), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/numbers", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := serve(newCORSRouter(), req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_NoOriginPassesThrough(t *testing.T) {
	rec := serve(newCORSRouter(), httptest.NewRequest(http.MethodGet, "/api/numbers", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/numbers", nil)
	req.Header.Set("Origin", "https://quickaid.example")
	rec := serve(newCORSRouter(), req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://quickaid.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

// ---------------------------------------------------------------------------
// Admin auth
// ---------------------------------------------------------------------------

func newAuthRouter(jwtUtil *utils.JWTUtil, reached *bool) *gin.Engine {
	r := gin.New()
	r.GET("/api/admin/pending", AdminAuthMiddleware(jwtUtil), func(c *gin.Context) {
		*reached = true
		_, ok := c.Get(AdminClaimsKey)
		c.JSON(http.StatusOK, gin.H{"claims": ok})
	})
	return r
}

func TestAdminAuthMiddleware_ValidToken(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", time.Hour)
	token, err := jwtUtil.GenerateAdminToken()
	require.NoError(t, err)

	var reached bool
	req := httptest.NewRequest(http.MethodGet, "/api/admin/pending", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := serve(newAuthRouter(jwtUtil, &reached), req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.JSONEq(t, `{"claims":true}`, rec.Body.String())
}

func TestAdminAuthMiddleware_Rejects(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("secret", time.Hour)
	otherToken, err := utils.NewJWTUtil("other", time.Hour).GenerateAdminToken()
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", otherToken},
		{"basic scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not.a.token"},
		{"foreign secret", "Bearer " + otherToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			req := httptest.NewRequest(http.MethodGet, "/api/admin/pending", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(newAuthRouter(jwtUtil, &reached), req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, reached)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

// ---------------------------------------------------------------------------
// Body limit
// ---------------------------------------------------------------------------

func newBodyLimitRouter(limit int64) *gin.Engine {
	r := gin.New()
	r.POST("/echo", BodyLimit(limit), func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"limit": tooLarge.Limit})
			return
		}
		c.JSON(http.StatusOK, gin.H{"size": len(body)})
	})
	return r
}

func TestBodyLimit_WithinLimit(t *testing.T) {
	rec := serve(newBodyLimitRouter(16), httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"a":"b"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBodyLimit_DeclaredLengthRejectedUpFront(t *testing.T) {
	rec := serve(newBodyLimitRouter(16), httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 17))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"error":"Request body too large"}`, rec.Body.String())
}

func TestBodyLimit_UnknownLengthCutOffWhileReading(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(strings.Repeat("x", 64)))
	req.ContentLength = -1

	rec := serve(newBodyLimitRouter(16), req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.JSONEq(t, `{"limit":16}`, rec.Body.String())
}

func TestBodyLimit_DefaultsWhenUnset(t *testing.T) {
	body := strings.Repeat("x", int(DefaultMaxBodyBytes)+1)
	rec := serve(newBodyLimitRouter(0), httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
