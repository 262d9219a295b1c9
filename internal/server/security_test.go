package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_RejectsMissingKey(t *testing.T) {
	mw := AuthMiddleware("secret", nil, NewSuspiciousActivityDetector())
	h := mw(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/xp/grant", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RejectsWrongKey(t *testing.T) {
	mw := AuthMiddleware("secret", nil, NewSuspiciousActivityDetector())
	h := mw(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/xp/grant", nil)
	req.Header.Set(HeaderAPIKey, "nope")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_AcceptsCorrectKey(t *testing.T) {
	mw := AuthMiddleware("secret", nil, NewSuspiciousActivityDetector())
	h := mw(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/xp/grant", nil)
	req.Header.Set(HeaderAPIKey, "secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_PublicPathsBypassAuth(t *testing.T) {
	mw := AuthMiddleware("secret", nil, NewSuspiciousActivityDetector())
	h := mw(okHandler())

	for _, path := range PublicPaths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s should bypass auth", path)
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	mw := RequestSizeLimitMiddleware(16)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		_, err := r.Body.Read(buf)
		if err != nil && err.Error() == "http: request body too large" {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/xp/grant", strings.NewReader(strings.Repeat("x", 64)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestSecurityLoggingMiddleware_RateLimits(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	mw := SecurityLoggingMiddleware(nil, detector)
	h := mw(okHandler())

	var lastCode int
	for i := 0; i < RequestRateLimit+1; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/u/progression", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		lastCode = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestExtractIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:4321"
	req.Header.Set(HeaderForwardedFor, "1.2.3.4, 5.6.7.8")

	// Untrusted peer: forwarded header ignored
	assert.Equal(t, "192.168.1.5", extractIP(req, nil))

	// Trusted proxy: rightmost forwarded hop wins
	assert.Equal(t, "5.6.7.8", extractIP(req, []string{"192.168.1.5"}))
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	mw := SecurityHeadersMiddleware()
	h := mw(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
}
