package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-auth-api/internal/domain"
	jwtinfra "github.com/go-auth-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func protectedHandler(t *testing.T, want domain.SessionPayload) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := PayloadFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, want, payload)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidCookie(t *testing.T) {
	payload := domain.SessionPayload{UserID: "u1", Email: "a@example.com"}
	signed, err := jwtinfra.Sign(payload, "1h", testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signed.Token})
	rec := httptest.NewRecorder()

	Auth(testSecret)(protectedHandler(t, payload)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_MissingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })
	Auth(testSecret)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), `"errorCode":401`)
}

func TestAuth_InvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	rec := httptest.NewRecorder()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { t.Fatal("must not be called") })
	Auth(testSecret)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	signed, err := jwtinfra.Sign(domain.SessionPayload{UserID: "u1"}, "1h", "other-secret")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: signed.Token})
	rec := httptest.NewRecorder()

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { t.Fatal("must not be called") })
	Auth(testSecret)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
