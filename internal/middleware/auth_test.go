package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protected(t *testing.T) (http.Handler, *UserClaims) {
	var captured UserClaims
	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetUserFromContext(r)
		require.True(t, ok)
		captured = claims
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &captured
}

func TestAuth_ValidToken(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", testSecret)
	handler, captured := protected(t)

	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "7",
		"email":   "ops@example.com",
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", captured.UserID)
	assert.Equal(t, "ops@example.com", captured.Email)
	assert.Equal(t, "admin", captured.Role)
}

func TestAuth_MissingHeader(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", testSecret)
	handler, _ := protected(t)

	req := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", testSecret)
	handler, _ := protected(t)

	req := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", testSecret)
	handler, _ := protected(t)

	token := signToken(t, "other-secret", jwt.MapClaims{
		"email": "ops@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", testSecret)
	handler, _ := protected(t)

	token := signToken(t, testSecret, jwt.MapClaims{
		"email": "ops@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
