package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuttlehub/club-system/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func doRequest(handler http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateValidToken(t *testing.T) {
	auth := NewAuthenticator(testSecret)
	var gotUserID int
	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := UserIDFromContext(r.Context())
		require.NoError(t, err)
		gotUserID = id
	}))

	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  float64(42),
		"role": "organizer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	rec := doRequest(handler, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 42, gotUserID)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	auth := NewAuthenticator(testSecret)
	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	assert.Equal(t, http.StatusUnauthorized, doRequest(handler, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(handler, "garbage").Code)

	wrongKey := signToken(t, "other-secret", jwt.MapClaims{"sub": float64(1), "exp": time.Now().Add(time.Hour).Unix()})
	assert.Equal(t, http.StatusUnauthorized, doRequest(handler, wrongKey).Code)

	expired := signToken(t, testSecret, jwt.MapClaims{"sub": float64(1), "exp": time.Now().Add(-time.Hour).Unix()})
	assert.Equal(t, http.StatusUnauthorized, doRequest(handler, expired).Code)
}

func TestAuthorizeChecksRole(t *testing.T) {
	auth := NewAuthenticator(testSecret)
	handler := auth.Authenticate(
		auth.Authorize(models.RoleOrganizer)(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	organizer := signToken(t, testSecret, jwt.MapClaims{
		"sub": float64(1), "role": "organizer", "exp": time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusOK, doRequest(handler, organizer).Code)

	member := signToken(t, testSecret, jwt.MapClaims{
		"sub": float64(2), "role": "member", "exp": time.Now().Add(time.Hour).Unix(),
	})
	assert.Equal(t, http.StatusForbidden, doRequest(handler, member).Code)
}
