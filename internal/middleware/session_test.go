package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-session-secret")

func guardedRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", SessionGuard(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("user_email")})
	})
	return r
}

func requestWithToken(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSessionTokenRoundTrip(t *testing.T) {
	loginAt := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	token, err := NewSessionToken(testSecret, "alice@meridianfoods.in", loginAt)
	require.NoError(t, err)

	claims, err := ParseSessionToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "alice@meridianfoods.in", claims.Email)
	assert.Equal(t, loginAt.Unix(), claims.LoginAt)
	assert.Len(t, claims.SessionID, 64)
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewSessionToken(testSecret, "alice@meridianfoods.in", time.Now())
	require.NoError(t, err)

	_, err = ParseSessionToken([]byte("other-secret"), token)
	assert.Error(t, err)
}

func TestSessionGuardNoCookie(t *testing.T) {
	r := guardedRouter(testSecret)
	rec := requestWithToken(r, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication required")
}

func TestSessionGuardGarbageToken(t *testing.T) {
	r := guardedRouter(testSecret)
	rec := requestWithToken(r, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionGuardFreshSessionPasses(t *testing.T) {
	r := guardedRouter(testSecret)
	token, err := NewSessionToken(testSecret, "alice@meridianfoods.in", time.Now())
	require.NoError(t, err)

	rec := requestWithToken(r, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice@meridianfoods.in")
}

func TestSessionGuardExpiryBoundary(t *testing.T) {
	r := guardedRouter(testSecret)

	// Just inside the window.
	token, err := NewSessionToken(testSecret, "alice@meridianfoods.in", time.Now().Add(-SessionDuration+time.Minute))
	require.NoError(t, err)
	rec := requestWithToken(r, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Just past it.
	token, err = NewSessionToken(testSecret, "alice@meridianfoods.in", time.Now().Add(-SessionDuration-time.Minute))
	require.NoError(t, err)
	rec = requestWithToken(r, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Session expired")
}
