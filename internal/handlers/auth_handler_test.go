package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillratedash/internal/middleware"
	"fillratedash/internal/services"
	"fillratedash/internal/store/memory"
)

const testSessionSecret = "handler-test-secret"

type recordingSender struct {
	lastCode string
}

func (r *recordingSender) SendOTPEmail(_, code string, _ time.Duration) error {
	r.lastCode = code
	return nil
}

func newAuthRouter(t *testing.T) (*gin.Engine, *recordingSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sender := &recordingSender{}
	otpService := services.NewOTPService(memory.NewStore(), sender, "meridianfoods.in")
	h := NewAuthHandler(otpService, testSessionSecret)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/send-otp", h.SendOTP)
	api.POST("/verify-otp", h.VerifyOTP)
	api.POST("/logout", h.Logout)
	api.GET("/verify-session", h.VerifySession)
	api.GET("/reasons", middleware.SessionGuard([]byte(testSessionSecret)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"reasons": services.NonFulfillmentReasons})
	})
	return r, sender
}

func postJSON(r *gin.Engine, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func getPath(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestSendOTPValidation(t *testing.T) {
	r, _ := newAuthRouter(t)

	rec := postJSON(r, "/api/send-otp", gin.H{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(r, "/api/send-otp", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email format")

	rec = postJSON(r, "/api/send-otp", gin.H{"email": "alice@gmail.com"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "meridianfoods.in")
}

func TestSendOTPRateLimitResponse(t *testing.T) {
	r, _ := newAuthRouter(t)

	for i := 0; i < services.MaxOTPRequestsPerHour; i++ {
		rec := postJSON(r, "/api/send-otp", gin.H{"email": "alice@meridianfoods.in"})
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := postJSON(r, "/api/send-otp", gin.H{"email": "alice@meridianfoods.in"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many OTP requests")
}

func TestVerifyOTPErrorMapping(t *testing.T) {
	r, sender := newAuthRouter(t)

	rec := postJSON(r, "/api/verify-otp", gin.H{"email": "alice@meridianfoods.in"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(r, "/api/verify-otp", gin.H{"email": "alice@gmail.com", "otp": "123456"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = postJSON(r, "/api/verify-otp", gin.H{"email": "alice@meridianfoods.in", "otp": "123456"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No OTP found")

	require.Equal(t, http.StatusOK, postJSON(r, "/api/send-otp", gin.H{"email": "alice@meridianfoods.in"}).Code)
	wrong := "000000"
	if wrong == sender.lastCode {
		wrong = "000001"
	}
	rec = postJSON(r, "/api/verify-otp", gin.H{"email": "alice@meridianfoods.in", "otp": wrong})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "2 attempts remaining")
}

func TestLoginFlowAndGuardedRoute(t *testing.T) {
	r, sender := newAuthRouter(t)

	// Guard rejects unauthenticated access.
	rec := getPath(r, "/api/reasons")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	require.Equal(t, http.StatusOK, postJSON(r, "/api/send-otp", gin.H{"email": "alice@meridianfoods.in"}).Code)

	rec = postJSON(r, "/api/verify-otp", gin.H{"email": "alice@meridianfoods.in", "otp": sender.lastCode})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Login successful")
	ck := sessionCookie(t, rec)

	rec = getPath(r, "/api/reasons", ck)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PO price issue")

	rec = getPath(r, "/api/verify-session", ck)
	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, "alice@meridianfoods.in", body["user_email"])
}

func TestVerifySessionStates(t *testing.T) {
	r, _ := newAuthRouter(t)

	rec := getPath(r, "/api/verify-session")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No active session")

	expired, err := middleware.NewSessionToken([]byte(testSessionSecret), "alice@meridianfoods.in",
		time.Now().Add(-middleware.SessionDuration-time.Minute))
	require.NoError(t, err)
	rec = getPath(r, "/api/verify-session", &http.Cookie{Name: middleware.SessionCookie, Value: expired})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Session expired")
}

func TestLogoutIsIdempotent(t *testing.T) {
	r, _ := newAuthRouter(t)

	for i := 0; i < 2; i++ {
		rec := postJSON(r, "/api/logout", nil)
		require.Equal(t, http.StatusOK, rec.Code, fmt.Sprintf("logout attempt %d", i+1))
		assert.Contains(t, rec.Body.String(), "Logged out successfully")
	}
}
