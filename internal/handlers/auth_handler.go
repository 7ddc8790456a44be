package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fillratedash/internal/middleware"
	"fillratedash/internal/models"
	"fillratedash/internal/services"
)

type AuthHandler struct {
	otpService *services.OTPService
	secret     []byte
}

func NewAuthHandler(otpService *services.OTPService, sessionSecret string) *AuthHandler {
	return &AuthHandler{otpService: otpService, secret: []byte(sessionSecret)}
}

// @Summary      Request a login OTP
// @Description  Emails a one-time passcode to a corporate address
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.SendOTPRequest  true  "Email address"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/send-otp [post]
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req models.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		return
	}

	email, err := h.otpService.RequestCode(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAddress):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
		case errors.Is(err, services.ErrForbiddenDomain):
			c.JSON(http.StatusForbidden, gin.H{
				"error": fmt.Sprintf("Only @%s email addresses are allowed", h.otpService.Domain),
			})
		case errors.Is(err, services.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Too many OTP requests. Maximum %d requests per hour allowed.", services.MaxOTPRequestsPerHour),
			})
		case errors.Is(err, services.ErrDeliveryFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		default:
			log.Printf("[auth][send-otp] internal error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":           "OTP sent successfully",
		"email":             email,
		"valid_for_minutes": int(services.OTPValidity / time.Minute),
	})
}

// @Summary      Verify an OTP and establish a session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.VerifyOTPRequest  true  "Email and OTP"
// @Success      200      {object}  map[string]interface{}
// @Failure      401      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      410      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Router       /api/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and OTP are required"})
		return
	}

	email, err := h.otpService.VerifyCode(req.Email, req.OTP)
	if err != nil {
		var invalidCode *services.InvalidCodeError
		switch {
		case errors.Is(err, services.ErrInvalidAddress):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and OTP are required"})
		case errors.Is(err, services.ErrForbiddenDomain):
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized email domain"})
		case errors.Is(err, services.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed login attempts. Please try again later."})
		case errors.Is(err, services.ErrNoActiveChallenge):
			c.JSON(http.StatusNotFound, gin.H{"error": "No OTP found. Please request a new one."})
		case errors.Is(err, services.ErrChallengeExpired):
			c.JSON(http.StatusGone, gin.H{"error": "OTP has expired. Please request a new one."})
		case errors.Is(err, services.ErrAttemptsExhausted):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Maximum OTP attempts exceeded. Please request a new one."})
		case errors.As(err, &invalidCode):
			if invalidCode.Remaining > 0 {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": fmt.Sprintf("Invalid OTP. %d attempts remaining.", invalidCode.Remaining),
				})
			} else {
				c.JSON(http.StatusTooManyRequests, gin.H{
					"error": "Invalid OTP. Maximum attempts exceeded. Please request a new OTP.",
				})
			}
		default:
			log.Printf("[auth][verify-otp] internal error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	loginAt := time.Now()
	token, err := middleware.NewSessionToken(h.secret, email, loginAt)
	if err != nil {
		log.Printf("[auth][verify-otp] sign session token failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.SetCookie(middleware.SessionCookie, token, int(middleware.SessionDuration/time.Second), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"message":                "Login successful",
		"user_email":             email,
		"session_duration_hours": int(middleware.SessionDuration / time.Hour),
	})
}

// Logout is idempotent: clearing an absent session is still a success.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) VerifySession(c *gin.Context) {
	tokenStr, err := c.Cookie(middleware.SessionCookie)
	if err != nil || tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": "No active session"})
		return
	}

	claims, err := middleware.ParseSessionToken(h.secret, tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": "No active session"})
		return
	}

	age := middleware.SessionAge(claims, time.Now())
	if age >= middleware.SessionDuration {
		middleware.ClearSessionCookie(c)
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": "Session expired"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":                  true,
		"user_email":             claims.Email,
		"time_remaining_minutes": int((middleware.SessionDuration - age) / time.Minute),
	})
}
