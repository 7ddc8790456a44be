package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionCookie   = "session"
	SessionDuration = 8 * time.Hour
)

// SessionClaims live inside the signed session cookie. Validity is judged
// from LoginAt against SessionDuration; SessionID is informational only
// (audit trail), never an authorization input.
type SessionClaims struct {
	Email     string `json:"email"`
	LoginAt   int64  `json:"login_at"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

func NewSessionToken(secret []byte, email string, loginAt time.Time) (string, error) {
	sid := sha256.Sum256([]byte(fmt.Sprintf("%s_%d", email, loginAt.Unix())))
	claims := &SessionClaims{
		Email:     email,
		LoginAt:   loginAt.Unix(),
		SessionID: hex.EncodeToString(sid[:]),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ParseSessionToken(secret []byte, tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// HMAC only; reject anything else outright.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Email == "" || claims.LoginAt == 0 {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// SessionAge returns how long ago the session logged in.
func SessionAge(claims *SessionClaims, now time.Time) time.Duration {
	return now.Sub(time.Unix(claims.LoginAt, 0))
}

func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// SessionGuard rejects requests without a valid, unexpired session and puts
// the authenticated address into the gin context as "user_email".
func SessionGuard(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := ParseSessionToken(secret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if SessionAge(claims, time.Now()) >= SessionDuration {
			ClearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			return
		}

		c.Set("user_email", claims.Email)
		c.Next()
	}
}
