package utils

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/pau-arandia/goblog/config"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "session"

// sessionClaims is the full content of a session: a single user id plus the
// registered issue/expiry claims. The token is signed, never encrypted, and
// lives only on the client.
type sessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// SignSession produces the signed session token for a user id.
func SignSession(userID uint) (string, error) {
	cfg := config.Get()

	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.SessionTTLHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SessionSecret))
}

// ParseSession validates a session token and returns the user id it carries.
func ParseSession(tokenStr string) (uint, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.SessionSecret), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return 0, errors.New("invalid session claims")
	}

	return claims.UserID, nil
}

// SetSession writes a fresh session cookie for the user, replacing whatever
// session state the client previously held.
func SetSession(ctx *gin.Context, userID uint) error {
	token, err := SignSession(userID)
	if err != nil {
		return err
	}

	cfg := config.Get()
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookie, token, cfg.SessionTTLHours*3600, "/", "", false, true)
	return nil
}

// ClearSession removes the session cookie. Safe to call with no session
// present.
func ClearSession(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// ReadSession resolves the request's session cookie to a user id. A missing,
// tampered, or expired cookie reads as no session.
func ReadSession(ctx *gin.Context) (uint, bool) {
	token, err := ctx.Cookie(SessionCookie)
	if err != nil || token == "" {
		return 0, false
	}
	userID, err := ParseSession(token)
	if err != nil {
		return 0, false
	}
	return userID, true
}
