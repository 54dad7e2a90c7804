package handlers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/breakshot/backend/internal/config"
)

// SessionClaims binds a WebSocket credential to one session.
type SessionClaims struct {
	SessionToken string `json:"session_token"`
	DisplayName  string `json:"display_name"`
	jwt.RegisteredClaims
}

// IssueSessionJWT signs a short-lived token that authorizes the WebSocket
// upgrade for a single session.
func IssueSessionJWT(cfg *config.Config, sessionToken, displayName string) (string, error) {
	expiry := time.Duration(cfg.SessionExpiryMinutes) * time.Minute
	claims := SessionClaims{
		SessionToken: sessionToken,
		DisplayName:  displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseSessionJWT validates a session credential and returns its claims.
func ParseSessionJWT(cfg *config.Config, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
