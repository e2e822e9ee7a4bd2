package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is a verified identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is issued on sign-in.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Claims are the access token claims. Subject holds the identity id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
