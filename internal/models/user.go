package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWT claims structure. The gateway never issues tokens; it only verifies the
// ones the auth provider handed to the browser.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
