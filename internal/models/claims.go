package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the JWT payload issued at login and checked by the auth
// middleware. TokenVersion lets a logout invalidate every token issued
// before it.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion int    `json:"token_version"`
}
