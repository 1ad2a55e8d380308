package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims are the JWT claims issued to a learner.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// GoogleUserInfo is the subset of the Google userinfo payload we consume.
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshRequest asks for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
