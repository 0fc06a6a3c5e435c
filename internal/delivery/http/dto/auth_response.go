package dto

import "time"

type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int             `json:"expires_in"`
	User        ProfileResponse `json:"user"`
}

func NewAuthResponse(tok string, expiresIn time.Duration, user ProfileResponse) AuthResponse {
	return AuthResponse{
		AccessToken: tok,
		TokenType:   "bearer",
		ExpiresIn:   int(expiresIn.Seconds()),
		User:        user,
	}
}
