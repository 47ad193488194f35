package dto

import "time"

// PasswordLoginRequest payload.
type PasswordLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasscodeRequest payload.
type PasscodeRequest struct {
	Phone string `json:"phone"`
}

// PasscodeVerifyRequest payload.
type PasscodeVerifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// SessionResponse is the issued token plus the signed-in actor.
type SessionResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Actor     ActorResponse `json:"actor"`
}
