package models

// UserSession is an authenticated user's session as carried by the
// session cookie middleware.
type UserSession struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}

// SignUpRequest is the payload for creating an account.
type SignUpRequest struct {
	Email          string `json:"email" binding:"required,email,max=255"`
	Password       string `json:"password" binding:"required,min=8,max=72"`
	Name           string `json:"name" binding:"required,min=2,max=100"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// AuthResponse is returned after signup or login.
type AuthResponse struct {
	Success bool         `json:"success"`
	Session *UserSession `json:"session,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// SessionResponse describes the current session plus whether the
// user's profile has finished onboarding.
type SessionResponse struct {
	Authenticated   bool         `json:"authenticated"`
	Session         *UserSession `json:"session,omitempty"`
	ProfileComplete bool         `json:"profileComplete"`
}

// LogoutResponse is returned after logout.
type LogoutResponse struct {
	Success bool `json:"success"`
}
