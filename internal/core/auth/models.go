package auth

import "time"

// AdminUsername is the subject of every token the service issues.
const AdminUsername = "admin"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// APIKey is a freshly generated key and the hash to configure for it. The
// key itself is shown once and never stored.
type APIKey struct {
	Key  string `json:"key"`
	Hash string `json:"hash"`
}
