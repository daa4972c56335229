package dto

import "time"

type SignUpRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse is the navigation gate: signed_in derives solely from the
// presence of the stored phone.
type SessionResponse struct {
	SignedIn bool   `json:"signed_in"`
	Phone    string `json:"phone,omitempty"`
	UserID   uint   `json:"user_id,omitempty"`
	DarkMode bool   `json:"dark_mode"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
