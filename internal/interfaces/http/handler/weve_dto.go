package handler

import "time"

// =====================
// Weve Request DTOs
// =====================

// WeveLoginRequest represents the request body for logging in to Weve
type WeveLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// WeveValidateRequest represents the request body for probing Weve credentials
type WeveValidateRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// =====================
// Weve Response DTOs
// =====================

// WeveSessionResponse represents the active Weve session
type WeveSessionResponse struct {
	LoggedIn  bool       `json:"loggedIn"`
	UserID    int64      `json:"userId,omitempty"`
	UserName  string     `json:"userName,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// WeveValidateResponse reports whether the probed credentials are valid
type WeveValidateResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}
