package models

// LoginRequest is the request body for POST /admin/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the minted session token and its lifetime in seconds.
type LoginResponse struct {
	OK        bool   `json:"ok"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// LogoutResponse is the response body for POST /admin/logout.
type LogoutResponse struct {
	OK bool `json:"ok"`
}
