package models

// RegisterTokenRequest is the request body for POST /api/register-push-token.
type RegisterTokenRequest struct {
	Token string `json:"token"`
}

// RegisterTokenResponse reports the registry size after registration, so a
// re-registered device can observe that it was deduplicated.
type RegisterTokenResponse struct {
	OK           bool `json:"ok"`
	TotalDevices int  `json:"totalDevices"`
}
