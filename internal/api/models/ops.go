package models

import "time"

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	OK        bool      `json:"ok"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
