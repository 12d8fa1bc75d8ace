package dto

import "time"

// HealthResponse answers liveness probes.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// APIInfoResponse is served at the root path.
type APIInfoResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Health  string `json:"health"`
}
