package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HealthStatus represents the overall health of the system
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentStatus represents the health of an individual component
type ComponentStatus string

const (
	ComponentStatusUp   ComponentStatus = "up"
	ComponentStatusDown ComponentStatus = "down"
)

// Health represents the complete health check response
type Health struct {
	Status     HealthStatus               `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents the health of a single system component
type ComponentHealth struct {
	Status  ComponentStatus `json:"status"`
	Message string          `json:"message,omitempty"`
	Details interface{}     `json:"details,omitempty"`
}

// StorageDetails provides additional storage health information
type StorageDetails struct {
	Root      string `json:"root"`
	FileCount int    `json:"file_count"`
}

// handleHealth provides a health check endpoint. The only component
// is the storage root: it must exist, be listable, and be writable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := Health{
		Timestamp:  time.Now().UTC(),
		Components: map[string]ComponentHealth{"storage": s.checkStorageHealth()},
	}

	health.Status = HealthStatusHealthy
	statusCode := http.StatusOK
	for _, component := range health.Components {
		if component.Status == ComponentStatusDown {
			health.Status = HealthStatusUnhealthy
			statusCode = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(health)
}

// checkStorageHealth verifies the storage root is listable and writable.
func (s *Server) checkStorageHealth() ComponentHealth {
	entries, err := s.store.List()
	if err != nil {
		return ComponentHealth{
			Status:  ComponentStatusDown,
			Message: "storage root not listable: " + err.Error(),
		}
	}

	// Probe writability with a hidden temp file; hidden entries never
	// appear in listings.
	probe := filepath.Join(s.store.Root(), ".health-probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return ComponentHealth{
			Status:  ComponentStatusDown,
			Message: "storage root not writable: " + err.Error(),
		}
	}
	_ = os.Remove(probe)

	return ComponentHealth{
		Status:  ComponentStatusUp,
		Message: "storage healthy",
		Details: StorageDetails{
			Root:      s.store.Root(),
			FileCount: len(entries),
		},
	}
}

// handleMetrics exposes the server counters as JSON.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(s.metrics.Snapshot())
}
