// Package pkg provides shared types and constants for the paste API.
package pkg

// Route constants.
const (
	// PastePath is the collection path for pastes.
	PastePath = "/api/paste"

	// PasteByIDPath resolves a single paste by its public identifier.
	PasteByIDPath = PastePath + "/:pasteId"

	// HealthCheckPath is the static liveness endpoint.
	HealthCheckPath = "/health_check"

	LivezPath   = "/livez"
	ReadyzPath  = "/readyz"
	MetricsPath = "/metrics"
)
