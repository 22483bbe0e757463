package handlers

import (
	"net/http"

	"github.com/ramonehamilton/helldivers-loadout/internal/api/response"
	"github.com/ramonehamilton/helldivers-loadout/internal/metrics"
	"github.com/ramonehamilton/helldivers-loadout/internal/version"
)

// SystemHandler handles system-related API requests.
type SystemHandler struct {
	metrics *metrics.RollMetrics
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(m *metrics.RollMetrics) *SystemHandler {
	return &SystemHandler{metrics: m}
}

// GetMetrics returns roll counters and latency percentiles.
func (h *SystemHandler) GetMetrics(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, h.metrics.GetStats())
}

// GetVersion returns the application version.
func (h *SystemHandler) GetVersion(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"version": version.GetVersion(),
		"service": version.ServiceName,
	})
}
