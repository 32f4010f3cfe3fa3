package handlers

import (
	"net/http"
)

// Health reports component health
// @Summary Health check
// @Description Returns the health of the document store and the Redis mirror
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{} "All components healthy"
// @Failure 503 {object} map[string]interface{} "One or more components unhealthy"
// @Router /health [get]
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	components := map[string]string{}
	healthy := true

	if err := h.storage.Health(r.Context()); err != nil {
		components["storage"] = err.Error()
		healthy = false
	} else {
		components["storage"] = "ok"
	}

	if h.redis != nil {
		if err := h.redis.Health(); err != nil {
			components["redis"] = err.Error()
			healthy = false
		} else {
			components["redis"] = "ok"
		}
	} else {
		components["redis"] = "disabled"
	}

	status := http.StatusOK
	state := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "unhealthy"
	}

	h.respondJSON(w, status, map[string]interface{}{
		"status":     state,
		"components": components,
	})
}
