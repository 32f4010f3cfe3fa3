package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"uiforge/internal/preview"
)

// Preview serves the sandboxed HTML rendering of a session's component
// @Summary Preview a session's component
// @Description Returns a self-contained HTML document rendering the component; embed it in a sandboxed iframe
// @Tags sessions
// @Produce html
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {string} string "HTML document"
// @Failure 400 {object} map[string]interface{} "Session has no component code"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /api/sessions/{id}/preview [get]
func (h *Handlers) Preview(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	sessionID := mux.Vars(r)["id"]

	session, err := h.loadSession(r, sessionID, id.UserID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	doc, err := preview.Render(session)
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// The document runs untrusted generated code; keep it in a sandbox
	// with no same-origin access.
	w.Header().Set("Content-Security-Policy", "sandbox allow-scripts")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Write(doc)
}
