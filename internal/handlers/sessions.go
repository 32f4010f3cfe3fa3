package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"uiforge/internal/common/pagination"
	"uiforge/internal/common/validation"
	"uiforge/internal/storage"
)

const (
	maxTitleLength   = 200
	maxContentLength = 32 * 1024
	maxCodeLength    = 256 * 1024
)

type createSessionRequest struct {
	Title       string                 `json:"title"`
	EditorState map[string]interface{} `json:"editor_state"`
}

type updateSessionRequest struct {
	Title       *string                 `json:"title"`
	Code        *storage.ComponentCode  `json:"code"`
	EditorState *map[string]interface{} `json:"editor_state"`
}

type appendMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ListSessions returns a page of the caller's sessions
// @Summary List sessions
// @Description Returns the caller's sessions ordered by last update, newest first
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param per_page query int false "Items per page (default 20, max 100)"
// @Success 200 {object} pagination.Response[storage.Session]
// @Router /api/sessions [get]
func (h *Handlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	params := pagination.ParseParams(r)
	sessions, total, err := h.storage.ListSessions(r.Context(), id.UserID, params.Limit, params.Offset)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, pagination.NewResponse(sessions, params.Page, params.PerPage, total))
}

// CreateSession creates an empty session
// @Summary Create a session
// @Description Creates a new session with an optional title and editor state
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createSessionRequest true "Initial session fields"
// @Success 201 {object} storage.Session
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Router /api/sessions [post]
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	if err := validation.NewValidator().MaxLength(req.Title, "title", maxTitleLength).Err(); err != nil {
		h.respondError(w, err)
		return
	}

	session := &storage.Session{
		UserID:      id.UserID,
		Title:       req.Title,
		EditorState: req.EditorState,
	}
	created, err := h.storage.CreateSession(r.Context(), session)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.cache.Put(r.Context(), created)
	h.respondJSON(w, http.StatusCreated, created)
}

// GetSession returns one session
// @Summary Get a session
// @Description Returns the full session document: transcript, component code and editor state
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} storage.Session
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /api/sessions/{id} [get]
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
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
	h.respondJSON(w, http.StatusOK, session)
}

// UpdateSession applies a partial update
// @Summary Update a session
// @Description Updates any of title, component code and editor state; omitted fields keep their value
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body updateSessionRequest true "Fields to update"
// @Success 200 {object} storage.Session
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /api/sessions/{id} [put]
func (h *Handlers) UpdateSession(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	sessionID := mux.Vars(r)["id"]

	var req updateSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	v := validation.NewValidator()
	if req.Title != nil {
		v.RequireString(*req.Title, "title").MaxLength(*req.Title, "title", maxTitleLength)
	}
	if req.Code != nil {
		v.MaxLength(req.Code.JSX, "code.jsx", maxCodeLength).MaxLength(req.Code.CSS, "code.css", maxCodeLength)
	}
	if err := v.Err(); err != nil {
		h.respondError(w, err)
		return
	}

	update := &storage.SessionUpdate{
		Title:       req.Title,
		Code:        req.Code,
		EditorState: req.EditorState,
	}
	updated, err := h.storage.UpdateSession(r.Context(), sessionID, id.UserID, update)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.cache.Put(r.Context(), updated)
	h.respondJSON(w, http.StatusOK, updated)
}

// DeleteSession moves a session to the trash
// @Summary Delete a session
// @Description Soft-deletes the session; the maintenance job purges it after the retention period
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /api/sessions/{id} [delete]
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	sessionID := mux.Vars(r)["id"]

	if err := h.storage.DeleteSession(r.Context(), sessionID, id.UserID); err != nil {
		h.respondError(w, err)
		return
	}

	h.cache.Invalidate(r.Context(), sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// AppendMessage adds one transcript message
// @Summary Append a message
// @Description Appends a message to the session transcript
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body appendMessageRequest true "Message"
// @Success 200 {object} storage.Session
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /api/sessions/{id}/messages [post]
func (h *Handlers) AppendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	sessionID := mux.Vars(r)["id"]

	var req appendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	v := validation.NewValidator().
		RequireOneOf(req.Role, []string{storage.RoleUser, storage.RoleAssistant}, "role").
		RequireString(req.Content, "content").
		MaxLength(req.Content, "content", maxContentLength)
	if err := v.Err(); err != nil {
		h.respondError(w, err)
		return
	}

	updated, err := h.storage.AppendMessage(r.Context(), sessionID, id.UserID, &storage.Message{
		Role:    req.Role,
		Content: req.Content,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.cache.Put(r.Context(), updated)
	h.respondJSON(w, http.StatusOK, updated)
}

// loadSession reads through the cache, falling back to storage and
// back-filling the cache on a miss.
func (h *Handlers) loadSession(r *http.Request, sessionID, userID string) (*storage.Session, error) {
	if session, found := h.cache.Get(r.Context(), sessionID, userID); found {
		return session, nil
	}

	session, err := h.storage.GetSession(r.Context(), sessionID, userID)
	if err != nil {
		return nil, err
	}
	h.cache.Put(r.Context(), session)
	return session, nil
}
