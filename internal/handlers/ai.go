package handlers

import (
	"net/http"
	"strings"

	"uiforge/internal/ai"
	"uiforge/internal/common/errors"
	"uiforge/internal/common/logging"
	"uiforge/internal/common/validation"
	"uiforge/internal/storage"
)

const (
	maxPromptLength = 8 * 1024
	maxTitleWords   = 12
)

type generateRequest struct {
	SessionID string `json:"session_id"`
	Prompt    string `json:"prompt"`
}

type refineRequest struct {
	SessionID   string `json:"session_id"`
	Instruction string `json:"instruction"`
}

type titleRequest struct {
	SessionID string `json:"session_id"`
}

type generateResponse struct {
	Code    storage.ComponentCode `json:"code"`
	Message storage.Message       `json:"message"`
	Session *storage.Session      `json:"session"`
}

// Generate produces component code from a prompt
// @Summary Generate a component
// @Description Appends the prompt to the transcript, asks the model for component code and stores the result on the session
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body generateRequest true "Session and prompt"
// @Success 200 {object} generateResponse
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Failure 502 {object} map[string]interface{} "Upstream failure"
// @Router /api/ai/generate [post]
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	v := validation.NewValidator().
		RequireString(req.SessionID, "session_id").
		RequireString(req.Prompt, "prompt").
		MaxLength(req.Prompt, "prompt", maxPromptLength)
	if err := v.Err(); err != nil {
		h.respondError(w, err)
		return
	}

	session, err := h.storage.GetSession(r.Context(), req.SessionID, id.UserID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	messages := ai.BuildGenerateMessages(session, req.Prompt)
	h.completeCodeRequest(w, r, session, id.UserID, req.Prompt, messages)
}

// Refine revises the session's current component code
// @Summary Refine the component
// @Description Sends the current code and a revision instruction to the model and stores the replacement source
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body refineRequest true "Session and instruction"
// @Success 200 {object} generateResponse
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Failure 502 {object} map[string]interface{} "Upstream failure"
// @Router /api/ai/refine [post]
func (h *Handlers) Refine(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req refineRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	v := validation.NewValidator().
		RequireString(req.SessionID, "session_id").
		RequireString(req.Instruction, "instruction").
		MaxLength(req.Instruction, "instruction", maxPromptLength)
	if err := v.Err(); err != nil {
		h.respondError(w, err)
		return
	}

	session, err := h.storage.GetSession(r.Context(), req.SessionID, id.UserID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if strings.TrimSpace(session.Code.JSX) == "" {
		h.respondError(w, errors.ValidationError("session has no component code to refine"))
		return
	}

	messages := ai.BuildRefineMessages(session, req.Instruction)
	h.completeCodeRequest(w, r, session, id.UserID, req.Instruction, messages)
}

// Title asks the model to name the session
// @Summary Suggest a session title
// @Description Asks the model for a short title based on the transcript and renames the session
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body titleRequest true "Session"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Failure 502 {object} map[string]interface{} "Upstream failure"
// @Router /api/ai/title [post]
func (h *Handlers) Title(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req titleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}
	if err := validation.NewValidator().RequireString(req.SessionID, "session_id").Err(); err != nil {
		h.respondError(w, err)
		return
	}

	session, err := h.storage.GetSession(r.Context(), req.SessionID, id.UserID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	content, err := h.ai.Complete(r.Context(), ai.BuildTitleMessages(session))
	if err != nil {
		h.respondError(w, err)
		return
	}

	var reply struct {
		Title string `json:"title"`
	}
	if !ai.ExtractJSON(content, &reply) || strings.TrimSpace(reply.Title) == "" {
		h.logger.Warn("upstream reply had no usable title",
			logging.Field{Key: "session_id", Value: session.ID},
			logging.String("reply", truncateForLog(content)))
		h.respondError(w, errors.UpstreamError("ai response contained no title", nil))
		return
	}

	title := clampTitle(reply.Title)
	updated, err := h.storage.UpdateSession(r.Context(), session.ID, id.UserID, &storage.SessionUpdate{Title: &title})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.cache.Put(r.Context(), updated)
	h.respondJSON(w, http.StatusOK, map[string]string{"title": title})
}

// completeCodeRequest runs the shared generate/refine loop: persist the
// user's turn, call upstream, extract code, persist the assistant's turn
// and the new source.
func (h *Handlers) completeCodeRequest(w http.ResponseWriter, r *http.Request, session *storage.Session, userID, userContent string, messages []ai.ChatMessage) {
	// The user's turn is kept even if the upstream call fails, so the
	// transcript reflects what was asked.
	session, err := h.storage.AppendMessage(r.Context(), session.ID, userID, &storage.Message{
		Role:    storage.RoleUser,
		Content: userContent,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	content, err := h.ai.Complete(r.Context(), messages)
	if err != nil {
		h.cache.Put(r.Context(), session)
		h.respondError(w, err)
		return
	}

	code, ok := ai.ExtractCodeBlock(content)
	if !ok {
		h.logger.Warn("upstream reply had no usable code",
			logging.Field{Key: "session_id", Value: session.ID},
			logging.String("reply", truncateForLog(content)))
		h.cache.Put(r.Context(), session)
		h.respondError(w, errors.UpstreamError("ai response contained no component code", nil))
		return
	}

	session, err = h.storage.AppendMessage(r.Context(), session.ID, userID, &storage.Message{
		Role:    storage.RoleAssistant,
		Content: content,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	newCode := storage.ComponentCode{JSX: code, CSS: session.Code.CSS}
	session, err = h.storage.UpdateSession(r.Context(), session.ID, userID, &storage.SessionUpdate{Code: &newCode})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.cache.Put(r.Context(), session)
	h.respondJSON(w, http.StatusOK, generateResponse{
		Code:    session.Code,
		Message: session.Messages[len(session.Messages)-1],
		Session: session,
	})
}

func clampTitle(title string) string {
	title = strings.TrimSpace(title)
	words := strings.Fields(title)
	if len(words) > maxTitleWords {
		title = strings.Join(words[:maxTitleWords], " ")
	}
	if len(title) > maxTitleLength {
		title = title[:maxTitleLength]
	}
	return title
}

func truncateForLog(s string) string {
	if len(s) > 512 {
		return s[:512] + "..."
	}
	return s
}
