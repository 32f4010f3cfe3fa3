package handlers

import (
	"net/http"

	"uiforge/internal/auth"
	"uiforge/internal/common/logging"
	"uiforge/internal/common/validation"
	"uiforge/internal/storage"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string        `json:"token"`
	User  *storage.User `json:"user"`
}

// Register creates an account and signs the caller in
// @Summary Register a new account
// @Description Creates a user account and returns a token, also set as an HttpOnly cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Account details"
// @Success 201 {object} authResponse
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 409 {object} map[string]interface{} "Username or email already taken"
// @Router /api/auth/register [post]
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	v := validation.NewValidator().
		RequireUsername(req.Username, "username").
		RequireEmail(req.Email, "email").
		MinLength(req.Password, "password", 8).
		MaxLength(req.Password, "password", 72)
	if err := v.Err(); err != nil {
		h.respondError(w, err)
		return
	}

	token, user, err := h.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.logger.Info("account created", logging.Field{Key: "username", Value: user.Username})
	h.setTokenCookie(w, token)
	h.respondJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login checks credentials and returns a fresh token
// @Summary Log in
// @Description Validates credentials and returns a token, also set as an HttpOnly cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} authResponse
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Router /api/auth/login [post]
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	v := validation.NewValidator().
		RequireString(req.Username, "username").
		RequireString(req.Password, "password")
	if err := v.Err(); err != nil {
		h.respondError(w, err)
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.setTokenCookie(w, token)
	h.respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Logout clears the token cookie
// @Summary Log out
// @Description Clears the token cookie. Tokens are stateless, so clients should also discard theirs.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/auth/logout [post]
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated account
// @Summary Current account
// @Description Returns the account behind the presented token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} storage.User
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Router /api/auth/me [get]
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	user, err := h.storage.GetUser(r.Context(), id.UserID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, user)
}

func (h *Handlers) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.auth.TokenTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.config.TLSCert != "",
	})
}
