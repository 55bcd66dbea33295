package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/fuzzyshak/narah/internal/middleware"
	"github.com/fuzzyshak/narah/internal/models"
	"github.com/fuzzyshak/narah/internal/services"
)

// AuthHandler handles registration, sign-in and password reset requests.
type AuthHandler struct {
	authService services.AuthServiceInterface
	store       sessions.Store
	sessionName string
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService services.AuthServiceInterface, store sessions.Store, sessionName string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
		sessionName: sessionName,
	}
}

// Register creates a new account and signs it in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.storeSessionToken(w, r, resp.SessionID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// Login authenticates a user.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "sign-in failed, please try again")
		return
	}

	if err := h.storeSessionToken(w, r, resp.SessionID); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Logout destroys the current session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, h.sessionName)
	if err == nil {
		if token, ok := session.Values[middleware.SessionTokenKey].(string); ok && token != "" {
			_ = h.authService.Logout(token)
		}
		session.Options.MaxAge = -1
		_ = session.Save(r, w)
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// Me returns the current session user, or 401 when nobody is signed in.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ForgotPassword starts a password reset flow. The response is identical
// whether or not the email exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.RequestPasswordReset(req.Email); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "if an account exists for that email, a reset link has been sent",
	})
}

// ResetPassword completes a password reset with a token.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.CompletePasswordReset(req.Token, req.NewPassword); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

func (h *AuthHandler) storeSessionToken(w http.ResponseWriter, r *http.Request, token string) error {
	session, err := h.store.Get(r, h.sessionName)
	if err != nil {
		// A corrupt cookie should not block sign-in; start a fresh session.
		session, err = h.store.New(r, h.sessionName)
		if err != nil {
			return err
		}
	}
	session.Values[middleware.SessionTokenKey] = token
	return session.Save(r, w)
}
