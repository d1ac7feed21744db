package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/diewo77/presupuestos-app/internal/httpx"
	"github.com/diewo77/presupuestos-app/internal/services"
	"github.com/diewo77/presupuestos-app/internal/session"
)

type AuthHandler struct {
	Svc      *services.AuthService
	Sessions *session.Store
}

func NewAuthHandler(svc *services.AuthService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{Svc: svc, Sessions: sessions}
}

// Login: POST /login – JSON or form credentials.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var username, password string
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		username, password = req.Username, req.Password
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		username = strings.TrimSpace(r.FormValue("username"))
		password = r.FormValue("password")
	}
	if username == "" || password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"username": "required", "password": "required"})
		return
	}

	// Reuse the caller's live session if it has one, otherwise start fresh.
	var (
		token   string
		sess    *session.Session
		created bool
	)
	if t, ok := session.TokenFromRequest(r); ok {
		if s, ok := h.Sessions.Get(t); ok {
			token, sess = t, s
		}
	}
	if sess == nil {
		token, sess = h.Sessions.New()
		created = true
	}

	ok, err := h.Svc.Login(r.Context(), sess, username, password)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "login_failed", nil)
		return
	}
	if !ok {
		// Failed login leaves prior session state untouched; only a session
		// we just created for this attempt is discarded.
		if created {
			h.Sessions.Delete(token)
		}
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	session.SetCookie(w, token)
	httpx.JSON(w, http.StatusOK, map[string]string{
		"username":     sess.Username,
		"display_name": sess.DisplayName,
		"role":         sess.Role,
	})
}

// Logout: POST /logout – clears session state and drops the server entry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := session.TokenFromRequest(r); ok {
		if sess, ok := h.Sessions.Get(token); ok {
			h.Svc.Logout(sess)
		}
		h.Sessions.Delete(token)
	}
	session.ClearCookie(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
