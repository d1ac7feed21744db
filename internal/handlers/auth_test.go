package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diewo77/presupuestos-app/internal/logger"
	"github.com/diewo77/presupuestos-app/internal/models"
	"github.com/diewo77/presupuestos-app/internal/repos"
	"github.com/diewo77/presupuestos-app/internal/services"
	"github.com/diewo77/presupuestos-app/internal/session"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *session.Store) {
	t.Helper()
	db := setupTestDB(t)
	if err := db.Create(&models.User{
		DisplayName: "Cliente Demo", Username: "cliente", Password: "cliente123", Role: models.RoleClient,
	}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	log := logger.NewNop()
	store := session.NewStore(30 * time.Minute)
	svc := services.NewAuthService(repos.NewUserRepo(db, log), log)
	return NewAuthHandler(svc, store), store
}

func TestLoginSetsSessionCookie(t *testing.T) {
	h, store := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"cliente","password":"cliente123"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Login(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	var token string
	for _, c := range cookies {
		if c.Name == "session" {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
	sess, ok := store.Get(token)
	if !ok || !sess.Authenticated {
		t.Fatalf("expected authenticated session behind token")
	}
	if sess.Role != models.RoleClient || sess.DisplayName != "Cliente Demo" {
		t.Fatalf("unexpected session state: %+v", sess)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h, store := newAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"cliente","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Login(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
	// No orphan session left behind for the failed attempt.
	if store.Len() != 0 {
		t.Fatalf("expected no sessions, got %d", store.Len())
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	h, store := newAuthHandler(t)

	token, sess := store.New()
	sess.Authenticated = true
	sess.Username = "cliente"
	sess.Role = models.RoleClient

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	w := httptest.NewRecorder()
	h.Logout(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if _, ok := store.Get(token); ok {
		t.Fatalf("expected session to be gone")
	}
	if sess.Authenticated || sess.Username != "" {
		t.Fatalf("expected cleared session state, got %+v", sess)
	}
}
