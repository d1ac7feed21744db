package session

import (
	"context"
	"net/http"
)

// Session is the per-client server-held state. It is passed explicitly into
// the authenticator and guard so tests can inject synthetic sessions.
type Session struct {
	Authenticated bool
	Username      string
	DisplayName   string
	Role          string
}

// Clear resets the session to the logged-out state.
func (s *Session) Clear() {
	*s = Session{}
}

type ctxKey string

const (
	cookieName    = "session"
	sessionCtxKey = ctxKey("session")
)

// SetCookie attaches the opaque session token to the response. The token is
// the only thing the client holds; all state stays server-side.
func SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// TokenFromRequest extracts the session token, if any.
func TokenFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// WithSession stores the session in the request context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// FromContext returns the request's session. An absent session means the
// client is not logged in; callers get an empty one rather than nil so
// guard checks stay uniform.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionCtxKey).(*Session); ok {
		return s
	}
	return &Session{}
}

// Middleware resolves the cookie token against the store and attaches the
// live session to the request context.
func Middleware(store *Store, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := TokenFromRequest(r); ok {
			if sess, ok := store.Get(token); ok {
				r = r.WithContext(WithSession(r.Context(), sess))
			}
		}
		next.ServeHTTP(w, r)
	})
}
