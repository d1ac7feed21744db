package handlers

import (
	"net/http"
	"strings"

	"github.com/diewo77/presupuestos-app/internal/httpx"
	"github.com/diewo77/presupuestos-app/internal/policy"
	"github.com/diewo77/presupuestos-app/internal/session"
)

// guard evaluates an access policy against the request's session. On deny it
// writes the response (JSON clients get a status + redirect hint, browsers
// get the redirect itself) and returns false.
func guard(w http.ResponseWriter, r *http.Request, check func(*session.Session) policy.Decision) bool {
	d := check(session.FromContext(r.Context()))
	if d.Allowed {
		return true
	}
	accept := r.Header.Get("Accept")
	if strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html") {
		status := http.StatusForbidden
		msg := "forbidden"
		if d.Redirect == policy.LoginRedirect {
			status = http.StatusUnauthorized
			msg = "unauthorized"
		}
		httpx.JSONError(w, status, msg, map[string]string{"redirect": d.Redirect})
		return false
	}
	http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
	return false
}
