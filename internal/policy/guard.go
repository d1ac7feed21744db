// Package policy holds the access guard: pure decision functions mapping
// session state plus a required role policy to allow-or-redirect. They
// perform no I/O and produce no side effects, so handlers and tests can
// evaluate them against any session.
package policy

import (
	"github.com/diewo77/presupuestos-app/internal/models"
	"github.com/diewo77/presupuestos-app/internal/session"
)

// Redirect targets on deny.
const (
	LoginRedirect  = "/login"
	DeniedRedirect = "/access-denied"
)

// Decision is the guard's verdict. When Allowed is false, Redirect names
// where the presentation layer should send the client.
type Decision struct {
	Allowed  bool
	Redirect string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(target string) Decision { return Decision{Redirect: target} }

// RequireAdmin allows only authenticated administrators.
func RequireAdmin(sess *session.Session) Decision {
	if sess == nil || !sess.Authenticated {
		return deny(LoginRedirect)
	}
	if sess.Role != models.RoleAdministrator {
		return deny(DeniedRedirect)
	}
	return allow()
}

// RequireAdminOrClient allows authenticated administrators or clients. Both
// roles are checked explicitly; there is no hierarchy to fall back on.
func RequireAdminOrClient(sess *session.Session) Decision {
	if sess == nil || !sess.Authenticated {
		return deny(LoginRedirect)
	}
	if sess.Role != models.RoleAdministrator && sess.Role != models.RoleClient {
		return deny(DeniedRedirect)
	}
	return allow()
}
