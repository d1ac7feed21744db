package server

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/presupuestos-app/internal/handlers"
	"github.com/diewo77/presupuestos-app/internal/httpx"
	"github.com/diewo77/presupuestos-app/internal/logger"
	"github.com/diewo77/presupuestos-app/internal/repos"
	"github.com/diewo77/presupuestos-app/internal/services"
	"github.com/diewo77/presupuestos-app/internal/session"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, sessions *session.Store, log *logger.Logger) http.Handler {
	mux := http.NewServeMux()

	productRepo := repos.NewProductRepo(db, log)
	quotationRepo := repos.NewQuotationRepo(db, log)
	userRepo := repos.NewUserRepo(db, log)

	authSvc := services.NewAuthService(userRepo, log)
	quotationSvc := services.NewQuotationService(quotationRepo, productRepo, log)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	ah := handlers.NewAuthHandler(authSvc, sessions)
	mux.HandleFunc("/login", requirePost(ah.Login))
	mux.HandleFunc("/logout", requirePost(ah.Logout))
	mux.HandleFunc("/access-denied", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusForbidden, "access_denied", nil)
	})

	// Product endpoints. List/Create via /products; update/delete via
	// dedicated paths with an id query param.
	ph := handlers.NewProductHandler(productRepo)
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})
	mux.HandleFunc("/products/detail", requireGet(ph.Detail))
	mux.HandleFunc("/products/update", requirePost(ph.Update))
	mux.HandleFunc("/products/delete", requirePost(ph.Delete))

	// Quotation endpoints
	qh := handlers.NewQuotationHandler(quotationRepo, quotationSvc)
	mux.HandleFunc("/quotations", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			qh.List(w, r)
		case http.MethodPost:
			qh.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})
	mux.HandleFunc("/quotations/detail", requireGet(qh.Detail))
	mux.HandleFunc("/quotations/update", requirePost(qh.Update))
	mux.HandleFunc("/quotations/delete", requirePost(qh.Delete))
	mux.HandleFunc("/quotations/lines", requirePost(qh.AddLine))

	return session.Middleware(sessions, withRecover(mux))
}

func requireGet(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, "GET")
			return
		}
		next(w, r)
	}
}

func requirePost(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, "POST")
			return
		}
		next(w, r)
	}
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
