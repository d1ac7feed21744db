package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/presupuestos-app/internal/logger"
	"github.com/diewo77/presupuestos-app/internal/models"
	"github.com/diewo77/presupuestos-app/internal/repos"
	"github.com/diewo77/presupuestos-app/internal/services"
	"github.com/diewo77/presupuestos-app/internal/session"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Quotation{}, &models.QuotationLine{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newQuotationHandler(db *gorm.DB) *QuotationHandler {
	log := logger.NewNop()
	quotations := repos.NewQuotationRepo(db, log)
	products := repos.NewProductRepo(db, log)
	return NewQuotationHandler(quotations, services.NewQuotationService(quotations, products, log))
}

func asClient(r *http.Request) *http.Request {
	sess := &session.Session{Authenticated: true, Username: "cliente", Role: models.RoleClient}
	return r.WithContext(session.WithSession(r.Context(), sess))
}

func TestQuotationCreateAndDetail(t *testing.T) {
	db := setupTestDB(t)
	h := newQuotationHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/quotations", strings.NewReader(`{"recipient_name":"Acme SA","created_date":"2024-03-01"}`))
	req.Header.Set("Content-Type", "application/json")
	req = asClient(req)
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected generated id, got 0")
	}

	req2 := httptest.NewRequest(http.MethodGet, "/quotations/detail?id=1", nil)
	req2 = asClient(req2)
	w2 := httptest.NewRecorder()
	h.Detail(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w2.Code)
	}
	if !strings.Contains(w2.Body.String(), `"recipient_name":"Acme SA"`) {
		t.Fatalf("unexpected body: %s", w2.Body.String())
	}
}

func TestQuotationCreateRejectsFutureDate(t *testing.T) {
	db := setupTestDB(t)
	h := newQuotationHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/quotations", strings.NewReader(`{"recipient_name":"Acme","created_date":"2999-01-01"}`))
	req.Header.Set("Content-Type", "application/json")
	req = asClient(req)
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "future_date") {
		t.Fatalf("expected future_date violation, got: %s", w.Body.String())
	}
}

func TestQuotationGuardRedirects(t *testing.T) {
	db := setupTestDB(t)
	h := newQuotationHandler(db)

	// JSON client without a session gets 401 plus the redirect hint.
	req := httptest.NewRequest(http.MethodGet, "/quotations", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.List(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/login") {
		t.Fatalf("expected login redirect hint, got: %s", w.Body.String())
	}

	// Browser-like client is redirected outright.
	req2 := httptest.NewRequest(http.MethodGet, "/quotations", nil)
	req2.Header.Set("Accept", "text/html")
	w2 := httptest.NewRecorder()
	h.List(w2, req2)
	if w2.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w2.Code)
	}
	if loc := w2.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected /login location, got %q", loc)
	}
}

func TestAddLineAccumulatesTotals(t *testing.T) {
	db := setupTestDB(t)
	h := newQuotationHandler(db)

	if err := db.Create(&models.Product{Description: "Teclado", UnitPrice: 10.00}).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	create := httptest.NewRequest(http.MethodPost, "/quotations", strings.NewReader(`{"recipient_name":"Acme","created_date":"2024-03-01"}`))
	create.Header.Set("Content-Type", "application/json")
	create = asClient(create)
	wc := httptest.NewRecorder()
	h.Create(wc, create)
	if wc.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d", wc.Code)
	}

	for _, qty := range []string{"1", "2"} {
		add := httptest.NewRequest(http.MethodPost, "/quotations/lines", strings.NewReader(`{"quotation_id":1,"product_id":1,"quantity":`+qty+`}`))
		add.Header.Set("Content-Type", "application/json")
		add = asClient(add)
		wa := httptest.NewRecorder()
		h.AddLine(wa, add)
		if wa.Code != http.StatusCreated {
			t.Fatalf("add line qty=%s: expected 201 got %d body=%s", qty, wa.Code, wa.Body.String())
		}
	}

	detail := httptest.NewRequest(http.MethodGet, "/quotations/detail?id=1", nil)
	detail = asClient(detail)
	wd := httptest.NewRecorder()
	h.Detail(wd, detail)
	if wd.Code != http.StatusOK {
		t.Fatalf("detail: expected 200 got %d", wd.Code)
	}
	var resp struct {
		Lines         []models.QuotationLine `json:"lines"`
		Subtotal      float64                `json:"subtotal"`
		TotalWithTax  float64                `json:"total_with_tax"`
		TotalQuantity int                    `json:"total_quantity"`
	}
	if err := json.Unmarshal(wd.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Lines) != 2 {
		t.Fatalf("expected 2 line rows got %d", len(resp.Lines))
	}
	if resp.TotalQuantity != 3 {
		t.Fatalf("expected total quantity 3 got %d", resp.TotalQuantity)
	}
	if resp.Subtotal != 30.00 {
		t.Fatalf("expected subtotal 30.00 got %v", resp.Subtotal)
	}
}

func TestQuotationDeleteNotFound(t *testing.T) {
	db := setupTestDB(t)
	h := newQuotationHandler(db)

	req := httptest.NewRequest(http.MethodPost, "/quotations/delete?id=99", nil)
	req = asClient(req)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
