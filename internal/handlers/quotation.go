package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/presupuestos-app/internal/httpx"
	"github.com/diewo77/presupuestos-app/internal/models"
	"github.com/diewo77/presupuestos-app/internal/policy"
	"github.com/diewo77/presupuestos-app/internal/repos"
	"github.com/diewo77/presupuestos-app/internal/services"
)

const dateLayout = "2006-01-02"

// QuotationHandler exposes the quotation aggregate over JSON. Every action
// passes the admin-or-client guard first, mirroring the per-action checks of
// the legacy controllers.
type QuotationHandler struct {
	Repo repos.QuotationRepo
	Svc  *services.QuotationService
}

func NewQuotationHandler(repo repos.QuotationRepo, svc *services.QuotationService) *QuotationHandler {
	return &QuotationHandler{Repo: repo, Svc: svc}
}

type quotationResponse struct {
	models.Quotation
	Subtotal      float64 `json:"subtotal"`
	TotalWithTax  float64 `json:"total_with_tax"`
	TotalQuantity int     `json:"total_quantity"`
}

func toResponse(q *models.Quotation) quotationResponse {
	return quotationResponse{
		Quotation:     *q,
		Subtotal:      q.Subtotal(),
		TotalWithTax:  q.TotalWithTax(),
		TotalQuantity: q.TotalQuantity(),
	}
}

// List: GET /quotations
func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	if !guard(w, r, policy.RequireAdminOrClient) {
		return
	}
	quotations, err := h.Repo.GetAll(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_quotations", nil)
		return
	}
	items := make([]quotationResponse, 0, len(quotations))
	for i := range quotations {
		items = append(items, toResponse(&quotations[i]))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

// Detail: GET /quotations/detail?id=...
func (h *QuotationHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if !guard(w, r, policy.RequireAdminOrClient) {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	q, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_quotation", nil)
		return
	}
	if q == nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(q))
}

type quotationRequest struct {
	ID            int    `json:"id"`
	RecipientName string `json:"recipient_name"`
	CreatedDate   string `json:"created_date"`
}

func parseQuotationRequest(r *http.Request) (quotationRequest, bool) {
	var req quotationRequest
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, false
		}
		return req, true
	}
	if err := r.ParseForm(); err != nil {
		return req, false
	}
	if v := r.Form.Get("id"); v != "" {
		req.ID, _ = strconv.Atoi(v)
	}
	req.RecipientName = strings.TrimSpace(r.Form.Get("recipient_name"))
	req.CreatedDate = strings.TrimSpace(r.Form.Get("created_date"))
	return req, true
}

// Create: POST /quotations
func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !guard(w, r, policy.RequireAdminOrClient) {
		return
	}
	req, ok := parseQuotationRequest(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	date, verr := parseDate(req.CreatedDate)
	if verr != "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"created_date": verr})
		return
	}
	q, violations, err := h.Svc.Create(r.Context(), req.RecipientName, date)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_quotation", nil)
		return
	}
	if !violations.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", violations)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(q))
}

// Update: POST /quotations/update – header fields only.
func (h *QuotationHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !guard(w, r, policy.RequireAdminOrClient) {
		return
	}
	req, ok := parseQuotationRequest(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if req.ID <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	date, verr := parseDate(req.CreatedDate)
	if verr != "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"created_date": verr})
		return
	}
	found, violations, err := h.Svc.Update(r.Context(), req.ID, req.RecipientName, date)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_quotation", nil)
		return
	}
	if violations != nil && !violations.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", violations)
		return
	}
	if !found {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete: POST /quotations/delete?id=... – removes header and lines.
func (h *QuotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !guard(w, r, policy.RequireAdminOrClient) {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	existed, err := h.Repo.Delete(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_quotation", nil)
		return
	}
	if !existed {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AddLine: POST /quotations/lines
func (h *QuotationHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	if !guard(w, r, policy.RequireAdminOrClient) {
		return
	}
	var req struct {
		QuotationID int `json:"quotation_id"`
		ProductID   int `json:"product_id"`
		Quantity    int `json:"quantity"`
	}
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
			return
		}
		req.QuotationID, _ = strconv.Atoi(r.Form.Get("quotation_id"))
		req.ProductID, _ = strconv.Atoi(r.Form.Get("product_id"))
		req.Quantity, _ = strconv.Atoi(r.Form.Get("quantity"))
	}
	found, violations, err := h.Svc.AddLine(r.Context(), req.QuotationID, req.ProductID, req.Quantity)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_add_line", nil)
		return
	}
	if violations != nil && !violations.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", violations)
		return
	}
	if !found {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"status": "line_added"})
}

func parseDate(s string) (time.Time, string) {
	if s == "" {
		return time.Time{}, "required"
	}
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, "invalid_date"
	}
	return date, ""
}

func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := r.URL.Query().Get("id")
	if idStr == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return 0, false
	}
	return id, true
}
