package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/diewo77/presupuestos-app/internal/httpx"
	"github.com/diewo77/presupuestos-app/internal/models"
	"github.com/diewo77/presupuestos-app/internal/policy"
	"github.com/diewo77/presupuestos-app/internal/repos"
	"github.com/diewo77/presupuestos-app/internal/validation"
)

// ProductHandler manages the catalog. Catalog edits are admin-only, matching
// the legacy permission model.
type ProductHandler struct {
	Repo repos.ProductRepo
}

func NewProductHandler(repo repos.ProductRepo) *ProductHandler {
	return &ProductHandler{Repo: repo}
}

type productRequest struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	UnitPrice   float64 `json:"unit_price"`
}

func parseProductRequest(r *http.Request) (productRequest, bool) {
	var req productRequest
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
	req.Description = strings.TrimSpace(r.Form.Get("description"))
	if v := r.Form.Get("unit_price"); v != "" {
		req.UnitPrice, _ = strconv.ParseFloat(v, 64)
	}
	return req, true
}

func validateProduct(req productRequest) validation.Violations {
	v := validation.Violations{}
	validation.Required("description", req.Description, v)
	validation.MaxLen("description", req.Description, 250, v)
	validation.MinFloat("unit_price", req.UnitPrice, 0.01, v)
	return v
}

// List: GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if !guard(w, r, policy.RequireAdmin) {
		return
	}
	products, err := h.Repo.GetProducts(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": len(products)})
}

// Detail: GET /products/detail?id=...
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if !guard(w, r, policy.RequireAdmin) {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	p, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_product", nil)
		return
	}
	if p == nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !guard(w, r, policy.RequireAdmin) {
		return
	}
	req, ok := parseProductRequest(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if v := validateProduct(req); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	p := models.Product{Description: req.Description, UnitPrice: req.UnitPrice}
	if err := h.Repo.Create(r.Context(), &p); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_product", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Update: POST /products/update
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !guard(w, r, policy.RequireAdmin) {
		return
	}
	req, ok := parseProductRequest(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_request", nil)
		return
	}
	if req.ID <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if v := validateProduct(req); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	p := models.Product{ID: req.ID, Description: req.Description, UnitPrice: req.UnitPrice}
	found, err := h.Repo.Update(r.Context(), &p)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_product", nil)
		return
	}
	if !found {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete: POST /products/delete?id=... – refuses while quotation lines
// still reference the product.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !guard(w, r, policy.RequireAdmin) {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	existed, err := h.Repo.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, repos.ErrProductReferenced) {
			httpx.JSONError(w, http.StatusConflict, "product_referenced", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_product", nil)
		return
	}
	if !existed {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
