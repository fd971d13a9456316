package handlers

import (
	"errors"
	"net/http"

	"github.com/SauravKesari/billify/internal/httpx"
	"github.com/SauravKesari/billify/internal/models"
	"github.com/SauravKesari/billify/internal/services"
	"github.com/SauravKesari/billify/internal/validation"
)

// ProductHandler exposes catalog CRUD plus the unit list.
type ProductHandler struct {
	Svc      *services.ProductService
	Identity *services.IdentityService
	Units    func(scope string) ([]string, error)
}

func NewProductHandler(svc *services.ProductService, identity *services.IdentityService, units func(string) ([]string, error)) *ProductHandler {
	return &ProductHandler{Svc: svc, Identity: identity, Units: units}
}

func (h *ProductHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/products", h.products)
	mux.HandleFunc("/api/units", h.units)
}

func (h *ProductHandler) products(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, h.Identity)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		products, err := h.Svc.List(scope)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, products)
	case http.MethodPost:
		p, ok := decodeProduct(w, r)
		if !ok {
			return
		}
		created, err := h.Svc.Add(scope, p)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_product", nil)
			return
		}
		httpx.JSON(w, http.StatusCreated, created)
	case http.MethodPut:
		p, ok := decodeProduct(w, r)
		if !ok {
			return
		}
		if p.ID == "" {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"id": "required"})
			return
		}
		err := h.Svc.Update(scope, p)
		if errors.Is(err, services.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "product_not_found", nil)
			return
		}
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_product", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, p)
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
			return
		}
		if err := h.Svc.Delete(scope, id); err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_product", nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET,POST,PUT,DELETE")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	var p models.Product
	if err := httpx.Decode(r, &p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return p, false
	}
	v := validation.Violations{}
	validation.Required("name", p.Name, v)
	validation.NonNegative("price", p.Price, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return p, false
	}
	return p, true
}

func (h *ProductHandler) units(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	scope, ok := requireScope(w, h.Identity)
	if !ok {
		return
	}
	units, err := h.Units(scope)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_units", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, units)
}
