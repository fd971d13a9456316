package handlers

import (
	"errors"
	"net/http"

	"github.com/SauravKesari/billify/internal/httpx"
	"github.com/SauravKesari/billify/internal/models"
	"github.com/SauravKesari/billify/internal/services"
	"github.com/SauravKesari/billify/internal/validation"
)

// CustomerHandler exposes customer CRUD.
type CustomerHandler struct {
	Svc      *services.CustomerService
	Identity *services.IdentityService
}

func NewCustomerHandler(svc *services.CustomerService, identity *services.IdentityService) *CustomerHandler {
	return &CustomerHandler{Svc: svc, Identity: identity}
}

func (h *CustomerHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/customers", h.customers)
}

func (h *CustomerHandler) customers(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, h.Identity)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		customers, err := h.Svc.List(scope)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, customers)
	case http.MethodPost:
		c, ok := decodeCustomer(w, r)
		if !ok {
			return
		}
		created, err := h.Svc.Add(scope, c)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_customer", nil)
			return
		}
		httpx.JSON(w, http.StatusCreated, created)
	case http.MethodPut:
		c, ok := decodeCustomer(w, r)
		if !ok {
			return
		}
		if c.ID == "" {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"id": "required"})
			return
		}
		err := h.Svc.Update(scope, c)
		if errors.Is(err, services.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "customer_not_found", nil)
			return
		}
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_customer", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, c)
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
			return
		}
		if err := h.Svc.Delete(scope, id); err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_customer", nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET,POST,PUT,DELETE")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

// Email duplicates are intentionally allowed; only presence is checked.
func decodeCustomer(w http.ResponseWriter, r *http.Request) (models.Customer, bool) {
	var c models.Customer
	if err := httpx.Decode(r, &c); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return c, false
	}
	v := validation.Violations{}
	validation.Required("name", c.Name, v)
	validation.Required("email", c.Email, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return c, false
	}
	return c, true
}
