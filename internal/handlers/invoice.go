package handlers

import (
	"errors"
	"net/http"

	"github.com/SauravKesari/billify/internal/httpx"
	"github.com/SauravKesari/billify/internal/insight"
	"github.com/SauravKesari/billify/internal/models"
	"github.com/SauravKesari/billify/internal/pdf"
	"github.com/SauravKesari/billify/internal/services"
)

// InvoiceHandler exposes the invoice collection, the draft composer and the
// export/insight adapters. The composer holds the one in-progress draft of
// the active session.
type InvoiceHandler struct {
	Svc       *services.InvoiceService
	Products  *services.ProductService
	Customers *services.CustomerService
	Identity  *services.IdentityService
	Composer  *services.Composer
	Insight   *insight.Client
	ExportDir string
}

func NewInvoiceHandler(
	svc *services.InvoiceService,
	products *services.ProductService,
	customers *services.CustomerService,
	identity *services.IdentityService,
	composer *services.Composer,
	insightClient *insight.Client,
	exportDir string,
) *InvoiceHandler {
	return &InvoiceHandler{
		Svc:       svc,
		Products:  products,
		Customers: customers,
		Identity:  identity,
		Composer:  composer,
		Insight:   insightClient,
		ExportDir: exportDir,
	}
}

func (h *InvoiceHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/invoices", h.invoices)
	mux.HandleFunc("/api/invoices/status", h.toggleStatus)
	mux.HandleFunc("/api/invoices/pdf", h.downloadPDF)
	mux.HandleFunc("/api/invoices/edit", h.startEdit)
	mux.HandleFunc("/api/invoices/insights", h.insights)
	mux.HandleFunc("/api/dashboard", h.dashboard)
	mux.HandleFunc("/api/draft", h.draft)
	mux.HandleFunc("/api/draft/items", h.draftItems)
	mux.HandleFunc("/api/draft/items/product", h.draftSetProduct)
	mux.HandleFunc("/api/draft/items/quantity", h.draftSetQuantity)
	mux.HandleFunc("/api/draft/items/price", h.draftSetPrice)
	mux.HandleFunc("/api/draft/save", h.draftSave)
}

// List: GET /api/invoices (newest first), DELETE /api/invoices?id=
func (h *InvoiceHandler) invoices(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, h.Identity)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		invoices, err := h.Svc.ListByDate(scope)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, invoices)
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
			return
		}
		if err := h.Svc.Delete(scope, id); err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_invoice", nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET,DELETE")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

// POST /api/invoices/status?id= flips paid/pending.
func (h *InvoiceHandler) toggleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	scope, ok := requireScope(w, h.Identity)
	if !ok {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	inv, err := h.Svc.ToggleStatus(scope, id)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// GET /api/invoices/pdf?id= streams the export artifact. Labels are always
// English, whatever the display language.
func (h *InvoiceHandler) downloadPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	user, err := h.Identity.Current()
	if err != nil || user == nil {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	inv, err := h.Svc.Get(user.ID, id)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	data, err := pdf.Render(inv, pdf.EnglishLabels(), user.ShopName)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_render_pdf", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.Filename(inv)+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		_ = err
	}
}

// POST /api/invoices/edit?id= seeds the draft from a saved invoice.
func (h *InvoiceHandler) startEdit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	scope, ok := requireScope(w, h.Identity)
	if !ok {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	inv, err := h.Svc.Get(scope, id)
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	h.Composer.Edit(inv)
	httpx.JSON(w, http.StatusOK, h.draftView())
}

// GET /api/invoices/insights asks the external provider for a summary.
// Provider failures come back as the fallback text with a 200, never as an
// error: only this panel degrades.
func (h *InvoiceHandler) insights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	scope, ok := requireScope(w, h.Identity)
	if !ok {
		return
	}
	invoices, err := h.Svc.List(scope)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	text := h.Insight.SummarizeSales(r.Context(), invoices)
	httpx.JSON(w, http.StatusOK, map[string]string{"text": text})
}

// GET /api/dashboard returns the overview aggregates.
func (h *InvoiceHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	scope, ok := requireScope(w, h.Identity)
	if !ok {
		return
	}
	stats, err := h.Svc.Stats(scope)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_compute_stats", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

type draftView struct {
	CustomerID string               `json:"customerId"`
	Items      []models.InvoiceItem `json:"items"`
	Subtotal   float64              `json:"subtotal"`
	TaxAmount  float64              `json:"taxAmount"`
	Total      float64              `json:"total"`
	Editing    bool                 `json:"editing"`
}

func (h *InvoiceHandler) draftView() draftView {
	_, editing := h.Composer.Editing()
	return draftView{
		CustomerID: h.Composer.CustomerID(),
		Items:      h.Composer.Items(),
		Subtotal:   h.Composer.Subtotal(),
		TaxAmount:  h.Composer.TaxAmount(),
		Total:      h.Composer.Total(),
		Editing:    editing,
	}
}

// GET /api/draft (view), POST (select customer), DELETE (reset).
func (h *InvoiceHandler) draft(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireScope(w, h.Identity); !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		httpx.JSON(w, http.StatusOK, h.draftView())
	case http.MethodPost:
		var req struct {
			CustomerID string `json:"customerId"`
		}
		if err := httpx.Decode(r, &req); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		h.Composer.SelectCustomer(req.CustomerID)
		httpx.JSON(w, http.StatusOK, h.draftView())
	case http.MethodDelete:
		h.Composer.Reset()
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET,POST,DELETE")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

// POST /api/draft/items appends a line for the first catalog product;
// DELETE /api/draft/items?id= removes one. Adding with an empty catalog is
// a no-op, reported as such.
func (h *InvoiceHandler) draftItems(w http.ResponseWriter, r *http.Request) {
	scope, ok := requireScope(w, h.Identity)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodPost:
		products, err := h.Products.List(scope)
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
			return
		}
		h.Composer.AddItem(products)
		httpx.JSON(w, http.StatusOK, h.draftView())
	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
			return
		}
		h.Composer.RemoveItem(id)
		httpx.JSON(w, http.StatusOK, h.draftView())
	default:
		w.Header().Set("Allow", "POST,DELETE")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

// POST /api/draft/items/product repoints a line at another product.
func (h *InvoiceHandler) draftSetProduct(w http.ResponseWriter, r *http.Request) {
	scope, ok := requirePost(w, r, h.Identity)
	if !ok {
		return
	}
	var req struct {
		ItemID    string `json:"itemId"`
		ProductID string `json:"productId"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	products, err := h.Products.List(scope)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	h.Composer.SetProduct(products, req.ItemID, req.ProductID)
	httpx.JSON(w, http.StatusOK, h.draftView())
}

// POST /api/draft/items/quantity recomputes a line for a new quantity.
func (h *InvoiceHandler) draftSetQuantity(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePost(w, r, h.Identity); !ok {
		return
	}
	var req struct {
		ItemID   string  `json:"itemId"`
		Quantity float64 `json:"quantity"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Quantity < 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"quantity": "must_not_be_negative"})
		return
	}
	h.Composer.SetQuantity(req.ItemID, req.Quantity)
	httpx.JSON(w, http.StatusOK, h.draftView())
}

// POST /api/draft/items/price recomputes a line for a manual price.
func (h *InvoiceHandler) draftSetPrice(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePost(w, r, h.Identity); !ok {
		return
	}
	var req struct {
		ItemID string  `json:"itemId"`
		Price  float64 `json:"price"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Price < 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"price": "must_not_be_negative"})
		return
	}
	h.Composer.SetPrice(req.ItemID, req.Price)
	httpx.JSON(w, http.StatusOK, h.draftView())
}

// POST /api/draft/save finalizes the draft, persists the invoice and
// optionally writes the PDF artifact.
func (h *InvoiceHandler) draftSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	user, err := h.Identity.Current()
	if err != nil || user == nil {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		GeneratePDF bool `json:"generatePdf"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	customers, err := h.Customers.List(user.ID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_customers", nil)
		return
	}
	inv, err := h.Composer.Save(customers)
	switch {
	case errors.Is(err, services.ErrNoCustomer):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"customerId": "required"})
		return
	case errors.Is(err, services.ErrNoItems):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"items": "required"})
		return
	case errors.Is(err, services.ErrUnknownCustomer):
		httpx.JSONError(w, http.StatusBadRequest, "unknown_customer", nil)
		return
	case err != nil:
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_invoice", nil)
		return
	}
	if err := h.Svc.Put(user.ID, inv); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_invoice", nil)
		return
	}
	resp := map[string]any{"invoice": inv}
	if req.GeneratePDF {
		path, err := pdf.WriteFile(h.ExportDir, inv, pdf.EnglishLabels(), user.ShopName)
		if err != nil {
			// The invoice is saved; only the artifact failed.
			resp["pdfError"] = "failed_to_render_pdf"
		} else {
			resp["pdfPath"] = path
		}
	}
	httpx.JSON(w, http.StatusCreated, resp)
}

func requirePost(w http.ResponseWriter, r *http.Request, identity *services.IdentityService) (string, bool) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return "", false
	}
	return requireScope(w, identity)
}
