package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/diewo77/madafacture/internal/httpx"
	"github.com/diewo77/madafacture/internal/models"
	"github.com/diewo77/madafacture/internal/pdf"
	"github.com/diewo77/madafacture/internal/services"

	"gorm.io/gorm"
)

type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc}
}

// List: GET /invoices - filterable by type, status, date; paginated.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	dbq := h.DB.Model(&models.Invoice{})
	if t := r.URL.Query().Get("type"); t != "" {
		dbq = dbq.Where("type = ?", t)
	}
	if st := r.URL.Query().Get("status"); st != "" {
		dbq = dbq.Where("status = ?", st)
	}
	if d := r.URL.Query().Get("date"); d != "" {
		dbq = dbq.Where("date = ?", d)
	}
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		dbq = dbq.Where("lower(number) LIKE ?", sanitizedLike(q))
	}
	var total int64
	dbq.Count(&total)
	var invoices []models.Invoice
	if err := dbq.Preload("Items").Order("id desc").Limit(limit).Offset(offset).Find(&invoices).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invoices, "total": total, "limit": limit, "offset": offset})
}

// Create: POST /invoices - runs the full lifecycle: numbering, totals,
// stock decrement and optional immediate payment.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateInvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	inv, err := h.Svc.Create(in)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// PDF: GET /invoices/pdf?id=...
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.Svc.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoice", nil)
		return
	}
	var client models.Client
	if err := h.DB.First(&client, inv.ClientID).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_client", nil)
		return
	}
	var settings models.UserSettings
	if err := h.DB.First(&settings).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_settings", nil)
		return
	}
	data, err := pdf.Invoice(*inv, client, settings)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	httpx.PDF(w, inv.Number+".pdf", data)
}
