package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/madafacture/internal/httpx"
	"github.com/diewo77/madafacture/internal/models"
	"github.com/diewo77/madafacture/internal/pdf"
	"github.com/diewo77/madafacture/internal/services"

	"gorm.io/gorm"
)

type JournalHandler struct {
	DB  *gorm.DB
	Svc *services.JournalService
}

func NewJournalHandler(db *gorm.DB, svc *services.JournalService) *JournalHandler {
	return &JournalHandler{DB: db, Svc: svc}
}

func requestedDate(r *http.Request) string {
	if d := r.URL.Query().Get("date"); d != "" {
		return d
	}
	return time.Now().Format("2006-01-02")
}

// Stats: GET /journal?date=YYYY-MM-DD - live daily summary plus whether a
// closing already exists for that date.
func (h *JournalHandler) Stats(w http.ResponseWriter, r *http.Request) {
	date := requestedDate(r)
	stats, err := h.Svc.ComputeDailyStats(date)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_compute_stats", nil)
		return
	}
	closing, err := h.Svc.ClosingForDate(date)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_closing", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"stats": stats, "closing_exists": closing != nil})
}

// Close: POST /journal/close?date=YYYY-MM-DD[&replace=1] - finalizes the
// daily closing. Replacing an existing closing discards its archived
// numbers, so the replace flag is the caller's explicit confirmation.
func (h *JournalHandler) Close(w http.ResponseWriter, r *http.Request) {
	date := requestedDate(r)
	replace := r.URL.Query().Get("replace") == "1"
	closing, err := h.Svc.FinalizeClosing(date, replace)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNothingToClose):
			httpx.JSONError(w, http.StatusConflict, "nothing_to_close", nil)
		case errors.Is(err, services.ErrClosingExists):
			httpx.JSONError(w, http.StatusConflict, "closing_already_exists", nil)
		default:
			var verr *services.ValidationError
			if errors.As(err, &verr) {
				httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
				return
			}
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_close", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, closing)
}

// ListClosings: GET /closings - the archive, newest first.
func (h *JournalHandler) ListClosings(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	closings, err := h.Svc.ListClosings(limit)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_closings", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": closings, "total": len(closings)})
}

// ClosingPDF: GET /closings/pdf?id=... - duplicata from the frozen snapshot.
// Transaction detail is not archived in the snapshot; the duplicata renders
// from the aggregates alone, like the original archive reprint.
func (h *JournalHandler) ClosingPDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var closing models.DailyClosing
	if err := h.DB.Preload("Products").First(&closing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_closing", nil)
		return
	}
	var settings models.UserSettings
	if err := h.DB.First(&settings).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_settings", nil)
		return
	}
	products := make([]pdf.ProductRow, 0, len(closing.Products))
	for _, p := range closing.Products {
		products = append(products, pdf.ProductRow{Name: p.Name, Quantity: p.Quantity, Revenue: p.Revenue, Profit: p.Profit})
	}
	totals := pdf.ReportTotals{
		Total:  closing.TotalRevenue,
		Profit: closing.TotalProfit,
		Cash:   closing.CashAmount,
		Mobile: closing.MobileAmount,
		Credit: closing.CreditAmount,
	}
	data, err := pdf.DailyReport(nil, products, totals, closing.Date, settings)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	httpx.PDF(w, closing.Number+"_DUPLICATA.pdf", data)
}

// ReportPDF: GET /journal/pdf?date=... - the live report with the full
// transaction journal, as produced at closing time.
func (h *JournalHandler) ReportPDF(w http.ResponseWriter, r *http.Request) {
	date := requestedDate(r)
	stats, err := h.Svc.ComputeDailyStats(date)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_compute_stats", nil)
		return
	}
	var settings models.UserSettings
	if err := h.DB.First(&settings).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_settings", nil)
		return
	}
	products := make([]pdf.ProductRow, 0, len(stats.Products))
	for _, p := range stats.Products {
		products = append(products, pdf.ProductRow{Name: p.Name, Quantity: p.Quantity, Revenue: p.Revenue, Profit: p.Profit})
	}
	totals := pdf.ReportTotals{Total: stats.Total, Profit: stats.Profit, Cash: stats.Cash, Mobile: stats.Mobile, Credit: stats.Credit}
	data, err := pdf.DailyReport(stats.Transactions, products, totals, date, settings)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	httpx.PDF(w, "RAPPORT-"+date+".pdf", data)
}
