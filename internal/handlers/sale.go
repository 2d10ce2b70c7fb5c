package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diewo77/madafacture/internal/httpx"
	"github.com/diewo77/madafacture/internal/services"
)

type SaleHandler struct {
	Svc *services.SaleService
}

func NewSaleHandler(svc *services.SaleService) *SaleHandler { return &SaleHandler{Svc: svc} }

// Create: POST /sales - records a quick sale with its ledger transaction
// and stock decrement.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.RecordSaleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	sale, err := h.Svc.Record(in)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_record_sale", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, sale)
}
