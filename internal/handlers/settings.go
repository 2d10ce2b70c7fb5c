package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diewo77/madafacture/internal/httpx"
	"github.com/diewo77/madafacture/internal/services"
)

type SettingsHandler struct {
	Svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Svc: svc}
}

// Handle: GET/POST /settings on the singleton record.
func (h *SettingsHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := h.Svc.Get()
		if err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_settings", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, settings)
	case http.MethodPost:
		var in services.SettingsInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
		settings, err := h.Svc.Update(in)
		if err != nil {
			var verr *services.ValidationError
			if errors.As(err, &verr) {
				httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
				return
			}
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_settings", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, settings)
	default:
		w.Header().Set("Allow", "GET,POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}
