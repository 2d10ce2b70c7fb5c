package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/diewo77/madafacture/internal/httpx"
	"github.com/diewo77/madafacture/internal/models"
	"github.com/diewo77/madafacture/internal/validation"

	"gorm.io/gorm"
)

type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler { return &ClientHandler{DB: db} }

var searchSanitizer = regexp.MustCompile(`[^a-zA-Z0-9 \-_@.]`)

func sanitizedLike(q string) string {
	safe := searchSanitizer.ReplaceAllString(q, "")
	return "%" + strings.ToLower(safe) + "%"
}

// List: GET /clients
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
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
	dbq := h.DB.Model(&models.Client{})
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		like := sanitizedLike(q)
		dbq = dbq.Where("lower(name) LIKE ? OR lower(email) LIKE ? OR nif LIKE ?", like, like, like)
	}
	var total int64
	dbq.Count(&total)
	var clients []models.Client
	if err := dbq.Order("name asc").Limit(limit).Offset(offset).Find(&clients).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": clients, "total": total, "limit": limit, "offset": offset})
}

type clientInput struct {
	Name    string            `json:"name"`
	Type    models.ClientType `json:"type"`
	Email   string            `json:"email"`
	Phone   string            `json:"phone"`
	Address string            `json:"address"`
	NIF     string            `json:"nif"`
	STAT    string            `json:"stat"`
	Notes   string            `json:"notes"`
}

// validate enforces the Société-only rule for fiscal identifiers: NIF/STAT
// on an Individuel client are rejected, not silently dropped.
func (in clientInput) validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	switch in.Type {
	case models.ClientIndividuel:
		if in.NIF != "" || in.STAT != "" {
			v["nif"] = "company_only_field"
		}
	case models.ClientSociete:
	default:
		v["type"] = "invalid_type"
	}
	return v
}

// Create: POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in clientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := in.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	client := models.Client{
		Name: in.Name, Type: in.Type, Email: in.Email, Phone: in.Phone,
		Address: in.Address, NIF: in.NIF, STAT: in.STAT, Notes: in.Notes,
	}
	if err := h.DB.Create(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_client", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, client)
}

// Update: POST /clients/update?id=...
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var client models.Client
	if err := h.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_client", nil)
		return
	}
	var in clientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := in.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	client.Name = in.Name
	client.Type = in.Type
	client.Email = in.Email
	client.Phone = in.Phone
	client.Address = in.Address
	client.NIF = in.NIF
	client.STAT = in.STAT
	client.Notes = in.Notes
	if err := h.DB.Save(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_client", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

// Detail: GET /clients/detail?id=... - the client plus its documents.
func (h *ClientHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var client models.Client
	if err := h.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_client", nil)
		return
	}
	var invoices []models.Invoice
	if err := h.DB.Preload("Items").Where("client_id = ?", client.ID).Order("date desc, id desc").Find(&invoices).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"client": client, "invoices": invoices})
}
