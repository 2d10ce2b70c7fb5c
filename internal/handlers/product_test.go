package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diewo77/madafacture/internal/models"
)

func TestProductLifecycle(t *testing.T) {
	d := openTestDB(t)
	h := NewProductHandler(d)

	body := jsonBody(t, map[string]any{
		"name": "Coca 1L", "unit_price": 2000, "purchase_price": 1500, "stock": 24, "category": "Boissons",
	})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/products", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status %d body %s", rec.Code, rec.Body.String())
	}
	var created models.Product
	decodeBody(t, rec, &created)
	if created.Unit != "Unité" {
		t.Fatalf("expected default unit got %q", created.Unit)
	}

	body = jsonBody(t, map[string]any{
		"name": "Coca 1L", "unit_price": 2200, "purchase_price": 1500, "stock": 30, "unit": "Bouteille",
	})
	rec = httptest.NewRecorder()
	h.Update(rec, httptest.NewRequest(http.MethodPost, "/products/update?id=1", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status %d body %s", rec.Code, rec.Body.String())
	}
	var updated models.Product
	decodeBody(t, rec, &updated)
	if updated.UnitPrice != 2200 || updated.Stock != 30 || updated.Unit != "Bouteille" {
		t.Fatalf("unexpected product %+v", updated)
	}

	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodPost, "/products/delete?id=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodPost, "/products/delete?id=1", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete got %d", rec.Code)
	}
}

func TestProductValidation(t *testing.T) {
	d := openTestDB(t)
	h := NewProductHandler(d)

	body := jsonBody(t, map[string]any{"name": "", "unit_price": -5})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/products", body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	decodeBody(t, rec, &resp)
	if resp.Details["name"] != "required" || resp.Details["unit_price"] != "must_not_be_negative" {
		t.Fatalf("unexpected violations %+v", resp.Details)
	}
}

func TestProductListFilters(t *testing.T) {
	d := openTestDB(t)
	h := NewProductHandler(d)

	seed := []models.Product{
		{Name: "Coca 1L", UnitPrice: 2000, PurchasePrice: 1500, Unit: "Unité", Category: "Boissons"},
		{Name: "Eau 1.5L", UnitPrice: 500, PurchasePrice: 300, Unit: "Unité", Category: "Boissons"},
		{Name: "Riz 5kg", UnitPrice: 15000, PurchasePrice: 12000, Unit: "Sac", Category: "Epicerie"},
	}
	if err := d.Create(&seed).Error; err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/products?category=Boissons", nil))
	var page struct {
		Items []models.Product `json:"items"`
		Total int64            `json:"total"`
	}
	decodeBody(t, rec, &page)
	if page.Total != 2 {
		t.Fatalf("expected 2 drinks got %d", page.Total)
	}

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/products?q=riz", nil))
	decodeBody(t, rec, &page)
	if page.Total != 1 || page.Items[0].Name != "Riz 5kg" {
		t.Fatalf("search failed: %+v", page)
	}
}
