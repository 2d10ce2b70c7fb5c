package server

import (
	"log"
	"net/http"
	"time"

	"github.com/diewo77/madafacture/internal/handlers"
	"github.com/diewo77/madafacture/internal/httpx"
	"github.com/diewo77/madafacture/internal/services"

	"gorm.io/gorm"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		// Lightweight DB check (SELECT 1) - detailed errors stay out of the body
		if err := db.Exec("SELECT 1").Error; err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, werr := w.Write([]byte(`{"status":"degraded"}`)); werr != nil {
				_ = werr
			}
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Clients
	ch := handlers.NewClientHandler(db)
	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/clients/update", requireMethod(http.MethodPost, ch.Update))
	mux.HandleFunc("/clients/detail", requireMethod(http.MethodGet, ch.Detail))

	// Products
	ph := handlers.NewProductHandler(db)
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/products/update", requireMethod(http.MethodPost, ph.Update))
	mux.HandleFunc("/products/delete", requireMethod(http.MethodPost, ph.Delete))

	// Invoices
	invSvc := services.NewInvoiceService(db)
	ih := handlers.NewInvoiceHandler(db, invSvc)
	mux.HandleFunc("/invoices", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ih.List(w, r)
		case http.MethodPost:
			ih.Create(w, r)
		default:
			w.Header().Set("Allow", "GET,POST")
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		}
	})
	mux.HandleFunc("/invoices/pdf", requireMethod(http.MethodGet, ih.PDF))

	// Quick sales
	sh := handlers.NewSaleHandler(services.NewSaleService(db))
	mux.HandleFunc("/sales", requireMethod(http.MethodPost, sh.Create))

	// Sales journal & closings
	jh := handlers.NewJournalHandler(db, services.NewJournalService(db))
	mux.HandleFunc("/journal", requireMethod(http.MethodGet, jh.Stats))
	mux.HandleFunc("/journal/close", requireMethod(http.MethodPost, jh.Close))
	mux.HandleFunc("/journal/pdf", requireMethod(http.MethodGet, jh.ReportPDF))
	mux.HandleFunc("/closings", requireMethod(http.MethodGet, jh.ListClosings))
	mux.HandleFunc("/closings/pdf", requireMethod(http.MethodGet, jh.ClosingPDF))

	// Settings
	sth := handlers.NewSettingsHandler(services.NewSettingsService(db))
	mux.HandleFunc("/settings", sth.Handle)

	// Root placeholder
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, werr := w.Write([]byte("MadaFacture API")); werr != nil {
			_ = werr
		}
	})
	//revive:enable:unused-parameter

	return withRecover(withLogging(mux))
}

// requireMethod rejects everything but the named method with a 405 and the
// Allow header, like the inline switches on the collection routes.
func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			return
		}
		next(w, r)
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
