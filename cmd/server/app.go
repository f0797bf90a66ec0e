package main

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/go-invoicing/internal/config"
	"github.com/diewo77/go-invoicing/internal/handlers"
	"github.com/diewo77/go-invoicing/internal/render"
	"github.com/diewo77/go-invoicing/internal/services"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
}

// NewApp wires handlers and routes.
func NewApp(db *gorm.DB, cfg *config.Config, renderer *render.Renderer) *App {
	app := &App{mux: http.NewServeMux()}

	invoiceSvc := services.NewInvoiceService(db, cfg.Company.NativeCurrency)

	ch := handlers.NewCustomerHandler(db)
	ih := handlers.NewInvoiceHandler(db, invoiceSvc, renderer, cfg.Company.NativeCurrency)
	sh := handlers.NewSettingsHandler(db, cfg.Company)

	mux := app.mux

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/invoices", http.StatusSeeOther)
	})

	// Customers
	mux.HandleFunc("GET /customers", ch.List)
	mux.HandleFunc("GET /customers/new", ch.New)
	mux.HandleFunc("POST /customers", ch.Create)
	mux.HandleFunc("GET /customers/{id}", ch.View)
	mux.HandleFunc("GET /customers/{id}/edit", ch.Edit)
	mux.HandleFunc("POST /customers/{id}/edit", ch.Update)
	mux.HandleFunc("POST /customers/{id}/delete", ch.Delete)
	mux.HandleFunc("GET /customers/{id}/json", ch.JSON)

	// Invoices
	mux.HandleFunc("GET /invoices", ih.List)
	mux.HandleFunc("GET /invoices/new", ih.New)
	mux.HandleFunc("POST /invoices/new", ih.Create)
	mux.HandleFunc("GET /invoices/{id}", ih.View)
	mux.HandleFunc("GET /invoices/{id}/edit", ih.Edit)
	mux.HandleFunc("POST /invoices/{id}/edit", ih.Update)
	mux.HandleFunc("POST /invoices/{id}/delete", ih.Delete)
	mux.HandleFunc("GET /invoices/{id}/pdf", ih.PDF)
	mux.HandleFunc("GET /invoices/{id}/preview", ih.Preview)
	mux.HandleFunc("POST /invoices/{id}/issue", ih.Issue)
	mux.HandleFunc("POST /invoices/{id}/paid", ih.MarkPaid)

	// Settings
	mux.HandleFunc("GET /settings", sh.Index)
	mux.HandleFunc("GET /settings/optional-texts/new", sh.NewText)
	mux.HandleFunc("POST /settings/optional-texts/new", sh.CreateText)
	mux.HandleFunc("GET /settings/optional-texts/{id}/edit", sh.EditText)
	mux.HandleFunc("POST /settings/optional-texts/{id}/edit", sh.UpdateText)
	mux.HandleFunc("POST /settings/optional-texts/{id}/delete", sh.DeleteText)

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}
