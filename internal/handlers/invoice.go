package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/internal/render"
	"github.com/diewo77/go-invoicing/internal/services"
	"github.com/diewo77/go-invoicing/validation"
	"github.com/diewo77/go-invoicing/view"
)

type InvoiceHandler struct {
	db             *gorm.DB
	svc            *services.InvoiceService
	renderer       *render.Renderer
	nativeCurrency string
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService, renderer *render.Renderer, nativeCurrency string) *InvoiceHandler {
	return &InvoiceHandler{db: db, svc: svc, renderer: renderer, nativeCurrency: nativeCurrency}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	search := r.URL.Query().Get("search")

	years, err := h.svc.Years(time.Now())
	if err != nil {
		http.Error(w, "Failed to load invoices", http.StatusInternalServerError)
		return
	}

	selectedYear := time.Now().Year()
	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
		for _, known := range years {
			if known == y {
				selectedYear = y
				break
			}
		}
	}

	start := time.Date(selectedYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	query := h.db.Model(&models.Invoice{}).
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.issue_date >= ? AND invoices.issue_date < ?", start, end)

	if status != "" {
		query = query.Where("invoices.status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(invoices.number) LIKE LOWER(?) OR LOWER(customers.name) LIKE LOWER(?)", like, like)
	}

	var invoices []models.Invoice
	// Drafts have no number and sort after issued invoices.
	query.Order("CASE WHEN invoices.number IS NULL THEN 1 ELSE 0 END").
		Order("invoices.number DESC").
		Order("invoices.created_at DESC").
		Preload("Customer").
		Preload("Items").
		Find(&invoices)

	yearInvoices, err := h.svc.ForYear(selectedYear)
	if err != nil {
		http.Error(w, "Failed to load invoices", http.StatusInternalServerError)
		return
	}
	summary := services.Summarize(yearInvoices)

	view.Render(w, r, "invoices/list.html", map[string]any{
		"Invoices":       invoices,
		"Status":         status,
		"Search":         search,
		"Years":          years,
		"SelectedYear":   selectedYear,
		"Summary":        summary,
		"NativeCurrency": h.nativeCurrency,
	})
}

func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	today := time.Now().Truncate(24 * time.Hour)
	defaultPaymentDays := 14

	nextNumber, err := services.NextInvoiceNumber(h.db, today)
	if err != nil {
		http.Error(w, "Failed to compute next invoice number", http.StatusInternalServerError)
		return
	}

	texts := h.allTexts()
	defaultEnabled := make([]string, 0, len(texts))
	for _, t := range texts {
		if t.DefaultEnabled {
			defaultEnabled = append(defaultEnabled, t.Key)
		}
	}

	view.Render(w, r, "invoices/form.html", map[string]any{
		"Invoice":            nil,
		"Customers":          h.allCustomers(),
		"OptionalTexts":      texts,
		"Templates":          models.Templates,
		"Today":              today,
		"DefaultDue":         today.AddDate(0, 0, defaultPaymentDays),
		"DefaultEnabled":     defaultEnabled,
		"NextNumber":         nextNumber,
		"DefaultPaymentDays": defaultPaymentDays,
		"NativeCurrency":     h.nativeCurrency,
	})
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.ParseForm()
	v := make(validation.Violations)
	inv := &models.Invoice{}
	items := h.applyForm(r, inv, v)

	if !v.Empty() {
		// No invoice exists yet; the form must keep posting to the
		// create URL, not an edit URL for ID 0.
		today := time.Now().Truncate(24 * time.Hour)
		view.Render(w, r, "invoices/form.html", map[string]any{
			"Invoice":        nil,
			"Customers":      h.allCustomers(),
			"OptionalTexts":  h.allTexts(),
			"Templates":      models.Templates,
			"Errors":         v,
			"Today":          today,
			"DefaultDue":     today.AddDate(0, 0, 14),
			"DefaultEnabled": []string(inv.OptionalTexts),
			"NativeCurrency": h.nativeCurrency,
		})
		return
	}

	issue := r.FormValue("action") == "issue"
	providedNumber := strings.TrimSpace(r.FormValue("invoice_number"))

	if err := h.svc.Create(inv, items, issue, providedNumber); err != nil {
		http.Error(w, "Failed to create invoice", http.StatusInternalServerError)
		return
	}

	if issue {
		view.SetFlash(w, "success", fmt.Sprintf("Invoice %s created and issued.", *inv.Number))
	} else {
		view.SetFlash(w, "success", fmt.Sprintf("Draft #%d saved.", inv.ID))
	}
	http.Redirect(w, r, "/invoices/"+strconv.Itoa(int(inv.ID)), http.StatusSeeOther)
}

func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}
	view.Render(w, r, "invoices/detail.html", map[string]any{
		"Invoice":        inv,
		"NativeCurrency": h.nativeCurrency,
	})
}

func (h *InvoiceHandler) Edit(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}
	if !inv.CanEdit() {
		view.SetFlash(w, "error", "Only draft invoices can be edited.")
		http.Redirect(w, r, "/invoices/"+strconv.Itoa(int(inv.ID)), http.StatusSeeOther)
		return
	}

	paymentDays := 14
	if !inv.IssueDate.IsZero() && !inv.DueDate.IsZero() {
		paymentDays = int(inv.DueDate.Sub(inv.IssueDate).Hours() / 24)
	}

	var nextNumber string
	if inv.Number == nil {
		var err error
		nextNumber, err = services.NextInvoiceNumber(h.db, inv.IssueDate)
		if err != nil {
			http.Error(w, "Failed to compute next invoice number", http.StatusInternalServerError)
			return
		}
	}

	view.Render(w, r, "invoices/form.html", map[string]any{
		"Invoice":            inv,
		"Customers":          h.allCustomers(),
		"OptionalTexts":      h.allTexts(),
		"Templates":          models.Templates,
		"DefaultEnabled":     []string(inv.OptionalTexts),
		"DefaultPaymentDays": paymentDays,
		"NextNumber":         nextNumber,
		"NativeCurrency":     h.nativeCurrency,
	})
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}
	if !inv.CanEdit() {
		view.SetFlash(w, "error", "Only draft invoices can be edited.")
		http.Redirect(w, r, "/invoices/"+strconv.Itoa(int(inv.ID)), http.StatusSeeOther)
		return
	}

	r.ParseForm()
	v := make(validation.Violations)
	items := h.applyForm(r, inv, v)

	if !v.Empty() {
		view.Render(w, r, "invoices/form.html", map[string]any{
			"Invoice":        inv,
			"Customers":      h.allCustomers(),
			"OptionalTexts":  h.allTexts(),
			"Templates":      models.Templates,
			"Errors":         v,
			"DefaultEnabled": []string(inv.OptionalTexts),
			"NativeCurrency": h.nativeCurrency,
		})
		return
	}

	issue := r.FormValue("action") == "issue"
	providedNumber := strings.TrimSpace(r.FormValue("invoice_number"))

	if err := h.svc.Update(inv, items, issue, providedNumber); err != nil {
		http.Error(w, "Failed to update invoice", http.StatusInternalServerError)
		return
	}

	if issue {
		view.SetFlash(w, "success", fmt.Sprintf("Invoice %s issued.", *inv.Number))
	} else {
		view.SetFlash(w, "success", fmt.Sprintf("Draft #%d updated.", inv.ID))
	}
	http.Redirect(w, r, "/invoices/"+strconv.Itoa(int(inv.ID)), http.StatusSeeOther)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}

	display := inv.DisplayNumber()
	if err := h.svc.Delete(inv); err != nil {
		if errors.Is(err, services.ErrNotDraft) {
			view.SetFlash(w, "error", "Only draft invoices can be deleted.")
			http.Redirect(w, r, "/invoices", http.StatusSeeOther)
			return
		}
		http.Error(w, "Failed to delete invoice", http.StatusInternalServerError)
		return
	}

	view.SetFlash(w, "success", fmt.Sprintf("%s deleted.", display))
	http.Redirect(w, r, "/invoices", http.StatusSeeOther)
}

func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}

	pdfBytes, err := h.renderer.PDF(r.Context(), inv, h.enabledTexts(inv))
	if err != nil {
		if errors.Is(err, render.ErrTemplateUnknown) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to generate PDF: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", inv.DisplayNumber()))
	w.Write(pdfBytes)
}

func (h *InvoiceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}

	html, err := h.renderer.HTML(inv, h.enabledTexts(inv))
	if err != nil {
		if errors.Is(err, render.ErrTemplateUnknown) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to render invoice: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (h *InvoiceHandler) Issue(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}

	if err := h.svc.Issue(inv); err != nil {
		if errors.Is(err, services.ErrNotDraft) {
			view.SetFlash(w, "error", "Only draft invoices can be issued.")
			http.Redirect(w, r, "/invoices/"+strconv.Itoa(int(inv.ID)), http.StatusSeeOther)
			return
		}
		http.Error(w, "Failed to issue invoice", http.StatusInternalServerError)
		return
	}

	view.SetFlash(w, "success", fmt.Sprintf("Invoice %s has been issued.", *inv.Number))
	http.Redirect(w, r, "/invoices/"+strconv.Itoa(int(inv.ID)), http.StatusSeeOther)
}

func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.find(w, r)
	if !ok {
		return
	}

	if err := h.svc.MarkPaid(inv); err != nil {
		if errors.Is(err, services.ErrAlreadyPaid) {
			view.SetFlash(w, "error", "Invoice is already marked as paid.")
			http.Redirect(w, r, "/invoices/"+strconv.Itoa(int(inv.ID)), http.StatusSeeOther)
			return
		}
		http.Error(w, "Failed to mark invoice as paid", http.StatusInternalServerError)
		return
	}

	view.SetFlash(w, "success", fmt.Sprintf("Invoice %s marked as paid.", inv.DisplayNumber()))
	http.Redirect(w, r, "/invoices/"+strconv.Itoa(int(inv.ID)), http.StatusSeeOther)
}

func (h *InvoiceHandler) find(w http.ResponseWriter, r *http.Request) (*models.Invoice, bool) {
	id := r.PathValue("id")
	var inv models.Invoice
	err := h.db.Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&inv, "id = ?", id).Error
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return &inv, true
}

func (h *InvoiceHandler) allCustomers() []models.Customer {
	var customers []models.Customer
	h.db.Order("name").Find(&customers)
	return customers
}

func (h *InvoiceHandler) allTexts() []models.OptionalText {
	var texts []models.OptionalText
	h.db.Find(&texts)
	return texts
}

// enabledTexts loads the optional text blocks whose keys are enabled on the
// invoice.
func (h *InvoiceHandler) enabledTexts(inv *models.Invoice) []models.OptionalText {
	if len(inv.OptionalTexts) == 0 {
		return nil
	}
	var texts []models.OptionalText
	h.db.Where("key IN ?", []string(inv.OptionalTexts)).Find(&texts)
	return texts
}

// applyForm copies the submitted invoice fields onto inv and returns the
// parsed item rows. Rows with a blank description are skipped.
func (h *InvoiceHandler) applyForm(r *http.Request, inv *models.Invoice, v validation.Violations) []models.InvoiceItem {
	customerID, _ := strconv.ParseUint(r.FormValue("customer_id"), 10, 32)
	if customerID == 0 {
		v["customer_id"] = "required"
	}
	inv.CustomerID = uint(customerID)

	inv.Template = r.FormValue("template")
	if inv.Template == "" {
		inv.Template = models.TemplateDefault
	}

	if issueDate, ok := validation.Date("issue_date", r.FormValue("issue_date"), true, v); ok {
		inv.IssueDate = issueDate
	}
	if dueDate, ok := validation.Date("due_date", r.FormValue("due_date"), true, v); ok {
		inv.DueDate = dueDate
	}
	inv.DeliveryDate = nil
	if deliveryDate, ok := validation.Date("delivery_date", r.FormValue("delivery_date"), false, v); ok {
		inv.DeliveryDate = &deliveryDate
	}

	inv.Currency = r.FormValue("currency")
	if inv.Currency == "" {
		inv.Currency = h.nativeCurrency
	}
	inv.ExchangeRate = validation.Decimal("exchange_rate", r.FormValue("exchange_rate"), "1", v)

	inv.Notes = r.FormValue("notes")
	inv.OptionalTexts = datatypes.NewJSONSlice(r.Form["optional_texts"])

	descriptions := r.Form["item_description[]"]
	quantities := r.Form["item_quantity[]"]
	units := r.Form["item_unit[]"]
	prices := r.Form["item_price[]"]
	taxRates := r.Form["item_tax[]"]

	at := func(list []string, i int) string {
		if i < len(list) {
			return list[i]
		}
		return ""
	}

	var items []models.InvoiceItem
	for i, desc := range descriptions {
		if strings.TrimSpace(desc) == "" {
			continue
		}
		unit := at(units, i)
		if unit == "" {
			unit = "pcs"
		}
		items = append(items, models.InvoiceItem{
			Description: desc,
			Quantity:    validation.Decimal("item_quantity", at(quantities, i), "1", v),
			Unit:        unit,
			UnitPrice:   validation.Decimal("item_price", at(prices, i), "0", v),
			TaxRate:     validation.Decimal("item_tax", at(taxRates, i), "0", v),
		})
	}
	return items
}
