package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/diewo77/go-invoicing/httpx"
	"github.com/diewo77/go-invoicing/internal/models"
	"github.com/diewo77/go-invoicing/validation"
	"github.com/diewo77/go-invoicing/view"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	db := h.db.Model(&models.Customer{})
	if search != "" {
		like := "%" + search + "%"
		db = db.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?) OR LOWER(vat_number) LIKE LOWER(?)",
			like, like, like,
		)
	}

	var customers []models.Customer
	db.Order("name").Find(&customers)

	view.Render(w, r, "customers/list.html", map[string]any{
		"Customers": customers,
		"Search":    search,
	})
}

func (h *CustomerHandler) New(w http.ResponseWriter, r *http.Request) {
	view.Render(w, r, "customers/form.html", map[string]any{
		"Customer":            nil,
		"DefaultPaymentTerms": 14,
	})
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	customer := customerFromForm(r)

	v := make(validation.Violations)
	validation.Required("name", customer.Name, v)
	if !v.Empty() {
		view.Render(w, r, "customers/form.html", map[string]any{
			"Customer": customer,
			"Errors":   v,
		})
		return
	}

	if err := h.db.Create(customer).Error; err != nil {
		http.Error(w, "Failed to create customer", http.StatusInternalServerError)
		return
	}

	view.SetFlash(w, "success", fmt.Sprintf("Customer '%s' created successfully.", customer.Name))
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

func (h *CustomerHandler) View(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.find(w, r)
	if !ok {
		return
	}
	view.Render(w, r, "customers/detail.html", map[string]any{
		"Customer": customer,
	})
}

func (h *CustomerHandler) Edit(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.find(w, r)
	if !ok {
		return
	}
	view.Render(w, r, "customers/form.html", map[string]any{
		"Customer": customer,
	})
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.find(w, r)
	if !ok {
		return
	}

	updated := customerFromForm(r)
	updated.ID = customer.ID
	updated.CreatedAt = customer.CreatedAt

	v := make(validation.Violations)
	validation.Required("name", updated.Name, v)
	if !v.Empty() {
		view.Render(w, r, "customers/form.html", map[string]any{
			"Customer": updated,
			"Errors":   v,
		})
		return
	}

	if err := h.db.Save(updated).Error; err != nil {
		http.Error(w, "Failed to update customer", http.StatusInternalServerError)
		return
	}

	view.SetFlash(w, "success", fmt.Sprintf("Customer '%s' updated successfully.", updated.Name))
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	customer, ok := h.find(w, r)
	if !ok {
		return
	}

	var invoiceCount int64
	h.db.Model(&models.Invoice{}).Where("customer_id = ?", customer.ID).Count(&invoiceCount)
	if invoiceCount > 0 {
		view.SetFlash(w, "error", fmt.Sprintf("Cannot delete customer '%s' - has existing invoices.", customer.Name))
		http.Redirect(w, r, "/customers", http.StatusSeeOther)
		return
	}

	if err := h.db.Delete(customer).Error; err != nil {
		http.Error(w, "Failed to delete customer", http.StatusInternalServerError)
		return
	}

	view.SetFlash(w, "success", fmt.Sprintf("Customer '%s' deleted.", customer.Name))
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

// JSON returns the customer as JSON, used by the invoice form to autofill
// customer details.
func (h *CustomerHandler) JSON(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := h.db.First(&customer, "id = ?", r.PathValue("id")).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "customer not found")
		return
	}
	httpx.JSON(w, http.StatusOK, &customer)
}

func (h *CustomerHandler) find(w http.ResponseWriter, r *http.Request) (*models.Customer, bool) {
	id := r.PathValue("id")
	var customer models.Customer
	if err := h.db.First(&customer, "id = ?", id).Error; err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return &customer, true
}

func customerFromForm(r *http.Request) *models.Customer {
	paymentTerms, err := strconv.Atoi(r.FormValue("payment_terms"))
	if err != nil || paymentTerms <= 0 {
		paymentTerms = 14
	}
	return &models.Customer{
		Name:         r.FormValue("name"),
		LegalName:    r.FormValue("legal_name"),
		LegalNumber:  r.FormValue("legal_number"),
		VATNumber:    r.FormValue("vat_number"),
		Email:        r.FormValue("email"),
		AddressLine1: r.FormValue("address_line1"),
		AddressLine2: r.FormValue("address_line2"),
		City:         r.FormValue("city"),
		State:        r.FormValue("state"),
		Zipcode:      r.FormValue("zipcode"),
		Country:      r.FormValue("country"),
		PaymentTerms: paymentTerms,
	}
}
