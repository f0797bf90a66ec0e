package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestInvoiceItem_Figures(t *testing.T) {
	tests := []struct {
		name         string
		quantity     string
		unitPrice    string
		taxRate      string
		lineTotal    string
		taxAmount    string
		totalWithTax string
	}{
		{"3 x 19.99 at 21%", "3", "19.99", "21", "59.97", "12.5937", "72.5637"},
		{"whole numbers", "2", "100", "20", "200", "40", "240"},
		{"zero tax", "1.5", "10", "0", "15", "0", "15"},
		{"fractional quantity", "0.25", "80", "21", "20", "4.2", "24.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &InvoiceItem{
				Quantity:  d(tt.quantity),
				UnitPrice: d(tt.unitPrice),
				TaxRate:   d(tt.taxRate),
			}
			if got := item.LineTotal(); !got.Equal(d(tt.lineTotal)) {
				t.Errorf("LineTotal() = %s, want %s", got, tt.lineTotal)
			}
			if got := item.TaxAmount(); !got.Equal(d(tt.taxAmount)) {
				t.Errorf("TaxAmount() = %s, want %s", got, tt.taxAmount)
			}
			if got := item.TotalWithTax(); !got.Equal(d(tt.totalWithTax)) {
				t.Errorf("TotalWithTax() = %s, want %s", got, tt.totalWithTax)
			}
		})
	}
}

func TestInvoice_Totals(t *testing.T) {
	inv := &Invoice{
		Items: []InvoiceItem{
			{Quantity: d("3"), UnitPrice: d("19.99"), TaxRate: d("21")},
			{Quantity: d("1"), UnitPrice: d("50"), TaxRate: d("10")},
		},
	}

	if got := inv.Subtotal(); !got.Equal(d("109.97")) {
		t.Errorf("Subtotal() = %s, want 109.97", got)
	}
	if got := inv.TaxTotal(); !got.Equal(d("17.5937")) {
		t.Errorf("TaxTotal() = %s, want 17.5937", got)
	}
	if got := inv.Total(); !got.Equal(inv.Subtotal().Add(inv.TaxTotal())) {
		t.Errorf("Total() = %s, want Subtotal+TaxTotal", got)
	}
}

func TestInvoice_TotalsEmpty(t *testing.T) {
	inv := &Invoice{}
	for name, got := range map[string]decimal.Decimal{
		"Subtotal":    inv.Subtotal(),
		"TaxTotal":    inv.TaxTotal(),
		"Total":       inv.Total(),
		"NativeTotal": inv.NativeTotal(),
	} {
		if !got.IsZero() {
			t.Errorf("%s = %s, want 0 for empty invoice", name, got)
		}
	}
}

func TestInvoice_NativeTotal(t *testing.T) {
	inv := &Invoice{
		ExchangeRate: d("0.92"),
		Items: []InvoiceItem{
			{Quantity: d("1"), UnitPrice: d("100"), TaxRate: d("0")},
		},
	}
	if got := inv.NativeTotal(); !got.Equal(d("92")) {
		t.Errorf("NativeTotal() = %s, want 92", got)
	}

	// Zero rate falls back to 1.
	inv.ExchangeRate = decimal.Zero
	if got := inv.NativeTotal(); !got.Equal(d("100")) {
		t.Errorf("NativeTotal() with zero rate = %s, want 100", got)
	}
}

func TestInvoice_DisplayNumber(t *testing.T) {
	number := "25-0007"
	tests := []struct {
		name    string
		invoice Invoice
		want    string
	}{
		{"draft", Invoice{ID: 3}, "Draft #3"},
		{"issued", Invoice{ID: 3, Number: &number}, "25-0007"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.invoice.DisplayNumber(); got != tt.want {
				t.Errorf("DisplayNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInvoice_Status(t *testing.T) {
	tests := []struct {
		name    string
		status  InvoiceStatus
		isDraft bool
		canEdit bool
	}{
		{"draft", InvoiceStatusDraft, true, true},
		{"issued", InvoiceStatusIssued, false, false},
		{"paid", InvoiceStatusPaid, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invoice{Status: tt.status}
			if got := inv.IsDraft(); got != tt.isDraft {
				t.Errorf("IsDraft() = %v, want %v", got, tt.isDraft)
			}
			if got := inv.CanEdit(); got != tt.canEdit {
				t.Errorf("CanEdit() = %v, want %v", got, tt.canEdit)
			}
		})
	}
}

func TestCustomer_FullAddress(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		want     string
	}{
		{
			name: "full address",
			customer: Customer{
				AddressLine1: "123 Main St",
				Zipcode:      "75001",
				City:         "Paris",
				Country:      "France",
			},
			want: "123 Main St\n75001 Paris\nFrance",
		},
		{
			name:     "only city",
			customer: Customer{City: "Paris"},
			want:     "Paris",
		},
		{
			name: "two address lines",
			customer: Customer{
				AddressLine1: "123 Main St",
				AddressLine2: "Suite 5",
				City:         "Paris",
			},
			want: "123 Main St\nSuite 5\nParis",
		},
		{
			name:     "empty",
			customer: Customer{},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.customer.FullAddress(); got != tt.want {
				t.Errorf("FullAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}
