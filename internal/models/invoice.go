package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusPaid   InvoiceStatus = "paid"
)

// Invoice template names form a closed set; anything else is an error.
const (
	TemplateDefault  = "default"
	TemplateDetailed = "detailed"
	TemplateMinimal  = "minimal"
)

// Templates lists the selectable invoice document templates.
var Templates = []string{TemplateDefault, TemplateDetailed, TemplateMinimal}

// Invoice represents a billing invoice. Number stays nil while the invoice
// is a draft and is assigned exactly once, at issue time.
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Number *string `gorm:"size:20;uniqueIndex" json:"number"`

	CustomerID uint      `gorm:"index;not null" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Template string `gorm:"size:50;default:'default'" json:"template"`

	IssueDate    time.Time  `gorm:"not null" json:"issue_date"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`
	DueDate      time.Time  `gorm:"not null" json:"due_date"`

	Currency string `gorm:"size:3;default:'EUR'" json:"currency"`

	// ExchangeRate converts Total into the native accounting currency.
	// Forced to 1 when Currency equals the native currency.
	ExchangeRate decimal.Decimal `gorm:"type:decimal(10,6);default:1" json:"exchange_rate"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	// OptionalTexts holds the keys of the optional text blocks enabled on
	// this invoice.
	OptionalTexts datatypes.JSONSlice[string] `json:"optional_texts"`

	Status InvoiceStatus `gorm:"size:20;default:'draft'" json:"status"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// IsDraft returns true while no number has been assigned.
func (i *Invoice) IsDraft() bool {
	return i.Status == InvoiceStatusDraft
}

// CanEdit returns true if the invoice structure may still change.
func (i *Invoice) CanEdit() bool {
	return i.Status == InvoiceStatusDraft
}

// DisplayNumber returns the assigned number, or "Draft #<id>" for drafts.
func (i *Invoice) DisplayNumber() string {
	if i.Number != nil && *i.Number != "" {
		return *i.Number
	}
	return fmt.Sprintf("Draft #%d", i.ID)
}

// Subtotal sums the line totals of all items, tax excluded.
func (i *Invoice) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range i.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// TaxTotal sums the tax amounts of all items.
func (i *Invoice) TaxTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range i.Items {
		total = total.Add(item.TaxAmount())
	}
	return total
}

// Total is the amount due in the invoice currency.
func (i *Invoice) Total() decimal.Decimal {
	return i.Subtotal().Add(i.TaxTotal())
}

// NativeTotal converts Total into the native accounting currency using the
// stored exchange rate.
func (i *Invoice) NativeTotal() decimal.Decimal {
	rate := i.ExchangeRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	return i.Total().Mul(rate)
}

// InvoiceItem represents one line on an invoice. Monetary figures are
// derived on access, never stored.
type InvoiceItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`

	Description string          `gorm:"size:500;not null" json:"description"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:1" json:"quantity"`
	Unit        string          `gorm:"size:20;default:'pcs'" json:"unit"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`

	// TaxRate is a percentage, e.g. 21 for 21%.
	TaxRate decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"tax_rate"`

	// Position orders items on the invoice, zero-based.
	Position int `gorm:"default:0" json:"position"`
}

// LineTotal is quantity times unit price.
func (item *InvoiceItem) LineTotal() decimal.Decimal {
	return item.Quantity.Mul(item.UnitPrice)
}

// TaxAmount is the tax due on this line.
func (item *InvoiceItem) TaxAmount() decimal.Decimal {
	return item.LineTotal().Mul(item.TaxRate.Div(decimal.NewFromInt(100)))
}

// TotalWithTax is the line total including tax.
func (item *InvoiceItem) TotalWithTax() decimal.Decimal {
	return item.LineTotal().Add(item.TaxAmount())
}
