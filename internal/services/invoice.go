package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/go-invoicing/internal/models"
)

var (
	// ErrNotDraft is returned when a structural change is attempted on an
	// invoice that has already been issued.
	ErrNotDraft = errors.New("invoice is not a draft")

	// ErrAlreadyPaid is returned when marking an invoice paid twice.
	ErrAlreadyPaid = errors.New("invoice is already paid")

	// ErrNoCustomer is returned when an invoice has no customer selected.
	ErrNoCustomer = errors.New("invoice has no customer")
)

// InvoiceService encapsulates the invoice lifecycle: draft creation, the
// bulk item replace on edit, issuing (number assignment) and payment.
type InvoiceService struct {
	db             *gorm.DB
	nativeCurrency string
}

func NewInvoiceService(db *gorm.DB, nativeCurrency string) *InvoiceService {
	return &InvoiceService{db: db, nativeCurrency: nativeCurrency}
}

// normalizeRate forces the exchange rate to 1 when the invoice currency is
// the native currency, per the accounting model.
func (s *InvoiceService) normalizeRate(inv *models.Invoice) {
	if inv.Currency == s.nativeCurrency || inv.ExchangeRate.IsZero() {
		inv.ExchangeRate = decimal.NewFromInt(1)
	}
}

// Create persists a new invoice with its items in one transaction. When
// issue is true the invoice is created already issued: providedNumber is
// used if non-empty, otherwise the next sequential number is assigned.
func (s *InvoiceService) Create(inv *models.Invoice, items []models.InvoiceItem, issue bool, providedNumber string) error {
	if inv.CustomerID == 0 {
		return ErrNoCustomer
	}
	s.normalizeRate(inv)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if issue {
			number := providedNumber
			if number == "" {
				var err error
				number, err = NextInvoiceNumber(tx, inv.IssueDate)
				if err != nil {
					return err
				}
			}
			inv.Number = &number
			inv.Status = models.InvoiceStatusIssued
		} else {
			inv.Number = nil
			inv.Status = models.InvoiceStatusDraft
		}

		if err := tx.Create(inv).Error; err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		return replaceItems(tx, inv.ID, items)
	})
}

// Update saves edited fields and replaces all items of a draft invoice.
// When issue is true the draft is issued in the same transaction.
// Non-draft invoices are rejected with ErrNotDraft.
func (s *InvoiceService) Update(inv *models.Invoice, items []models.InvoiceItem, issue bool, providedNumber string) error {
	if !inv.CanEdit() {
		return ErrNotDraft
	}
	s.normalizeRate(inv)

	return s.db.Transaction(func(tx *gorm.DB) error {
		if issue && inv.Number == nil {
			number := providedNumber
			if number == "" {
				var err error
				number, err = NextInvoiceNumber(tx, inv.IssueDate)
				if err != nil {
					return err
				}
			}
			inv.Number = &number
			inv.Status = models.InvoiceStatusIssued
		}

		if err := tx.Save(inv).Error; err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		return replaceItems(tx, inv.ID, items)
	})
}

// replaceItems deletes every existing item and inserts the new ordered set.
// Edits always replace wholesale rather than diffing.
func replaceItems(tx *gorm.DB, invoiceID uint, items []models.InvoiceItem) error {
	if err := tx.Where("invoice_id = ?", invoiceID).Delete(&models.InvoiceItem{}).Error; err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	for i := range items {
		items[i].ID = 0
		items[i].InvoiceID = invoiceID
		items[i].Position = i
		if err := tx.Create(&items[i]).Error; err != nil {
			return fmt.Errorf("create invoice item: %w", err)
		}
	}
	return nil
}

// Issue transitions a draft to issued, assigning its number exactly once.
// Re-issuing an issued invoice is rejected with ErrNotDraft.
func (s *InvoiceService) Issue(inv *models.Invoice) error {
	if !inv.IsDraft() {
		return ErrNotDraft
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if inv.Number == nil {
			number, err := NextInvoiceNumber(tx, inv.IssueDate)
			if err != nil {
				return err
			}
			inv.Number = &number
		}
		inv.Status = models.InvoiceStatusIssued
		return tx.Save(inv).Error
	})
}

// MarkPaid transitions an invoice to paid. Paying twice is rejected.
func (s *InvoiceService) MarkPaid(inv *models.Invoice) error {
	if inv.Status == models.InvoiceStatusPaid {
		return ErrAlreadyPaid
	}
	inv.Status = models.InvoiceStatusPaid
	return s.db.Save(inv).Error
}

// Delete removes a draft invoice and its items. Issued invoices cannot be
// deleted.
func (s *InvoiceService) Delete(inv *models.Invoice) error {
	if !inv.IsDraft() {
		return ErrNotDraft
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(inv).Error
	})
}

// YearSummary carries the per-year figures shown on the invoice list:
// native-currency sums and status counts.
type YearSummary struct {
	Paid    decimal.Decimal
	Pending decimal.Decimal
	Draft   decimal.Decimal
	Total   decimal.Decimal

	CountTotal  int
	CountDraft  int
	CountIssued int
	CountPaid   int
}

// Summarize recomputes the year figures from the given invoices. Items must
// be preloaded; totals are derived, never read from storage.
func Summarize(invoices []models.Invoice) YearSummary {
	sum := YearSummary{
		Paid:    decimal.Zero,
		Pending: decimal.Zero,
		Draft:   decimal.Zero,
		Total:   decimal.Zero,
	}
	for i := range invoices {
		inv := &invoices[i]
		native := inv.NativeTotal()
		sum.Total = sum.Total.Add(native)
		sum.CountTotal++
		switch inv.Status {
		case models.InvoiceStatusPaid:
			sum.Paid = sum.Paid.Add(native)
			sum.CountPaid++
		case models.InvoiceStatusIssued:
			sum.Pending = sum.Pending.Add(native)
			sum.CountIssued++
		case models.InvoiceStatusDraft:
			sum.Draft = sum.Draft.Add(native)
			sum.CountDraft++
		}
	}
	return sum
}

// Years returns every year that has at least one invoice, newest first,
// always including the current year.
func (s *InvoiceService) Years(now time.Time) ([]int, error) {
	var invoices []models.Invoice
	if err := s.db.Select("issue_date").Find(&invoices).Error; err != nil {
		return nil, err
	}
	seen := map[int]bool{now.Year(): true}
	for _, inv := range invoices {
		seen[inv.IssueDate.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	// newest first
	for i := 0; i < len(years); i++ {
		for j := i + 1; j < len(years); j++ {
			if years[j] > years[i] {
				years[i], years[j] = years[j], years[i]
			}
		}
	}
	return years, nil
}

// ForYear loads every invoice issued in the given year with items preloaded,
// for the list-page summary.
func (s *InvoiceService) ForYear(year int) ([]models.Invoice, error) {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	var invoices []models.Invoice
	err := s.db.Where("issue_date >= ? AND issue_date < ?", start, end).
		Preload("Items").
		Find(&invoices).Error
	return invoices, err
}
