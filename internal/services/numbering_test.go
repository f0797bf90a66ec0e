package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-invoicing/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.OptionalText{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func testCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()
	c := &models.Customer{Name: "Acme Corp", PaymentTerms: 14}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

func issuedInvoice(t *testing.T, db *gorm.DB, customerID uint, number string, issueDate time.Time) *models.Invoice {
	t.Helper()
	inv := &models.Invoice{
		CustomerID: customerID,
		Number:     &number,
		Status:     models.InvoiceStatusIssued,
		IssueDate:  issueDate,
		DueDate:    issueDate.AddDate(0, 0, 14),
	}
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("create invoice %s: %v", number, err)
	}
	return inv
}

func TestNextInvoiceNumber(t *testing.T) {
	db := testDB(t)
	c := testCustomer(t, db)

	jan2025 := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("empty year starts at 1", func(t *testing.T) {
		got, err := NextInvoiceNumber(db, jan2025)
		if err != nil {
			t.Fatalf("NextInvoiceNumber: %v", err)
		}
		if got != "25-0001" {
			t.Errorf("got %q, want 25-0001", got)
		}
	})

	t.Run("stable until consumed", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			got, err := NextInvoiceNumber(db, jan2025)
			if err != nil {
				t.Fatalf("NextInvoiceNumber: %v", err)
			}
			if got != "25-0001" {
				t.Errorf("call %d: got %q, want 25-0001", i, got)
			}
		}
	})

	t.Run("increments past highest", func(t *testing.T) {
		issuedInvoice(t, db, c.ID, "25-0001", jan2025)
		issuedInvoice(t, db, c.ID, "25-0007", jan2025.AddDate(0, 1, 0))

		got, err := NextInvoiceNumber(db, jan2025)
		if err != nil {
			t.Fatalf("NextInvoiceNumber: %v", err)
		}
		if got != "25-0008" {
			t.Errorf("got %q, want 25-0008", got)
		}
	})

	t.Run("sequence restarts each year", func(t *testing.T) {
		jan2026 := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
		got, err := NextInvoiceNumber(db, jan2026)
		if err != nil {
			t.Fatalf("NextInvoiceNumber: %v", err)
		}
		if got != "26-0001" {
			t.Errorf("got %q, want 26-0001", got)
		}
	})

	t.Run("drafts do not consume numbers", func(t *testing.T) {
		draft := &models.Invoice{
			CustomerID: c.ID,
			Status:     models.InvoiceStatusDraft,
			IssueDate:  jan2025,
			DueDate:    jan2025.AddDate(0, 0, 14),
		}
		if err := db.Create(draft).Error; err != nil {
			t.Fatalf("create draft: %v", err)
		}
		got, err := NextInvoiceNumber(db, jan2025)
		if err != nil {
			t.Fatalf("NextInvoiceNumber: %v", err)
		}
		if got != "25-0008" {
			t.Errorf("got %q, want 25-0008", got)
		}
	})
}
