package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-invoicing/internal/models"
)

// NextInvoiceNumber returns the next sequential invoice number for the year
// of issueDate, in the format YY-NNNN. The sequence restarts at 1 each year.
//
// This is a plain read-then-compute lookup with no locking: two concurrent
// issue actions for the same year can draw the same number. Known
// limitation.
func NextInvoiceNumber(db *gorm.DB, issueDate time.Time) (string, error) {
	year := issueDate.Format("06")

	var last models.Invoice
	err := db.Where("number LIKE ?", year+"-%").
		Order("number DESC").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Sprintf("%s-%04d", year, 1), nil
	}
	if err != nil {
		return "", fmt.Errorf("find last invoice number: %w", err)
	}

	parts := strings.SplitN(*last.Number, "-", 2)
	seq, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", fmt.Errorf("parse invoice number %q: %w", *last.Number, err)
	}
	return fmt.Sprintf("%s-%04d", year, seq+1), nil
}
