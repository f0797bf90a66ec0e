package db

import (
	"errors"

	"gorm.io/gorm"

	"github.com/diewo77/go-invoicing/internal/models"
)

// Seed creates the default optional text blocks if they do not exist yet.
// Existing rows are never touched, so user edits survive restarts.
func Seed(db *gorm.DB) error {
	defaults := []models.OptionalText{
		{
			Key:            "vat_reverse_charge",
			Label:          "VAT Reverse Charge",
			Content:        "VAT reverse charge under Article 44 of VAT Directive 2006/112/ES.",
			DefaultEnabled: false,
		},
		{
			Key:            "bank_details",
			Label:          "Bank Details",
			Content:        "Bank: {bank_name}\nIBAN: {iban}\nSWIFT: {swift}",
			DefaultEnabled: true,
		},
		{
			Key:            "payment_terms",
			Label:          "Payment Terms",
			Content:        "Payment due within 14 days.",
			DefaultEnabled: true,
		},
	}

	for _, text := range defaults {
		var existing models.OptionalText
		err := db.Where("key = ?", text.Key).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&text).Error; err != nil {
			return err
		}
	}
	return nil
}
