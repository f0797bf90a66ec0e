package models

import (
	"time"
)

// Customer represents a billed party.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name        string `gorm:"size:255;not null" json:"name"`
	LegalName   string `gorm:"size:255" json:"legal_name,omitempty"`
	LegalNumber string `gorm:"size:100" json:"legal_number,omitempty"`
	VATNumber   string `gorm:"size:50" json:"vat_number,omitempty"`
	Email       string `gorm:"size:255" json:"email,omitempty"`

	// Address
	AddressLine1 string `gorm:"size:255" json:"address_line1,omitempty"`
	AddressLine2 string `gorm:"size:255" json:"address_line2,omitempty"`
	City         string `gorm:"size:100" json:"city,omitempty"`
	State        string `gorm:"size:100" json:"state,omitempty"`
	Zipcode      string `gorm:"size:20" json:"zipcode,omitempty"`
	Country      string `gorm:"size:100" json:"country,omitempty"`

	// PaymentTerms is the number of days until an invoice is due.
	PaymentTerms int `gorm:"default:14" json:"payment_terms"`

	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"-"`
}

// FullAddress returns the formatted postal address.
func (c *Customer) FullAddress() string {
	addr := c.AddressLine1
	if c.AddressLine2 != "" {
		if addr != "" {
			addr += "\n"
		}
		addr += c.AddressLine2
	}
	if c.Zipcode != "" || c.City != "" {
		if addr != "" {
			addr += "\n"
		}
		addr += c.Zipcode
		if c.Zipcode != "" && c.City != "" {
			addr += " "
		}
		addr += c.City
	}
	if c.Country != "" {
		if addr != "" {
			addr += "\n"
		}
		addr += c.Country
	}
	return addr
}
