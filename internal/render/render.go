// Package render assembles the invoice document: it builds the rendering
// context, executes one of the fixed document templates to HTML, and turns
// that same HTML into a PDF. Preview and PDF share a single render, so the
// two can never diverge.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diewo77/go-invoicing/internal/config"
	"github.com/diewo77/go-invoicing/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrTemplateUnknown is returned when an invoice references a document
// template outside the fixed set. There is no fallback template.
var ErrTemplateUnknown = errors.New("unknown invoice template")

// Totals is the computed totals block of a document.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// InvoiceHeader carries the header fields of the rendered document.
type InvoiceHeader struct {
	DisplayNumber string
	Number        string
	IssueDate     time.Time
	DeliveryDate  *time.Time
	DueDate       time.Time
	Currency      string
	Notes         string
	Status        models.InvoiceStatus
}

// Context is the full data handed to a document template.
type Context struct {
	Invoice       InvoiceHeader
	Customer      *models.Customer
	Items         []models.InvoiceItem
	Totals        Totals
	OptionalTexts []string
	Company       config.CompanyConfig
}

// Renderer renders invoices to HTML and PDF using the company profile.
type Renderer struct {
	company   config.CompanyConfig
	engine    PDFEngine
	templates map[string]*template.Template
}

// New parses the embedded document templates and returns a Renderer.
func New(company config.CompanyConfig, engine PDFEngine) (*Renderer, error) {
	funcs := template.FuncMap{
		"add1": func(i int) int { return i + 1 },
	}
	templates := make(map[string]*template.Template, len(models.Templates))
	for _, name := range models.Templates {
		t, err := template.New(name + ".html").Funcs(funcs).ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = t
	}
	return &Renderer{company: company, engine: engine, templates: templates}, nil
}

// Context assembles the rendering context for an invoice. The invoice must
// have Customer and Items preloaded; texts are the optional text blocks
// enabled on the invoice. Items are ordered by position, and the
// {bank_name}, {iban} and {swift} placeholders in each text are substituted
// from the company profile. Any other braces are left verbatim.
func (r *Renderer) Context(inv *models.Invoice, texts []models.OptionalText) Context {
	items := make([]models.InvoiceItem, len(inv.Items))
	copy(items, inv.Items)
	sort.SliceStable(items, func(a, b int) bool { return items[a].Position < items[b].Position })

	replacer := strings.NewReplacer(
		"{bank_name}", r.company.BankName,
		"{iban}", r.company.IBAN,
		"{swift}", r.company.SWIFT,
	)
	contents := make([]string, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, replacer.Replace(t.Content))
	}

	number := ""
	if inv.Number != nil {
		number = *inv.Number
	}

	return Context{
		Invoice: InvoiceHeader{
			DisplayNumber: inv.DisplayNumber(),
			Number:        number,
			IssueDate:     inv.IssueDate,
			DeliveryDate:  inv.DeliveryDate,
			DueDate:       inv.DueDate,
			Currency:      inv.Currency,
			Notes:         inv.Notes,
			Status:        inv.Status,
		},
		Customer: inv.Customer,
		Items:    items,
		Totals: Totals{
			Subtotal: inv.Subtotal(),
			Tax:      inv.TaxTotal(),
			Total:    inv.Total(),
		},
		OptionalTexts: contents,
		Company:       r.company,
	}
}

// HTML renders the invoice with the document template selected by its
// Template field.
func (r *Renderer) HTML(inv *models.Invoice, texts []models.OptionalText) (string, error) {
	t, ok := r.templates[inv.Template]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateUnknown, inv.Template)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, r.Context(inv, texts)); err != nil {
		return "", fmt.Errorf("render invoice %s: %w", inv.DisplayNumber(), err)
	}
	return buf.String(), nil
}
