package render

import (
	"context"
	"fmt"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/diewo77/go-invoicing/internal/models"
)

// PDFEngine turns rendered HTML into PDF bytes. The document layout lives
// entirely in the HTML; engines must not add layout of their own.
type PDFEngine interface {
	GeneratePDF(ctx context.Context, html string) ([]byte, error)
}

// WkhtmltopdfEngine renders HTML through the wkhtmltopdf binary.
type WkhtmltopdfEngine struct{}

func NewWkhtmltopdfEngine() *WkhtmltopdfEngine { return &WkhtmltopdfEngine{} }

func (e *WkhtmltopdfEngine) GeneratePDF(ctx context.Context, html string) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("init wkhtmltopdf: %w", err)
	}
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.Dpi.Set(96)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return pdfg.Bytes(), nil
}

// PDF renders the invoice document and converts it with the configured
// engine. The PDF is byte-for-byte derived from the same HTML the preview
// serves.
func (r *Renderer) PDF(ctx context.Context, inv *models.Invoice, texts []models.OptionalText) ([]byte, error) {
	html, err := r.HTML(inv, texts)
	if err != nil {
		return nil, err
	}
	return r.engine.GeneratePDF(ctx, html)
}
