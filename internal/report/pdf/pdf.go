// Package pdf renders the composed document model to PDF bytes and
// provides the font metrics composition needs. It is the only package
// that talks to the PDF library; everything upstream is backend
// independent.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"custodia/internal/report/doc"
)

// Point-to-millimeter conversion and the vertical advance factor of a
// text line.
const (
	ptToMM     = 25.4 / 72.0
	lineFactor = 1.35
)

// Backend wraps one gofpdf instance. It is not safe for concurrent use;
// create one per report generation.
type Backend struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func New() *Backend {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetAutoPageBreak(false, 0)

	return &Backend{
		pdf: p,
		// Core fonts are cp1252; the translator keeps the Portuguese
		// accents intact.
		tr: p.UnicodeTranslatorFromDescriptor(""),
	}
}

// TextWidth implements doc.TextMeasurer.
func (b *Backend) TextWidth(text string, f doc.Font) float64 {
	b.pdf.SetFont(f.Family, f.Style, f.Size)
	return b.pdf.GetStringWidth(b.tr(text))
}

// LineHeight implements doc.TextMeasurer.
func (b *Backend) LineHeight(f doc.Font) float64 {
	return f.Size * ptToMM * lineFactor
}

// Render emits the document model as PDF bytes.
func (b *Backend) Render(d *doc.Document) ([]byte, error) {
	imageIdx := 0

	for _, page := range d.Pages {
		b.pdf.AddPage()

		for _, op := range page.Ops {
			switch o := op.(type) {
			case doc.Text:
				b.renderText(o)
			case doc.Image:
				imageIdx++
				b.renderImage(o, imageIdx)
			case doc.Rect:
				b.pdf.SetFillColor(int(o.Fill.R), int(o.Fill.G), int(o.Fill.B))
				b.pdf.Rect(o.X, o.Y, o.W, o.H, "F")
			case doc.Line:
				b.pdf.SetDrawColor(200, 200, 200)
				b.pdf.SetLineWidth(0.2)
				b.pdf.Line(o.X1, o.Y1, o.X2, o.Y2)
			}
		}
	}

	if err := b.pdf.Error(); err != nil {
		return nil, fmt.Errorf("building pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := b.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func (b *Backend) renderText(o doc.Text) {
	b.pdf.SetFont(o.Font.Family, o.Font.Style, o.Font.Size)
	b.pdf.SetTextColor(int(o.Color.R), int(o.Color.G), int(o.Color.B))
	b.pdf.SetXY(o.X, o.Y)

	align := "L"

	switch o.Align {
	case doc.AlignCenter:
		align = "C"
	case doc.AlignRight:
		align = "R"
	}

	b.pdf.CellFormat(o.W, b.LineHeight(o.Font), b.tr(o.Content), "", 0, align, false, 0, "")
}

func (b *Backend) renderImage(o doc.Image, idx int) {
	name := fmt.Sprintf("img%d", idx)
	opts := gofpdf.ImageOptions{ImageType: o.Format}

	b.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(o.Data))
	b.pdf.ImageOptions(name, o.X, o.Y, o.W, o.H, false, opts, 0, "")
}
