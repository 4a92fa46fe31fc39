// Package certpdf renders certificate PDFs by stamping text and a QR code
// onto a pre-designed template page.
package certpdf

import (
	"fmt"
	"os"

	"github.com/signintech/gopdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/otabek/davomat/internal/pkg/apperrors"
)

// Template page is landscape A4; all positions below are in points from
// the top-left corner and match the printed artwork.
const (
	pageWidth  = 841.89
	pageHeight = 595.28

	shortIDY        = 288
	nameY           = 315
	datesX          = pageWidth - 373
	datesY          = 346
	categoryX       = 135
	categoryY       = 372
	hoursRightInset = 313 // hours text is right-anchored this far from the edge
	hoursY          = 373
	registerX       = pageWidth - 160
	registerY       = 405

	qrSize    = 90
	qrMarginX = 80
	qrMarginY = 80 // from the bottom edge

	// the artwork has no separator between the dates, only a wide gap
	datesGap = "                "
)

// Fields is everything stamped onto the template
type Fields struct {
	StudentName    string
	ShortID        string
	Category       string
	StartDate      string
	EndDate        string
	Hours          string
	RegisterNumber string
	VerifyURL      string
}

// Renderer stamps certificate fields onto the template PDF
type Renderer struct {
	templatePath string
	fontPath     string
}

// NewRenderer validates the template and font up front so a misconfigured
// deployment fails at startup, not on the first issue request.
func NewRenderer(templatePath, fontPath string) (*Renderer, error) {
	if _, err := os.Stat(templatePath); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrTemplateMissing, templatePath)
	}
	if _, err := os.Stat(fontPath); err != nil {
		return nil, fmt.Errorf("certificate font not found at %s: %w", fontPath, err)
	}
	return &Renderer{templatePath: templatePath, fontPath: fontPath}, nil
}

// Render produces the finished PDF as bytes
func (r *Renderer) Render(f Fields) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{Unit: gopdf.UnitPT, PageSize: *gopdf.PageSizeA4Landscape})
	pdf.AddPage()

	tpl := pdf.ImportPage(r.templatePath, 1, "/MediaBox")
	pdf.UseImportedTemplate(tpl, 0, 0, pageWidth, pageHeight)

	if err := pdf.AddTTFFont("cert", r.fontPath); err != nil {
		return nil, fmt.Errorf("%w: loading font: %v", apperrors.ErrCertificateRenderFailed, err)
	}

	if err := r.stampText(&pdf, f); err != nil {
		return nil, err
	}
	if err := r.stampQR(&pdf, f.VerifyURL); err != nil {
		return nil, err
	}

	return pdf.GetBytesPdf(), nil
}

func (r *Renderer) stampText(pdf *gopdf.GoPdf, f Fields) error {
	// Short verification code above the name line
	if err := pdf.SetFont("cert", "", 12); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrCertificateRenderFailed, err)
	}
	if err := r.at(pdf, f.ShortID, pageWidth/2-14, shortIDY); err != nil {
		return err
	}

	// Student name, centered by measured width
	if err := pdf.SetFont("cert", "", 18); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrCertificateRenderFailed, err)
	}
	if err := r.centered(pdf, f.StudentName, nameY); err != nil {
		return err
	}

	if err := pdf.SetFont("cert", "", 12); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrCertificateRenderFailed, err)
	}
	if err := r.at(pdf, datesLine(f.StartDate, f.EndDate), datesX, datesY); err != nil {
		return err
	}

	if err := pdf.SetFont("cert", "", 14); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrCertificateRenderFailed, err)
	}
	if err := r.at(pdf, f.Category, categoryX, categoryY); err != nil {
		return err
	}
	hoursWidth, err := pdf.MeasureTextWidth(f.Hours)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrCertificateRenderFailed, err)
	}
	if err := r.at(pdf, f.Hours, pageWidth-hoursWidth-hoursRightInset, hoursY); err != nil {
		return err
	}

	if err := pdf.SetFont("cert", "", 10); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrCertificateRenderFailed, err)
	}
	return r.at(pdf, f.RegisterNumber, registerX, registerY)
}

func datesLine(start, end string) string {
	return start + datesGap + end
}

func (r *Renderer) stampQR(pdf *gopdf.GoPdf, url string) error {
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		return fmt.Errorf("%w: encoding QR: %v", apperrors.ErrCertificateRenderFailed, err)
	}
	holder, err := gopdf.ImageHolderByBytes(png)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrCertificateRenderFailed, err)
	}
	rect := &gopdf.Rect{W: qrSize, H: qrSize}
	if err := pdf.ImageByHolder(holder, qrMarginX, pageHeight-qrMarginY-qrSize, rect); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrCertificateRenderFailed, err)
	}
	return nil
}

func (r *Renderer) centered(pdf *gopdf.GoPdf, text string, y float64) error {
	width, err := pdf.MeasureTextWidth(text)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrCertificateRenderFailed, err)
	}
	return r.at(pdf, text, (pageWidth-width)/2, y)
}

func (r *Renderer) at(pdf *gopdf.GoPdf, text string, x, y float64) error {
	pdf.SetXY(x, y)
	if err := pdf.Cell(nil, text); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrCertificateRenderFailed, err)
	}
	return nil
}
