package certpdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/otabek/davomat/internal/pkg/apperrors"
)

// The template artwork is printed; the stamped fields have to land exactly
// on its lines. These values are the layout contract.
func TestLayoutMatchesArtwork(t *testing.T) {
	positions := []struct {
		name string
		got  float64
		want float64
	}{
		{"shortIDY", shortIDY, 288},
		{"nameY", nameY, 315},
		{"datesX", datesX, pageWidth - 373},
		{"datesY", datesY, 346},
		{"categoryX", categoryX, 135},
		{"categoryY", categoryY, 372},
		{"hoursRightInset", hoursRightInset, 313},
		{"hoursY", hoursY, 373},
		{"registerX", registerX, pageWidth - 160},
		{"registerY", registerY, 405},
		{"qrSize", qrSize, 90},
		{"qrMarginX", qrMarginX, 80},
		{"qrMarginY", qrMarginY, 80},
	}
	for _, p := range positions {
		if p.got != p.want {
			t.Errorf("%s = %v, want %v", p.name, p.got, p.want)
		}
	}

	if got, want := datesLine("2025-01-10", "2025-05-10"), "2025-01-10                2025-05-10"; got != want {
		t.Errorf("datesLine() = %q, want %q", got, want)
	}
}

func TestNewRenderer(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "template.pdf")
	font := filepath.Join(dir, "font.ttf")
	for _, p := range []string{template, font} {
		if err := os.WriteFile(p, []byte("stub"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := NewRenderer(template, font); err != nil {
		t.Errorf("NewRenderer() with existing files: %v", err)
	}

	_, err := NewRenderer(filepath.Join(dir, "missing.pdf"), font)
	if !errors.Is(err, apperrors.ErrTemplateMissing) {
		t.Errorf("missing template error = %v, want ErrTemplateMissing", err)
	}

	if _, err := NewRenderer(template, filepath.Join(dir, "missing.ttf")); err == nil {
		t.Error("missing font must fail")
	}
}
