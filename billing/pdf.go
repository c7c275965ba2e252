// Package billing renders sale bills as PDF files.
package billing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDF writes one-page bills into Dir.
type PDF struct {
	Dir string
}

func NewPDF(dir string) (*PDF, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create bills directory: %w", err)
	}
	return &PDF{Dir: dir}, nil
}

// Render writes the bill text line by line under a "Bill Details" heading.
func (p *PDF) Render(content, filename string) error {
	doc := gofpdf.New("P", "mm", "Letter", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 10, "Bill Details", "", 1, "L", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "", 11)
	for _, line := range strings.Split(content, "\n") {
		doc.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}

	return doc.OutputFileAndClose(filepath.Join(p.Dir, filename))
}
