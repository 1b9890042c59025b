// Package pdf wraps the low-level PDF libraries behind the two primitives
// the pipeline needs: validating a downloaded report file and extracting its
// tables as grids of raw text cells.
package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Validator handles PDF file validation operations.
type Validator struct {
	maxFileSize int64
	conf        *model.Configuration
}

// NewValidator creates a new PDF validator with the specified size limit.
// Validation is relaxed: government-published PDFs are frequently
// out-of-spec but still parseable.
func NewValidator(maxFileSize int64) *Validator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &Validator{
		maxFileSize: maxFileSize,
		conf:        conf,
	}
}

// ValidateFile performs detailed validation on a PDF file.
func (v *Validator) ValidateFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	if err := api.ValidateFile(filePath, v.conf); err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}

	// Confirm the text layer is reachable with the extraction library too.
	f, _, err := pdf.Open(filePath)
	if err != nil {
		return fmt.Errorf("unreadable PDF file: %w", err)
	}
	defer f.Close()

	return nil
}

// IsValidPDF performs a quick check to see if a file is a valid PDF.
func (v *Validator) IsValidPDF(filePath string) bool {
	return v.ValidateFile(filePath) == nil
}
