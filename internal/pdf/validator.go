package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/harshajxn/gecf-knowledge-insight/internal/domain"
)

var pdfMagic = []byte("%PDF-")

// ValidateUpload checks an uploaded file before it enters the pipeline. A
// failure here is a per-document extraction error, not a batch abort.
func ValidateUpload(fileName string, data []byte, maxBytes int64) error {
	if strings.TrimSpace(fileName) == "" {
		return domain.ValidationError("file name cannot be empty", nil)
	}
	if len(data) == 0 {
		return domain.ValidationError(fmt.Sprintf("file %q is empty", fileName), nil)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return domain.ValidationError(fmt.Sprintf("file %q exceeds the %d byte upload limit", fileName, maxBytes), nil)
	}
	// PDF headers may be preceded by a small amount of junk; %PDF- must
	// appear within the first 1KB.
	window := data
	if len(window) > 1024 {
		window = window[:1024]
	}
	if !bytes.Contains(window, pdfMagic) {
		return domain.ValidationError(fmt.Sprintf("file %q does not look like a PDF", fileName), nil)
	}
	return nil
}
