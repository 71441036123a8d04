package parser

import (
	"github.com/IshaanNene/wikicaptions/internal/types"
)

// Extractor turns a rendered page into image records.
type Extractor interface {
	// Extract returns the image records found in html, in document order.
	// page is only used to identify the page in errors.
	Extract(html, page string) ([]types.ImageRecord, error)
}
