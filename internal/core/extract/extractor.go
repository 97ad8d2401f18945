// Package extract implements the per-page text extractor with OCR fallback.
package extract

import (
	"log"
	"strings"

	"libridex/internal/core"
)

// Extractor prefers a page's embedded text and falls back to rendering the
// page and running OCR when none is present.
type Extractor struct {
	ocr core.OCREngine
}

func New(ocr core.OCREngine) *Extractor {
	return &Extractor{ocr: ocr}
}

// PageText is total: every failure is logged and reported as empty text, so
// a corrupt page looks the same as a page with no content. The caller
// decides what to do with empty pages.
func (e *Extractor) PageText(doc core.Document, page int) string {
	text, err := doc.PageText(page)
	if err != nil {
		log.Printf("ERROR: extracting text from page %d: %v", page, err)
		return ""
	}
	if strings.TrimSpace(text) != "" {
		return text
	}

	// No embedded text; likely a scan.
	img, err := doc.PageImage(page)
	if err != nil {
		log.Printf("ERROR: rendering page %d for ocr: %v", page, err)
		return ""
	}
	text, err = e.ocr.ImageToText(img)
	if err != nil {
		log.Printf("ERROR: ocr on page %d: %v", page, err)
		return ""
	}
	return text
}
