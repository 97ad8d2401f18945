// Package ocr adapts a local Tesseract installation to the core OCR
// interface.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"libridex/internal/core"
)

var _ core.OCREngine = (*Tesseract)(nil)

// Tesseract runs OCR through libtesseract. A single client is reused for
// the whole run; the pipeline is strictly sequential so no locking is
// needed.
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract configures a Tesseract client. tessdataPrefix points at the
// local language-data installation and may be empty to use the system
// default; languages is a comma-separated list such as "eng" or "eng,nld".
func NewTesseract(tessdataPrefix, languages string) (*Tesseract, error) {
	client := gosseract.NewClient()
	if tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(tessdataPrefix); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("set tessdata prefix %q: %w", tessdataPrefix, err)
		}
	}
	if languages != "" {
		langs := strings.Split(languages, ",")
		for i := range langs {
			langs[i] = strings.TrimSpace(langs[i])
		}
		if err := client.SetLanguage(langs...); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("set ocr languages %q: %w", languages, err)
		}
	}
	return &Tesseract{client: client}, nil
}

func (t *Tesseract) ImageToText(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode page image: %w", err)
	}
	if err := t.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("load page image: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return text, nil
}

func (t *Tesseract) Close() error {
	return t.client.Close()
}
