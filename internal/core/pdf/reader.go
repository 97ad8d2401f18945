// Package pdf adapts the MuPDF bindings to the core document interfaces.
package pdf

import (
	"errors"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"

	"libridex/internal/core"
)

var _ core.DocumentReader = (*Reader)(nil)

// Reader opens PDF documents with MuPDF.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

func (r *Reader) Open(path string) (core.Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, classifyOpenErr(fmt.Errorf("open %s: %w", path, err))
	}
	return &document{doc: doc}, nil
}

func (r *Reader) OpenBytes(data []byte) (core.Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, classifyOpenErr(fmt.Errorf("open from memory: %w", err))
	}
	return &document{doc: doc}, nil
}

// classifyOpenErr tags unreadable-data failures with core.ErrFileData so the
// processor can report them as file-open failures.
func classifyOpenErr(err error) error {
	switch {
	case errors.Is(err, fitz.ErrOpenDocument),
		errors.Is(err, fitz.ErrOpenMemory),
		errors.Is(err, fitz.ErrNoSuchFile),
		errors.Is(err, fitz.ErrNeedsPassword):
		return fmt.Errorf("%w: %s", core.ErrFileData, err)
	default:
		return err
	}
}

type document struct {
	doc *fitz.Document
}

func (d *document) NumPages() int {
	return d.doc.NumPage()
}

func (d *document) PageText(page int) (string, error) {
	text, err := d.doc.Text(page)
	if err != nil {
		return "", fmt.Errorf("extract text from page %d: %w", page, err)
	}
	return text, nil
}

func (d *document) PageImage(page int) (image.Image, error) {
	img, err := d.doc.Image(page)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}
	return img, nil
}

func (d *document) Close() error {
	return d.doc.Close()
}
