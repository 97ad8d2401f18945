package core

import (
	"errors"
	"image"
)

// ErrFileData marks a document that could not be opened or parsed at all
// (corrupt file, not a PDF, missing file). The driver treats this class
// differently from failures inside an otherwise readable document.
var ErrFileData = errors.New("unreadable document data")

// Document is an open, page-addressable document. Pages are zero-indexed.
// A Document is scoped to one file's processing and must be closed.
type Document interface {
	NumPages() int
	// PageText returns the embedded text of a page, which may be empty for
	// scanned pages.
	PageText(page int) (string, error)
	// PageImage renders a page to a raster image at its native resolution,
	// for OCR of pages without embedded text.
	PageImage(page int) (image.Image, error)
	Close() error
}

// DocumentReader opens documents from a path or from memory. Open errors
// caused by unreadable file data wrap ErrFileData.
type DocumentReader interface {
	Open(path string) (Document, error)
	OpenBytes(data []byte) (Document, error)
}
