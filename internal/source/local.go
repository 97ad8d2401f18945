// Package source enumerates the PDF documents of a run: a local directory
// tree or an S3 prefix.
package source

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"libridex/internal/core"
)

var _ core.Source = (*LocalSource)(nil)

// LocalSource walks a directory tree recursively and yields every file
// with a .pdf extension (case-insensitive), sorted by path.
type LocalSource struct {
	root string
}

func NewLocalSource(root string) *LocalSource {
	return &LocalSource{root: root}
}

func (s *LocalSource) ListDocuments(ctx context.Context) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !d.IsDir() && isPDF(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *LocalSource) OpenDocument(ctx context.Context, reader core.DocumentReader, path string) (core.Document, error) {
	_ = ctx
	return reader.Open(path)
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
