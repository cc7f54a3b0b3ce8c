// Package fsout writes rendered pages under a site root on the local filesystem.
package fsout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"simlab/internal/domain"
)

type Writer struct {
	root    string
	workers int
}

// NewWriter writes beneath root with at most workers concurrent file writes.
func NewWriter(root string, workers int) *Writer {
	if workers <= 0 {
		workers = 1
	}
	return &Writer{root: root, workers: workers}
}

func (w *Writer) Root() string { return w.root }

// WritePages creates parent directories and overwrites every page. The first failure cancels the
// pages not yet started and is returned; pages already written stay on disk.
func (w *Writer) WritePages(ctx context.Context, pages []domain.Page) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)
	for _, p := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return w.write(p)
		})
	}
	return g.Wait()
}

func (w *Writer) write(p domain.Page) error {
	if !filepath.IsLocal(p.Path) {
		return fmt.Errorf("page path %q escapes the site root", p.Path)
	}
	full := filepath.Join(w.root, filepath.FromSlash(p.Path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", p.Path, err)
	}
	if err := os.WriteFile(full, []byte(p.HTML), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p.Path, err)
	}
	return nil
}
