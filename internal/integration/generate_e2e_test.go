//go:build integration || !unit

package integration

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simlab/internal/adapters/fsout"
	"simlab/internal/app"
	"simlab/internal/catalog"
	"simlab/internal/render"
)

var opts = render.Options{Date: time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)}

// ---------- helpers ----------

// generate renders catalogPath into a fresh directory and returns the directory.
func generate(t *testing.T, catalogPath string) (string, app.Report) {
	t.Helper()
	root := t.TempDir()
	svc := app.NewGenerateService(catalog.NewFileSource(catalogPath), fsout.NewWriter(root, 4), opts)
	rep, err := svc.Generate(context.Background())
	require.NoError(t, err)
	return root, rep
}

// snapshot reads every file below root keyed by its slash path.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		out[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	require.NoError(t, err)
	return out
}

func names(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ---------- tests ----------

func TestGenerate_FixtureSite(t *testing.T) {
	root, rep := generate(t, "../catalog/testdata/catalog.json")
	site := snapshot(t, root)

	assert.Equal(t, []string{
		"index.html",
		"output/compare_alpha_vs_beta.html",
		"output/guide_kakuyasu.html",
		"output/hikaku_table.html",
		"output/ranking_overall.html",
		"output/review_alpha.html",
		"output/review_beta.html",
	}, names(site))
	assert.Equal(t, 7, rep.Total)
	assert.Equal(t, 1, rep.Skipped, "the pair naming an unknown plan produces no page")

	for name, html := range site {
		assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"), name)
		assert.True(t, strings.HasSuffix(html, "</html>"), name)
		assert.Contains(t, html, "2026年10月18日", name)
	}
	assert.Contains(t, site["output/review_alpha.html"], `href="../static/style.css"`)
	assert.Contains(t, site["index.html"], `href="static/style.css"`)
}

func TestGenerate_IsIdempotent(t *testing.T) {
	first, _ := generate(t, "../catalog/testdata/catalog.json")
	a := snapshot(t, first)

	// regenerate over the same root: overwrite, same bytes
	svc := app.NewGenerateService(catalog.NewFileSource("../catalog/testdata/catalog.json"), fsout.NewWriter(first, 1), opts)
	_, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, snapshot(t, first))
}

func TestGenerate_YAMLAndJSONProduceSameSite(t *testing.T) {
	fromJSON, _ := generate(t, "../catalog/testdata/catalog.json")
	fromYAML, _ := generate(t, "../catalog/testdata/catalog.yaml")
	assert.Equal(t, snapshot(t, fromJSON), snapshot(t, fromYAML))
}

func TestGenerate_ShippedCatalog(t *testing.T) {
	root, rep := generate(t, "../../data/plans_data.json")
	site := snapshot(t, root)

	assert.Equal(t, rep.Total, len(site))
	for _, name := range names(site) {
		if !strings.HasPrefix(name, "output/compare_") {
			continue
		}
		// every comparison page is linked from the index
		assert.Contains(t, site["index.html"], `href="`+name+`"`)
	}
}

func TestGenerate_InvalidCatalogWritesNothing(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"sim_plans": [{"id": "x"}]}`), 0o644))

	root := t.TempDir()
	svc := app.NewGenerateService(catalog.NewFileSource(bad), fsout.NewWriter(root, 2), opts)
	_, err := svc.Generate(context.Background())
	require.ErrorIs(t, err, catalog.ErrMalformed)
	assert.Empty(t, snapshot(t, root))
}
