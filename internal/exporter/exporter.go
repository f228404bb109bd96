// Package exporter writes the rendered site to a directory of static files.
package exporter

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"inkwell/internal/logger"
	"inkwell/internal/pages"
)

// page is one route to render and the directory, relative to the export
// root, its index.html goes to.
type page struct {
	route string
	dir   string
}

// Export renders "/" and "/post/<slug>" for every known slug through handler
// and writes them as index.html files under dir, then copies the static
// assets. Slugs that cannot be a single directory name are skipped with a
// warning. It returns the number of pages written.
func Export(ctx context.Context, loader *pages.Loader, handler http.Handler, assets fs.FS, dir string, log *logger.Logger) (int, error) {
	slugs, err := loader.Paths(ctx)
	if err != nil {
		return 0, fmt.Errorf("list slugs: %w", err)
	}

	todo := make([]page, 0, len(slugs)+1)
	todo = append(todo, page{route: "/", dir: "."})
	for _, slug := range slugs {
		if !exportable(slug) {
			log.Warn("export: skipping post with unsafe slug %q", slug)
			continue
		}
		todo = append(todo, page{route: "/post/" + url.PathEscape(slug), dir: filepath.Join("post", slug)})
	}

	written := 0
	for _, p := range todo {
		body, err := render(ctx, handler, p.route)
		if err != nil {
			return written, err
		}
		if err := writeFile(filepath.Join(dir, p.dir, "index.html"), body); err != nil {
			return written, err
		}
		written++
	}

	if err := copyStatic(assets, dir); err != nil {
		return written, err
	}
	return written, nil
}

// exportable reports whether slug names exactly one directory below post/.
func exportable(slug string) bool {
	if slug == "" || strings.ContainsAny(slug, `/\`) || strings.ContainsRune(slug, 0) {
		return false
	}
	return filepath.IsLocal(slug) && slug != "." && slug != ".."
}

func render(ctx context.Context, handler http.Handler, route string) ([]byte, error) {
	req := httptest.NewRequest(http.MethodGet, route, nil).WithContext(ctx)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		return nil, fmt.Errorf("render %s: status %d", route, w.Code)
	}
	return w.Body.Bytes(), nil
}

func writeFile(target string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

// copyStatic mirrors the "static" tree of assets into dir/static.
func copyStatic(assets fs.FS, dir string) error {
	if _, err := fs.Stat(assets, "static"); err != nil {
		return nil
	}
	return fs.WalkDir(assets, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(assets, p)
		if err != nil {
			return err
		}
		return writeFile(filepath.Join(dir, filepath.FromSlash(path.Clean(p))), data)
	})
}
