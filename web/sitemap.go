package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"path"
	"text/template"
	"time"

	"github.com/ancientlore/folio/content"
)

// SitemapFile is the optional sitemap template at the site root. It is run
// as a text template over the list of page paths, so it can add a host:
//
//	{{range .}}https://example.com{{.}}
//	{{end}}
const SitemapFile = "sitemap.txt"

const defaultSitemap = "{{range .}}{{.}}\n{{end}}"

// loadSitemapTemplate loads the sitemap template from fsys, falling back to
// one path per line.
func loadSitemapTemplate(fsys fs.FS) (*template.Template, error) {
	if fsys != nil {
		_, err := fs.Stat(fsys, SitemapFile)
		if err == nil {
			tpl, err := template.ParseFS(fsys, SitemapFile)
			if err != nil {
				return nil, fmt.Errorf("loadSitemapTemplate: %w", err)
			}
			return tpl, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loadSitemapTemplate: %w", err)
		}
	}
	return template.Must(template.New(SitemapFile).Parse(defaultSitemap)), nil
}

// sitemapPaths lists the listing page of every category followed by its
// published items, newest first.
func (s *Site) sitemapPaths(ctx context.Context) ([]string, error) {
	var result []string
	for _, c := range content.Categories() {
		listing, err := s.lib.Index(ctx, string(c))
		if err != nil {
			return nil, err
		}
		result = append(result, "/"+string(c)+"/")
		for _, p := range listing.Posts {
			if (!p.Published && !s.opts.Drafts) || !content.ValidID(p.PID) {
				continue
			}
			result = append(result, "/"+path.Join(string(c), p.PID))
		}
	}
	return result, nil
}

// sitemap is an http.HandlerFunc that renders the site map.
func (s *Site) sitemap(w http.ResponseWriter, r *http.Request) {
	paths, err := s.sitemapPaths(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var out bytes.Buffer
	err = s.smap.Execute(&out, paths)
	if err != nil {
		log.Printf("sitemap: %s", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, SitemapFile, time.Time{}, bytes.NewReader(out.Bytes()))
}
