/*
Package store implements a content.Catalog over a fs.FS.

A site folder looks like this:

	folio.cfg            optional TOML settings (see Config)
	blog/hello.md        a blog post with identifier "hello"
	projects/folio.svx   a project with identifier "folio"
	template/*.html      optional page templates
	static/...           files served as-is

Content files use the ".md" or ".svx" extension. When both exist for the
same identifier, ".md" wins. Files and folders starting with "." are ignored.

# Front Matter

Front matter is either TOML delimited by "+++" or YAML delimited by "---":

	---
	title: "Hello"
	pubdate: "2024-06-01"
	lede: "First post."
	published: true
	tags: ["go", "web"]
	---
	# Hello
	This is my [Markdown](https://en.wikipedia.org/wiki/Markdown).

Recognized keys are title, pubdate, lede, published, pid, contentEncoding,
resourceType, featuredImage, tags, imageAlt and layout. The pubdate may be
a quoted string or a native TOML or YAML date. A file without front matter
has no metadata: it can be resolved but does not appear in listings.
*/
package store

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/ancientlore/folio/content"
)

// Extensions lists the content file extensions in lookup order.
var Extensions = []string{".md", ".svx"}

// FS is a content catalog backed by a file system.
type FS struct {
	fs  fs.FS
	cfg *Config
	md  Renderer
}

// New returns an FS reading content from innerFS. Settings come from
// the folio.cfg file at the root of innerFS, if present.
func New(innerFS fs.FS) (*FS, error) {
	cfg, err := ReadConfig(innerFS)
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	md, err := NewRenderer(cfg.Markdown)
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	return &FS{fs: innerFS, cfg: cfg, md: md}, nil
}

// Config returns the site settings read by New.
func (s *FS) Config() *Config {
	return s.cfg
}

// List returns the addresses of all units in c, ordered by file name.
// A missing category folder is an empty category.
func (s *FS) List(ctx context.Context, c content.Category) ([]content.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(s.fs, string(c))
	if errors.Is(err, fs.ErrNotExist) {
		return []content.Address{}, nil
	} else if err != nil {
		return nil, &content.StorageError{Op: "list", Address: content.Address{Category: c}, Err: err}
	}
	var (
		addrs = make([]content.Address, 0, len(entries))
		seen  = make(map[string]bool, len(entries))
	)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || containsSpecialFile(name) {
			continue
		}
		ext := path.Ext(name)
		if !isContentExt(ext) {
			continue
		}
		id := strings.TrimSuffix(name, ext)
		if !content.ValidID(id) {
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		addrs = append(addrs, content.Address{Category: c, ID: id})
	}
	return addrs, nil
}

// Load reads the unit at a. The returned unit renders its Markdown on demand.
func (s *FS) Load(ctx context.Context, a content.Address) (*content.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !content.ValidID(a.ID) {
		return nil, fmt.Errorf("Load %s: %w", a, content.ErrNotFound)
	}
	for _, ext := range Extensions {
		name := path.Join(string(a.Category), a.ID+ext)
		b, err := fs.ReadFile(s.fs, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, &content.StorageError{Op: "load", Address: a, Err: err}
		}
		md, body, err := parseFrontMatter(b)
		if err != nil {
			return nil, &content.StorageError{Op: "load", Address: a, Err: fmt.Errorf("%s: %w", name, err)}
		}
		return &content.Unit{
			Address:  a,
			Metadata: md,
			Render: func() (template.HTML, error) {
				return s.md.Render(body)
			},
		}, nil
	}
	return nil, fmt.Errorf("Load %s: %w", a, content.ErrNotFound)
}

func isContentExt(ext string) bool {
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
