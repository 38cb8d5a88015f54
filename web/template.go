package web

import (
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/ancientlore/folio/content"
)

//go:embed default.html
var defaultTemplate string

// PageInfo has information about the current page.
type PageInfo struct {
	Path     string           // path from URL
	Category content.Category // category being shown
	ID       string           // unit identifier on item pages
}

// data is what is passed to page templates.
type data struct {
	Title    string            // site title
	Page     PageInfo          // information about current page
	Metadata *content.Metadata // front matter on item pages
	Content  template.HTML     // rendered Markdown on item pages
	Posts    []content.Summary // listing on list pages
}

// loadTemplates parses the default templates and then any custom ones in the
// "template" folder of fsys, which may redefine or add templates.
func loadTemplates(fsys fs.FS) (*template.Template, error) {
	funcMap := template.FuncMap{
		"categories": content.Categories,
		"date":       formatDate,
		"join":       path.Join,
		"trimspace":  strings.TrimSpace,
		"now":        time.Now,
	}
	tpl, err := template.New("folio").Funcs(funcMap).Parse(defaultTemplate)
	if err != nil {
		return nil, fmt.Errorf("loadTemplates: %w", err)
	}
	if fsys == nil {
		return tpl, nil
	}
	fi, err := fs.Stat(fsys, "template")
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !fi.IsDir()) {
		return tpl, nil
	} else if err != nil {
		return nil, fmt.Errorf("loadTemplates: %w", err)
	}
	matches, err := fs.Glob(fsys, "template/*.html")
	if err != nil {
		return nil, fmt.Errorf("loadTemplates: %w", err)
	}
	if len(matches) == 0 {
		return tpl, nil
	}
	tpl, err = tpl.ParseFS(fsys, matches...)
	if err != nil {
		return nil, fmt.Errorf("loadTemplates: %w", err)
	}
	return tpl, nil
}

// formatDate reformats a pubdate with layout, returning it unchanged if it does not parse.
// v is a string or a content.Date.
func formatDate(v any, layout string) string {
	s := fmt.Sprint(v)
	t, err := content.ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format(layout)
}
