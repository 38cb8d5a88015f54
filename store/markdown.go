package store

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// A Renderer converts Markdown to HTML.
type Renderer interface {
	Render(src []byte) (template.HTML, error)
}

// NewRenderer returns the Markdown renderer with the given name.
// The empty name selects blackfriday.
func NewRenderer(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "blackfriday":
		return blackfridayRenderer{}, nil
	case "goldmark":
		return newGoldmarkRenderer(), nil
	}
	return nil, fmt.Errorf("NewRenderer: unknown markdown renderer %q", name)
}

// blackfridayRenderer uses the common extensions plus footnotes. The default
// HTML flags include smartypants with LaTeX-style dashes, so "--" becomes an
// en dash and "---" an em dash.
type blackfridayRenderer struct{}

func (blackfridayRenderer) Render(src []byte) (template.HTML, error) {
	return template.HTML(blackfriday.Run(src, blackfriday.WithExtensions(blackfriday.CommonExtensions|blackfriday.Footnotes))), nil
}

// goldmarkRenderer uses GitHub flavored Markdown with typographic substitutions.
type goldmarkRenderer struct {
	md goldmark.Markdown
}

func newGoldmarkRenderer() goldmarkRenderer {
	return goldmarkRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Footnote, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

func (r goldmarkRenderer) Render(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("goldmark: %w", err)
	}
	return template.HTML(buf.String()), nil
}
