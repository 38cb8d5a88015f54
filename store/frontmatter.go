package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
	"github.com/ancientlore/folio/content"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// fmFormats are the front matter delimiters we recognize.
var fmFormats = []*frontmatter.Format{
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("---toml", "---", toml.Unmarshal),
	frontmatter.NewFormat("---yaml", "---", yaml.Unmarshal),
}

// parseFrontMatter splits the front matter and Markdown content.
// The metadata is nil when the file has no front matter.
func parseFrontMatter(b []byte) (*content.Metadata, []byte, error) {
	var md content.Metadata
	body, err := frontmatter.MustParse(bytes.NewReader(b), &md, fmFormats...)
	if errors.Is(err, frontmatter.ErrNotFound) {
		return nil, b, nil
	} else if err != nil {
		return nil, nil, fmt.Errorf("parseFrontMatter: %w", err)
	}
	return &md, body, nil
}
