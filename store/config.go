package store

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFile is the name of the settings file at the site root.
const ConfigFile = "folio.cfg"

// Config contains configuration data from the folio.cfg file.
type Config struct {
	Title         string            `toml:"title"`         // Site title shown in page templates
	Expires       Duration          `toml:"expires"`       // Expires offset for pages
	StaticExpires Duration          `toml:"staticexpires"` // Expires offset for static files
	Headers       map[string]string `toml:"headers"`       // Extra response headers
	Markdown      string            `toml:"markdown"`      // "blackfriday" (default) or "goldmark"
	Drafts        bool              `toml:"drafts"`        // List unpublished units on HTML pages
	Concurrency   int               `toml:"concurrency"`   // Parallel loads when indexing; 0 is unlimited
	APIOrigins    []string          `toml:"apiorigins"`    // Origins allowed to call the JSON API
}

// ReadConfig reads the folio.cfg file from fsys.
// It is not an error if the file does not exist; an empty Config is returned.
func ReadConfig(fsys fs.FS) (*Config, error) {
	var cfg Config
	cfgBytes, err := fs.ReadFile(fsys, ConfigFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("Cannot read config file: %w", err)
	}
	err = toml.Unmarshal(cfgBytes, &cfg)
	if err != nil {
		return nil, fmt.Errorf("Cannot parse config file: %w", err)
	}
	return &cfg, nil
}
