package content

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Options tunes a Library.
type Options struct {
	// Concurrency limits how many units Index loads at once.
	// Zero or less means no limit.
	Concurrency int
}

// Library resolves and indexes content from a Catalog.
// It holds no state between calls and is safe for concurrent use.
type Library struct {
	catalog     Catalog
	concurrency int
}

// Entry is a resolved content unit.
type Entry struct {
	Metadata *Metadata     `json:"metadata"`
	Content  template.HTML `json:"content"`
}

// Listing is the index of a category, most recent first.
type Listing struct {
	Posts []Summary `json:"posts"`
}

// New returns a Library reading from catalog. opts may be nil.
func New(catalog Catalog, opts *Options) *Library {
	lib := &Library{catalog: catalog}
	if opts != nil && opts.Concurrency > 0 {
		lib.concurrency = opts.Concurrency
	}
	return lib
}

// Resolve loads and renders the unit identified by category and id.
func (lib *Library) Resolve(ctx context.Context, category, id string) (*Entry, error) {
	c, err := ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("Resolve: %w", err)
	}
	if !ValidID(id) {
		return nil, fmt.Errorf("Resolve %s/%q: %w", c, id, ErrNotFound)
	}
	addr := Address{Category: c, ID: id}
	u, err := lib.catalog.Load(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("Resolve: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("Resolve %s: %w", addr, ErrNotFound)
	}
	var html template.HTML
	if u.Render != nil {
		html, err = u.Render()
		if err != nil {
			return nil, fmt.Errorf("Resolve: %w", &StorageError{Op: "render", Address: addr, Err: err})
		}
	}
	return &Entry{Metadata: u.Metadata, Content: html}, nil
}

// dated pairs a summary with its parsed publish date.
type dated struct {
	summary Summary
	date    time.Time
}

// Index builds the listing for category. Units are loaded concurrently;
// units without metadata are skipped. Equal dates keep discovery order.
func (lib *Library) Index(ctx context.Context, category string) (*Listing, error) {
	c, err := ParseCategory(category)
	if err != nil {
		return nil, fmt.Errorf("Index: %w", err)
	}
	addrs, err := lib.catalog.List(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("Index: %w", err)
	}

	units := make([]*Unit, len(addrs))
	g, gctx := errgroup.WithContext(ctx)
	if lib.concurrency > 0 {
		g.SetLimit(lib.concurrency)
	}
	for i, addr := range addrs {
		g.Go(func() error {
			u, err := lib.catalog.Load(gctx, addr)
			if errors.Is(err, ErrNotFound) {
				// removed since List
				return nil
			}
			if err != nil {
				return err
			}
			units[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Index: %w", err)
	}

	items := make([]dated, 0, len(units))
	for i, u := range units {
		if u == nil || u.Metadata == nil {
			continue
		}
		t, err := u.Metadata.PubDate.Time()
		if err != nil {
			return nil, fmt.Errorf("Index: %w", &MetadataError{
				Address: addrs[i],
				Field:   "pubdate",
				Value:   string(u.Metadata.PubDate),
				Err:     err,
			})
		}
		items = append(items, dated{summary: u.Metadata.Summarize(), date: t})
	}

	// latest first
	sort.SliceStable(items, func(i, j int) bool { return items[j].date.Before(items[i].date) })

	listing := &Listing{Posts: make([]Summary, len(items))}
	for i := range items {
		listing.Posts[i] = items[i].summary
	}
	return listing, nil
}
