/*
Package content loads the posts and projects of a folio site.

Content lives in a Catalog, which can enumerate the units of a category and
load a single unit by address. A Library built on a Catalog offers the two
operations used by pages:

	lib := content.New(catalog)

	// One post, rendered to HTML.
	entry, err := lib.Resolve(ctx, "blog", "hello-world")
	if errors.Is(err, content.ErrNotFound) {
		// 404
	}

	// All posts of a category, most recent first.
	listing, err := lib.Index(ctx, "blog")

Units without front matter are left out of listings but can still be
resolved. Index fails with a *MetadataError when a pubdate cannot be parsed.
*/
package content
