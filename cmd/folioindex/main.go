// Command folioindex prints the index of a category, or one resolved item,
// of a folio site folder as JSON. Flags may also be set from environment
// variables such as ROOT and CATEGORY.
//
//	folioindex -root ./site -category blog
//	folioindex -root ./site -category projects -id folio
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ancientlore/folio/content"
	"github.com/ancientlore/folio/store"
	"github.com/facebookgo/flagenv"
)

func main() {
	if err := run(context.Background(), os.Stdout, os.Args[1:]); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, args []string) error {
	flags := flag.NewFlagSet("folioindex", flag.ContinueOnError)
	var (
		root     = flags.String("root", ".", "Root of web site.")
		category = flags.String("category", string(content.Blog), "Category to index.")
		id       = flags.String("id", "", "Resolve this item instead of indexing.")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if err := flagenv.ParseSet("", flags); err != nil {
		return err
	}

	catalog, err := store.New(os.DirFS(*root))
	if err != nil {
		return fmt.Errorf("Cannot open site: %w", err)
	}
	lib := content.New(catalog, &content.Options{Concurrency: catalog.Config().Concurrency})

	var v any
	if *id != "" {
		v, err = lib.Resolve(ctx, *category, *id)
	} else {
		v, err = lib.Index(ctx, *category)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
