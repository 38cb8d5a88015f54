package content

import (
	"context"
	"html/template"
	"path"
	"strings"
)

// Address locates a unit within a catalog.
type Address struct {
	Category Category
	ID       string
}

// String returns the address as "category/id".
func (a Address) String() string {
	return path.Join(string(a.Category), a.ID)
}

// Unit is a loaded content unit. Metadata is nil when the unit has no front matter.
type Unit struct {
	Address  Address
	Metadata *Metadata
	Render   func() (template.HTML, error)
}

// A Catalog enumerates and loads content units.
//
// List returns every address in the category in a stable order. A category
// with no units is not an error. Load returns ErrNotFound (possibly wrapped)
// when nothing is stored at the address.
type Catalog interface {
	List(ctx context.Context, c Category) ([]Address, error)
	Load(ctx context.Context, a Address) (*Unit, error)
}

// ValidID reports whether id can name a unit: a single, non-hidden path element.
func ValidID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	if strings.HasPrefix(id, ".") || strings.ContainsAny(id, `/\`) || strings.ContainsRune(id, 0) {
		return false
	}
	return true
}
