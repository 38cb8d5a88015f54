package content

// Category partitions content units.
type Category string

const (
	Blog     Category = "blog"
	Projects Category = "projects"
)

// Categories returns the known categories.
func Categories() []Category {
	return []Category{Blog, Projects}
}

// ParseCategory returns the Category named by s, or ErrInvalidCategory.
// Names match exactly.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", &categoryError{name: s}
}

func (c Category) String() string {
	return string(c)
}
