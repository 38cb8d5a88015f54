package store

import (
	"strings"
)

// containsSpecialFile reports whether name contains a path element starting with a period.
// The name is assumed to be delimited by forward slashes, as guaranteed by the fs.FS interface.
func containsSpecialFile(name string) bool {
	parts := strings.Split(name, "/")
	for _, part := range parts {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
