package common

import (
	"path"
	"strings"
)

// UnknownStr is printed for enum values without a name.
const UnknownStr = "unknown"

// CollectionName returns the collection a file holds: its base name without
// the extension. Returns empty string if name is empty.
func CollectionName(name string) string {
	if name == "" {
		return ""
	}

	base := path.Base(name)

	return strings.TrimSuffix(base, path.Ext(base))
}
