// Package media decides whether a dropped resource should be embedded as an image.
package media

import (
	"sort"
	"strings"

	"mddrop/internal/locator"
)

// imageExtensions lists extensions (without the leading dot) rendered with image syntax.
var imageExtensions = map[string]struct{}{
	"bmp":  {},
	"gif":  {},
	"ico":  {},
	"jpe":  {},
	"jpeg": {},
	"jpg":  {},
	"png":  {},
	"psd":  {},
	"svg":  {},
	"tga":  {},
	"tif":  {},
	"tiff": {},
	"webp": {},
}

// IsImage reports whether loc should be inserted as an image reference.
// A non-nil override wins over the extension check.
func IsImage(loc locator.Locator, override *bool) bool {
	if override != nil {
		return *override
	}
	ext := strings.TrimPrefix(strings.ToLower(loc.Ext()), ".")
	_, ok := imageExtensions[ext]
	return ok
}

// Extensions returns the known image extensions in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(imageExtensions))
	for ext := range imageExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
