package util

import (
	"regexp"
	"strings"
)

var parenthetical = regexp.MustCompile(` *\([^)]*\) *`)

var whitespace = regexp.MustCompile(`\s+`)

// CropImageSlug normalizes an English crop name for use in an image search
// query: parenthetical text is stripped, surrounding space trimmed, inner
// whitespace collapsed to hyphens, and the result lowercased.
func CropImageSlug(name string) string {
	s := parenthetical.ReplaceAllString(name, "")
	s = strings.TrimSpace(s)
	s = whitespace.ReplaceAllString(s, "-")
	return strings.ToLower(s)
}

// CropImageFallbackURL builds the deterministic external image reference for a
// crop. It stands in for generated images that failed or were too large to
// persist.
func CropImageFallbackURL(englishName string) string {
	return "https://source.unsplash.com/400x250/?" + CropImageSlug(englishName) + ",crop,field,farm"
}
