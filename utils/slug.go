package utils

import "github.com/gosimple/slug"

// Slugify transliterates s to ASCII and joins its words with dashes.
func Slugify(s string) string {
	return slug.Make(s)
}

func ValidSlug(s string) bool {
	return slug.IsSlug(s)
}
