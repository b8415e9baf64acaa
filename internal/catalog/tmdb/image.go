package tmdb

import "strings"

// PlaceholderImage is served when a movie has no poster.
const PlaceholderImage = "/placeholder.jpg"

// Image sizes used by the API responses.
const (
	SizeThumb    = "w185"
	SizePoster   = "w500"
	SizeOriginal = "original"
)

// ImageURL builds an absolute TMDB image URL for path at the given size.
func ImageURL(base string, path *string, size string) string {
	if path == nil || *path == "" {
		return PlaceholderImage
	}
	if size == "" {
		size = SizePoster
	}
	return strings.TrimRight(base, "/") + "/" + size + *path
}
