package app

import "strings"

const defaultImageBase = "/uploads/rooms"

// resolveImageURL turns a stored image reference into a path the web layer can serve.
// Bare file names live under base; absolute URLs and rooted paths pass through.
func resolveImageURL(base, image string) string {
	image = strings.TrimSpace(image)
	if image == "" {
		return ""
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") || strings.HasPrefix(image, "/") {
		return image
	}
	return strings.TrimRight(base, "/") + "/" + image
}
