package processors

import "strings"

// MediaType strips parameters from a Content-Type value and lower-cases it
func MediaType(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isJSON(mediaType string) bool {
	return strings.Contains(mediaType, "json")
}

func isText(mediaType string) bool {
	return strings.Contains(mediaType, "text")
}
