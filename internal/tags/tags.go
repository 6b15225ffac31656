// Package tags builds the declared tag list and matches tags against paths.
package tags

import (
	"strings"

	"github.com/prasenjit/go-oasgen/internal/models"
)

// Spec converts declared tag names into document tags, dropping blanks and
// duplicates while keeping declaration order.
func Spec(names []string) []models.Tag {
	result := make([]models.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, models.Tag{Name: name})
	}
	return result
}

// Matching returns the names of the tags whose name occurs in path,
// compared case-insensitively.
func Matching(tags []models.Tag, path string) []string {
	lowered := strings.ToLower(path)
	var result []string
	for _, tag := range tags {
		if strings.Contains(lowered, strings.ToLower(tag.Name)) {
			result = append(result, tag.Name)
		}
	}
	return result
}
