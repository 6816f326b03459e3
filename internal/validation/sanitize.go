package validation

import "github.com/microcosm-cc/bluemonday"

var sanitizePolicy = bluemonday.UGCPolicy()

// SanitizeHTML strips unsafe markup from user-generated content while
// keeping basic formatting tags and safe links.
func SanitizeHTML(s string) string {
	return sanitizePolicy.Sanitize(s)
}
