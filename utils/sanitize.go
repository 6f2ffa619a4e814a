package utils

import "github.com/microcosm-cc/bluemonday"

// Post bodies pass through the user-generated-content policy before they
// are stored.
var sanitizer = bluemonday.UGCPolicy()

// Sanitize strips unsafe HTML from user-submitted content.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
