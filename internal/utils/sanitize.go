package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// CleanText strips all markup from user-entered text (captions, comment
// bodies, biographies) before it is stored.
func CleanText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
