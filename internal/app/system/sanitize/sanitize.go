// internal/app/system/sanitize/sanitize.go
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips all HTML. Free-text fields such as rejection reasons are
// stored verbatim in contract logs and notifications, so nothing markup-like
// may survive.
var strict = bluemonday.StrictPolicy()

// Text removes any HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
