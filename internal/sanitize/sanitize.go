// Package sanitize strips dangerous markup from note content. Content is
// markdown that may embed inline HTML; it is cleaned both before submission to
// the backend and before display.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Clean removes script tags, event handlers and other unsafe HTML from
// content while keeping user-generated formatting intact.
func Clean(content string) string {
	return policy.Sanitize(content)
}

// CleanStrict strips all markup, leaving plain text. Used for one-line
// previews in list rows.
func CleanStrict(content string) string {
	return strings.TrimSpace(bluemonday.StrictPolicy().Sanitize(content))
}
