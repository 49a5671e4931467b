package webhook

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// plainText reduces an upstream message to plain text before it is shown to
// the user. Entities escaped by the policy are decoded again since the
// message is rendered through the page templates, which escape on output.
func plainText(raw string) string {
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(raw)))
}
