package xcall

import (
	"net/url"
	"strings"
)

// BaseURL is the x-callback-url root every action URL is built on.
const BaseURL = "bear://x-callback-url"

// BuildURL serializes an action and its parameters into a Bear action URL.
// Every value is percent-encoded; parameter order follows url.Values.Encode
// (Bear requires none).
func BuildURL(action string, params url.Values) string {
	var b strings.Builder
	b.WriteString(BaseURL)
	b.WriteByte('/')
	b.WriteString(action)
	if len(params) > 0 {
		b.WriteByte('?')
		// Encode uses "+" for spaces; Bear's parser wants %20.
		b.WriteString(strings.ReplaceAll(params.Encode(), "+", "%20"))
	}
	return b.String()
}
