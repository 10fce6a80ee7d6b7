package conv

import (
	"html"
	"strings"

	"github.com/inbucket/html2text"
)

// Pre wraps s for verbatim display in Telegram HTML mode.
func Pre(s string) string {
	return "<pre>" + html.EscapeString(s) + "</pre>"
}

// HTMLToText flattens Telegram HTML for terminals. Input that fails to parse
// is returned unchanged.
func HTMLToText(s string) string {
	text, err := html2text.FromString(s, html2text.Options{OmitLinks: true})
	if err != nil {
		return s
	}
	return strings.TrimSpace(text)
}
