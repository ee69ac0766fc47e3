package markdown

import (
	"html"
	"strings"
)

// Escape replaces &, <, >, " and ' with HTML entities
func Escape(text string) string {
	return html.EscapeString(text)
}

// attrEscaper keeps attribute values inside their quotes even when
// sanitizing is turned off
var attrEscaper = strings.NewReplacer(`"`, "&#34;")

func escapeAttr(value string) string {
	return attrEscaper.Replace(value)
}

// sanitize escapes text when the options ask for it
func (o Options) sanitize(text string) string {
	if o.Sanitize() {
		return Escape(text)
	}
	return text
}
