package markdown

import (
	"sort"
	"strings"
)

// Style is an inline CSS declaration set keyed by property name
type Style map[string]string

// String renders the style as a CSS declaration list with sorted properties
func (s Style) String() string {
	if len(s) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+s[k])
	}
	return strings.Join(parts, "; ")
}

// Attributes are the presentation attributes of a node. Empty fields are
// omitted by renderers.
type Attributes struct {
	Class    string            `json:"class,omitempty" yaml:"class,omitempty"`
	Style    Style             `json:"style,omitempty" yaml:"style,omitempty"`
	Href     string            `json:"href,omitempty" yaml:"href,omitempty"`
	Src      string            `json:"src,omitempty" yaml:"src,omitempty"`
	Alt      string            `json:"alt,omitempty" yaml:"alt,omitempty"`
	Title    string            `json:"title,omitempty" yaml:"title,omitempty"`
	Target   string            `json:"target,omitempty" yaml:"target,omitempty"`
	Rel      string            `json:"rel,omitempty" yaml:"rel,omitempty"`
	Language string            `json:"language,omitempty" yaml:"language,omitempty"`
	Checked  *bool             `json:"checked,omitempty" yaml:"checked,omitempty"`
	Data     map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
}

// Resolve merges the configured class and style for element type e with
// the locally computed attributes. The configured class comes first; local
// style fields override configured ones. An empty merged class is "" and an
// empty merged style is nil.
func (o Options) Resolve(e ElementType, local Attributes) Attributes {
	local.Class = joinClasses(o.CustomClasses[e], local.Class)
	local.Style = mergeStyles(o.CustomStyles[e], local.Style)
	return local
}

func joinClasses(classes ...string) string {
	var parts []string
	for _, c := range classes {
		parts = append(parts, strings.Fields(c)...)
	}
	return strings.Join(parts, " ")
}

func mergeStyles(base, override Style) Style {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	merged := make(Style, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// HTML renders the non-empty attributes as ` name="value"` pairs in a fixed
// order. Checked and Language are structural and left to the renderer.
func (a Attributes) HTML() string {
	var b strings.Builder
	write := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(" " + name + `="` + escapeAttr(value) + `"`)
	}

	write("href", a.Href)
	write("src", a.Src)
	if a.Src != "" {
		// alt stays present on images even when empty
		b.WriteString(` alt="` + escapeAttr(a.Alt) + `"`)
	} else {
		write("alt", a.Alt)
	}
	write("title", a.Title)
	write("target", a.Target)
	write("rel", a.Rel)
	write("class", a.Class)
	write("style", a.Style.String())

	keys := make([]string, 0, len(a.Data))
	for k := range a.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !dataKeyPattern.MatchString(k) {
			continue
		}
		write("data-"+k, a.Data[k])
	}
	return b.String()
}
