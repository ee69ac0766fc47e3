package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		local     Attributes
		wantClass string
		wantStyle Style
	}{
		{
			name: "nothing configured",
		},
		{
			name:      "configured class comes first",
			opts:      Options{CustomClasses: map[ElementType]string{Tables: "grid"}},
			local:     Attributes{Class: "wide"},
			wantClass: "grid wide",
		},
		{
			name:      "local style overrides configured",
			opts:      Options{CustomStyles: map[ElementType]Style{Tables: {"color": "red", "width": "1px"}}},
			local:     Attributes{Style: Style{"width": "100%"}},
			wantStyle: Style{"color": "red", "width": "100%"},
		},
		{
			name:      "other element types are ignored",
			opts:      Options{CustomClasses: map[ElementType]string{Links: "ext"}},
			local:     Attributes{Class: "  spaced  out "},
			wantClass: "spaced out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.Resolve(Tables, tt.local)
			assert.Equal(t, tt.wantClass, got.Class)
			assert.Equal(t, tt.wantStyle, got.Style)
		})
	}
}

func TestResolveDoesNotMutateConfig(t *testing.T) {
	base := Style{"color": "red"}
	opts := Options{CustomStyles: map[ElementType]Style{Lists: base}}
	opts.Resolve(Lists, Attributes{Style: Style{"color": "blue"}})
	assert.Equal(t, Style{"color": "red"}, base)
}

func TestStyleString(t *testing.T) {
	assert.Equal(t, "", Style(nil).String())
	assert.Equal(t, "color: red; margin-left: 20px", Style{"margin-left": "20px", "color": "red"}.String())
}

func TestAttributesHTML(t *testing.T) {
	tests := []struct {
		name     string
		attrs    Attributes
		expected string
	}{
		{name: "empty", expected: ""},
		{
			name:     "quotes cannot break out",
			attrs:    Attributes{Href: `x" onclick="y`},
			expected: ` href="x&#34; onclick=&#34;y"`,
		},
		{
			name:     "image keeps empty alt",
			attrs:    Attributes{Src: "a.png"},
			expected: ` src="a.png" alt=""`,
		},
		{
			name:     "data attributes sorted",
			attrs:    Attributes{Class: "c", Data: map[string]string{"b": "2", "a": "1"}},
			expected: ` class="c" data-a="1" data-b="2"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.attrs.HTML())
		})
	}
}
