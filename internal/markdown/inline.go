package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

// Private-use runes delimit stashed spans while the rules run. They are
// stripped from input first so user text can never forge a reference.
const (
	literalOpen  = '\uE000'
	literalClose = '\uE001'
	linkOpen     = '\uE002'
	linkClose    = '\uE003'
)

var (
	sentinelPattern = regexp.MustCompile(`[\x{E000}-\x{E003}]`)
	codeSpanPattern = regexp.MustCompile("`([^`]+?)`")
	linkPattern     = regexp.MustCompile(`(!?)\[([^\]]*)\]\(\s*([^\s)]+)(?:\s+(?:"|&#34;)(.*?)(?:"|&#34;))?\s*\)`)
	literalRef      = regexp.MustCompile(`\x{E000}(\d+)\x{E001}`)
	linkRef         = regexp.MustCompile(`\x{E002}(\d+)\x{E003}`)
)

// inlineRule is one substitution step. Rules run in slice order over the
// output of the previous rule, so the order is part of the behavior:
// strikethrough before subscript, triple emphasis before double before
// single.
type inlineRule struct {
	name    string
	pattern *regexp.Regexp
	replace func(p *pass, groups []string) string
}

var inlineRules []inlineRule

// The table is assigned in init because the link rule formats its label
// with the rules themselves.
func init() {
	inlineRules = []inlineRule{
		{"math", regexp.MustCompile(`\$([^$]+?)\$`), (*pass).math},
		{"strikethrough", regexp.MustCompile(`~~(.+?)~~`), wrap("del")},
		{"superscript", regexp.MustCompile(`\^([^^]+?)\^`), wrap("sup")},
		{"subscript", regexp.MustCompile(`~([^~]+?)~`), wrap("sub")},
		{"highlight", regexp.MustCompile(`==(.+?)==`), wrap("mark")},
		{"bold-italic", regexp.MustCompile(`\*\*\*(.+?)\*\*\*|___(.+?)___`), wrap("strong", "em")},
		{"bold", regexp.MustCompile(`\*\*(.+?)\*\*|__(.+?)__`), wrap("strong")},
		{"italic", regexp.MustCompile(`\*([^*]+?)\*|_([^_]+?)_`), wrap("em")},
		{"code", literalRef, (*pass).literal},
		{"link", linkRef, (*pass).link},
	}
}

// RuleNames returns the inline rule names in application order
func RuleNames() []string {
	names := make([]string, len(inlineRules))
	for i, r := range inlineRules {
		names[i] = r.name
	}
	return names
}

// Formatter rewrites span-level markup inside block text. It holds no
// per-call state and is safe for concurrent use.
type Formatter struct {
	opts Options
}

// NewFormatter creates a formatter for the given options
func NewFormatter(opts Options) *Formatter {
	return &Formatter{opts: opts.withDefaults()}
}

// Format applies the inline rules to text and returns markup. Unbalanced
// delimiters are left as literal text.
func (f *Formatter) Format(text string) string {
	text = sentinelPattern.ReplaceAllString(text, "")
	text = f.opts.sanitize(text)

	p := &pass{f: f}
	text = p.stashCode(text)
	text = p.stashLinks(text)
	return p.apply(text, inlineRules)
}

type linkSpan struct {
	image bool
	label string
	url   string
	title string
}

// pass carries the stashed spans of a single Format call
type pass struct {
	f        *Formatter
	literals []string
	links    []linkSpan
}

func (p *pass) apply(text string, rules []inlineRule) string {
	for _, r := range rules {
		rule := r
		text = rule.pattern.ReplaceAllStringFunc(text, func(match string) string {
			return rule.replace(p, rule.pattern.FindStringSubmatch(match))
		})
	}
	return text
}

func (p *pass) stashLiteral(markup string) string {
	p.literals = append(p.literals, markup)
	return string(literalOpen) + strconv.Itoa(len(p.literals)-1) + string(literalClose)
}

// stashCode pulls code spans out before any rule can touch their content
func (p *pass) stashCode(text string) string {
	return codeSpanPattern.ReplaceAllStringFunc(text, func(match string) string {
		content := codeSpanPattern.FindStringSubmatch(match)[1]
		return p.stashLiteral("<code>" + content + "</code>")
	})
}

// stashLinks pulls links and inline images out so emphasis rules never
// rewrite a URL
func (p *pass) stashLinks(text string) string {
	return linkPattern.ReplaceAllStringFunc(text, func(match string) string {
		m := linkPattern.FindStringSubmatch(match)
		p.links = append(p.links, linkSpan{
			image: m[1] == "!",
			label: m[2],
			url:   m[3],
			title: m[4],
		})
		return string(linkOpen) + strconv.Itoa(len(p.links)-1) + string(linkClose)
	})
}

func (p *pass) math(groups []string) string {
	return p.stashLiteral(`<span class="math">` + groups[1] + "</span>")
}

func (p *pass) literal(groups []string) string {
	i, err := strconv.Atoi(groups[1])
	if err != nil || i >= len(p.literals) {
		return ""
	}
	return p.literals[i]
}

func (p *pass) link(groups []string) string {
	i, err := strconv.Atoi(groups[1])
	if err != nil || i >= len(p.links) {
		return ""
	}
	l := p.links[i]
	opts := p.f.opts

	if l.image {
		attrs := opts.Resolve(Images, Attributes{Src: l.url, Alt: l.label, Title: l.title})
		return "<img" + attrs.HTML() + ">"
	}

	// The label gets every rule except links themselves
	label := p.apply(l.label, inlineRules[:len(inlineRules)-1])
	if strings.TrimSpace(label) == "" {
		label = l.url
	}
	attrs := opts.Resolve(Links, Attributes{
		Href:   l.url,
		Title:  l.title,
		Target: string(opts.LinkTarget),
		Rel:    relFor(opts.LinkTarget),
	})
	return "<a" + attrs.HTML() + ">" + label + "</a>"
}

// relFor returns the rel value for a link target; only new tabs get one
func relFor(target LinkTarget) string {
	if target == TargetBlank {
		return "noopener noreferrer"
	}
	return ""
}

// wrap builds a replacement that encloses the first non-empty group in
// the given tags, outermost first
func wrap(tags ...string) func(p *pass, groups []string) string {
	return func(p *pass, groups []string) string {
		var content string
		for _, g := range groups[1:] {
			if g != "" {
				content = g
				break
			}
		}
		var b strings.Builder
		for _, t := range tags {
			b.WriteString("<" + t + ">")
		}
		b.WriteString(content)
		for i := len(tags) - 1; i >= 0; i-- {
			b.WriteString("</" + tags[i] + ">")
		}
		return b.String()
	}
}
