package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML block at the top of a document
type FrontMatter struct {
	Title       string   `yaml:"title" json:"title,omitempty"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Lang        string   `yaml:"lang" json:"lang,omitempty"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
}

// SplitFrontMatter separates a leading --- delimited YAML block from the
// body. Text without a complete block is returned unchanged. When the YAML
// is invalid the text is returned unchanged together with the error, so
// callers can log it and carry on.
func SplitFrontMatter(text string) (FrontMatter, string, error) {
	var fm FrontMatter

	lines := lineBreak.Split(text, -1)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return fm, text, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return fm, text, nil
	}

	block := strings.Join(lines[1:end], "\n")
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return FrontMatter{}, text, fmt.Errorf("failed to parse front matter: %w", err)
	}

	body := lines[end+1:]
	for len(body) > 0 && strings.TrimSpace(body[0]) == "" {
		body = body[1:]
	}
	return fm, strings.Join(body, "\n"), nil
}
