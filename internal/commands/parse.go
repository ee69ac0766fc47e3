package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/J3rry320/mdtree/internal/markdown"
)

// document is the dump written by parse
type document struct {
	FrontMatter *markdown.FrontMatter `json:"front_matter,omitempty" yaml:"front_matter,omitempty"`
	Nodes       []*markdown.Node      `json:"nodes" yaml:"nodes"`
}

// Parse dumps the node tree of a document as JSON or YAML
func Parse(args []string) {
	var opts optionFlags
	var format, output string
	var frontMatter bool

	fs := pflag.NewFlagSet("parse", pflag.ContinueOnError)
	fs.StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	fs.StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	fs.BoolVar(&frontMatter, "front-matter", false, "read a leading YAML front matter block")
	opts.register(fs)
	if !parseFlags(fs, args, "Usage: mdtree parse [flags] [file]") {
		return
	}

	cfg := loadConfig(&opts)

	text, err := readSource(fs.Arg(0))
	if err != nil {
		fail("Failed to read input", err)
	}

	var doc document
	if frontMatter {
		fm, body, err := markdown.SplitFrontMatter(text)
		if err != nil {
			fail("Failed to read front matter", err)
		}
		doc.FrontMatter = &fm
		text = body
	}

	doc.Nodes, err = markdown.Parse(text, cfg.ParseOptions())
	if err != nil {
		fail("Failed to parse", err)
	}

	var data []byte
	switch format {
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	case "yaml", "yml":
		data, err = yaml.Marshal(doc)
	default:
		err = fmt.Errorf("unsupported format '%s': must be one of: json, yaml", format)
	}
	if err != nil {
		fail("Failed to encode nodes", err)
	}

	if err := writeOutput(output, string(data)); err != nil {
		fail("Failed to write output", err)
	}
}
