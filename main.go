package main

import (
	"fmt"
	"os"

	"github.com/J3rry320/mdtree/internal/commands"
	"github.com/J3rry320/mdtree/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "parse":
		commands.Parse(os.Args[2:])
	case "html":
		commands.HTML(os.Args[2:])
	case "show", "view":
		commands.Show(os.Args[2:])
	case "build":
		commands.Build(os.Args[2:])
	case "diff":
		commands.Diff(os.Args[2:])
	case "browse":
		commands.Browse(os.Args[2:])
	case "version", "-v", "--version":
		fmt.Printf("mdtree v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`mdtree - Markdown to node tree parser and renderer

Usage:
  mdtree <command> [options] [file]

Commands:
  parse       Dump the node tree as JSON or YAML
  html        Render a document to HTML
  show        Render a document for the terminal
  build       Render a directory of markdown files to HTML pages
  diff        Compare the rendering of two documents
  browse      Browse the nodes of a document
  version     Show version information
  help        Show this help message

Examples:
  mdtree parse README.md
  mdtree parse --format yaml --front-matter notes.md
  cat notes.md | mdtree html --page > notes.html
  mdtree show --width 100 README.md
  mdtree build --force
  mdtree diff --format tree old.md new.md
  mdtree browse README.md

Parser options (all commands):
  --lang-prefix, --link-target, --no-sanitize, --max-nesting

Configuration:
  Config file: %s
  State file:  %s
`, config.ConfigPath(), config.StateFilePath())
	fmt.Print(usage)
}
