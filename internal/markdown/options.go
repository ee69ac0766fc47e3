package markdown

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is returned by Parse when the options cannot be used
var ErrInvalidOptions = errors.New("invalid parse options")

// ElementType keys the per-element class and style configuration
type ElementType string

const (
	Headings        ElementType = "headings"
	Paragraphs      ElementType = "paragraphs"
	Lists           ElementType = "lists"
	Blockquotes     ElementType = "blockquotes"
	CodeBlocks      ElementType = "codeBlocks"
	Tables          ElementType = "tables"
	Links           ElementType = "links"
	Images          ElementType = "images"
	TaskItems       ElementType = "taskItems"
	DefinitionLists ElementType = "definitionLists"
)

// ElementTypes lists every configurable element type
func ElementTypes() []ElementType {
	return []ElementType{
		Headings, Paragraphs, Lists, Blockquotes, CodeBlocks,
		Tables, Links, Images, TaskItems, DefinitionLists,
	}
}

// Valid reports whether e is one of ElementTypes
func (e ElementType) Valid() bool {
	for _, t := range ElementTypes() {
		if t == e {
			return true
		}
	}
	return false
}

// LinkTarget is the anchor target applied to formatted links
type LinkTarget string

const (
	TargetBlank  LinkTarget = "_blank"
	TargetSelf   LinkTarget = "_self"
	TargetParent LinkTarget = "_parent"
	TargetTop    LinkTarget = "_top"
)

// Valid reports whether t is a supported target
func (t LinkTarget) Valid() bool {
	switch t {
	case TargetBlank, TargetSelf, TargetParent, TargetTop:
		return true
	}
	return false
}

const (
	DefaultLangPrefix      = "language-"
	DefaultMaxNestingLevel = 6
)

// Options controls parsing. The zero value is usable; unset fields take
// the defaults from DefaultOptions.
type Options struct {
	// LangPrefix is prepended to a code fence language to form its class
	LangPrefix string

	CustomClasses map[ElementType]string
	CustomStyles  map[ElementType]Style

	LinkTarget LinkTarget

	// SanitizeHTML escapes &<>"' in raw text before markup is injected.
	// nil means true.
	SanitizeHTML *bool

	// MaxNestingLevel caps list and task indentation depth. 0 means the default.
	MaxNestingLevel int
}

// DefaultOptions returns the options Parse uses when none are given
func DefaultOptions() Options {
	return Options{
		LangPrefix:      DefaultLangPrefix,
		LinkTarget:      TargetBlank,
		SanitizeHTML:    Bool(true),
		MaxNestingLevel: DefaultMaxNestingLevel,
	}
}

// Bool returns a pointer to b, for Options.SanitizeHTML
func Bool(b bool) *bool {
	return &b
}

// Sanitize reports whether raw text is escaped
func (o Options) Sanitize() bool {
	return o.SanitizeHTML == nil || *o.SanitizeHTML
}

// withDefaults fills unset fields
func (o Options) withDefaults() Options {
	if o.LangPrefix == "" {
		o.LangPrefix = DefaultLangPrefix
	}
	if o.LinkTarget == "" {
		o.LinkTarget = TargetBlank
	}
	if o.SanitizeHTML == nil {
		o.SanitizeHTML = Bool(true)
	}
	if o.MaxNestingLevel == 0 {
		o.MaxNestingLevel = DefaultMaxNestingLevel
	}
	return o
}

// Validate checks option values that would break the scanner
func (o Options) Validate() error {
	if o.LinkTarget != "" && !o.LinkTarget.Valid() {
		return fmt.Errorf("%w: link target %q must be one of _blank, _self, _parent, _top", ErrInvalidOptions, o.LinkTarget)
	}
	if o.MaxNestingLevel < 0 {
		return fmt.Errorf("%w: max nesting level %d is negative", ErrInvalidOptions, o.MaxNestingLevel)
	}
	for e := range o.CustomClasses {
		if !e.Valid() {
			return fmt.Errorf("%w: unknown element type %q in custom classes", ErrInvalidOptions, e)
		}
	}
	for e := range o.CustomStyles {
		if !e.Valid() {
			return fmt.Errorf("%w: unknown element type %q in custom styles", ErrInvalidOptions, e)
		}
	}
	return nil
}
