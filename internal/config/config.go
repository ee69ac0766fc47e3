package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/J3rry320/mdtree/internal/markdown"
	"github.com/J3rry320/mdtree/internal/render"
)

// Config represents the mdtree configuration
type Config struct {
	SourceDir       string   `json:"source_dir"`
	OutputDir       string   `json:"output_dir"`
	LogFile         string   `json:"log_file"`
	ExcludePatterns []string `json:"exclude_patterns,omitempty"`

	// Parser options
	LangPrefix      string                       `json:"lang_prefix,omitempty"`
	LinkTarget      string                       `json:"link_target,omitempty"`
	SanitizeHTML    *bool                        `json:"sanitize_html,omitempty"`
	MaxNestingLevel int                          `json:"max_nesting_level,omitempty"`
	CustomClasses   map[string]string            `json:"custom_classes,omitempty"`
	CustomStyles    map[string]map[string]string `json:"custom_styles,omitempty"`

	// Container options
	Article        bool              `json:"article,omitempty"`
	ContainerClass string            `json:"container_class,omitempty"`
	ContainerStyle map[string]string `json:"container_style,omitempty"`
	AriaLabel      string            `json:"aria_label,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		SourceDir:       filepath.Join(home, "notes"),
		OutputDir:       filepath.Join(home, "notes", "_site"),
		LogFile:         "/tmp/mdtree.log",
		ExcludePatterns: []string{},
		LangPrefix:      markdown.DefaultLangPrefix,
		LinkTarget:      string(markdown.TargetBlank),
		SanitizeHTML:    markdown.Bool(true),
		MaxNestingLevel: markdown.DefaultMaxNestingLevel,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "mdtree", "config.json")
	}
	return filepath.Join(home, ".config", "mdtree", "config.json")
}

// StateFilePath returns the path to the build state file
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "mdtree", "state.json")
}

// Load reads configuration from the config directory. Fields missing from
// the file keep their defaults.
func Load() (*Config, error) {
	configPath := ConfigPath()
	data, err := os.ReadFile(configPath)
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.ExcludePatterns == nil {
		cfg.ExcludePatterns = []string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config directory
func (c *Config) Save() error {
	configPath := ConfigPath()
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if c.LogFile == "" {
		return fmt.Errorf("log_file cannot be empty")
	}
	for _, pattern := range c.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}

	// Parser options share the parser's own checks
	return c.ParseOptions().Validate()
}

// ParseOptions converts the parser settings into markdown.Options
func (c *Config) ParseOptions() markdown.Options {
	opts := markdown.Options{
		LangPrefix:      c.LangPrefix,
		LinkTarget:      markdown.LinkTarget(c.LinkTarget),
		SanitizeHTML:    c.SanitizeHTML,
		MaxNestingLevel: c.MaxNestingLevel,
	}
	if len(c.CustomClasses) > 0 {
		opts.CustomClasses = make(map[markdown.ElementType]string, len(c.CustomClasses))
		for k, v := range c.CustomClasses {
			opts.CustomClasses[markdown.ElementType(k)] = v
		}
	}
	if len(c.CustomStyles) > 0 {
		opts.CustomStyles = make(map[markdown.ElementType]markdown.Style, len(c.CustomStyles))
		for k, v := range c.CustomStyles {
			opts.CustomStyles[markdown.ElementType(k)] = markdown.Style(v)
		}
	}
	return opts
}

// ContainerOptions returns the settings for the element wrapping each page
func (c *Config) ContainerOptions() render.ContainerOptions {
	return render.ContainerOptions{
		Article:   c.Article,
		Class:     c.ContainerClass,
		Style:     markdown.Style(c.ContainerStyle),
		AriaLabel: c.AriaLabel,
	}
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.SourceDir, err = expandPath(c.SourceDir)
	if err != nil {
		return fmt.Errorf("failed to expand source_dir: %w", err)
	}

	c.OutputDir, err = expandPath(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to expand output_dir: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
