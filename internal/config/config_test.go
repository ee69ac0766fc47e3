package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/J3rry320/mdtree/internal/markdown"
)

func overrideConfigPath(t *testing.T, path string) {
	t.Helper()
	original := ConfigPath
	ConfigPath = func() string {
		return path
	}
	t.Cleanup(func() {
		ConfigPath = original
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SourceDir == "" {
		t.Error("Expected SourceDir to be set")
	}
	if cfg.OutputDir == "" {
		t.Error("Expected OutputDir to be set")
	}
	if cfg.LogFile == "" {
		t.Error("Expected LogFile to be set")
	}
	if cfg.LangPrefix != "language-" {
		t.Errorf("Expected LangPrefix to be language-, got %q", cfg.LangPrefix)
	}
	if cfg.MaxNestingLevel != 6 {
		t.Errorf("Expected MaxNestingLevel to be 6, got %d", cfg.MaxNestingLevel)
	}
	if cfg.SanitizeHTML == nil || !*cfg.SanitizeHTML {
		t.Error("Expected SanitizeHTML to default to true")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			SourceDir: "/path/to/notes",
			OutputDir: "/path/to/site",
			LogFile:   "/tmp/test.log",
		}
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty source_dir",
			modify:  func(c *Config) { c.SourceDir = "" },
			wantErr: true,
		},
		{
			name:    "empty output_dir",
			modify:  func(c *Config) { c.OutputDir = "" },
			wantErr: true,
		},
		{
			name:    "empty log_file",
			modify:  func(c *Config) { c.LogFile = "" },
			wantErr: true,
		},
		{
			name:    "bad exclude pattern",
			modify:  func(c *Config) { c.ExcludePatterns = []string{"[a-"} },
			wantErr: true,
		},
		{
			name:    "bad link target",
			modify:  func(c *Config) { c.LinkTarget = "_new" },
			wantErr: true,
		},
		{
			name:    "negative nesting level",
			modify:  func(c *Config) { c.MaxNestingLevel = -1 },
			wantErr: true,
		},
		{
			name:    "unknown element class",
			modify:  func(c *Config) { c.CustomClasses = map[string]string{"sidebars": "x"} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWrapsParserError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LinkTarget = "_new"

	err := cfg.Validate()
	if !errors.Is(err, markdown.ErrInvalidOptions) {
		t.Errorf("Expected ErrInvalidOptions, got %v", err)
	}
}

func TestParseOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LinkTarget = "_self"
	cfg.CustomClasses = map[string]string{"headings": "title"}
	cfg.CustomStyles = map[string]map[string]string{"tables": {"width": "100%"}}

	opts := cfg.ParseOptions()

	if opts.LinkTarget != markdown.TargetSelf {
		t.Errorf("LinkTarget = %q, want _self", opts.LinkTarget)
	}
	if opts.CustomClasses[markdown.Headings] != "title" {
		t.Errorf("CustomClasses[headings] = %q, want title", opts.CustomClasses[markdown.Headings])
	}
	if opts.CustomStyles[markdown.Tables]["width"] != "100%" {
		t.Errorf("CustomStyles[tables] = %v", opts.CustomStyles[markdown.Tables])
	}
	if !opts.Sanitize() {
		t.Error("Expected sanitizing to stay on")
	}
}

func TestContainerOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Article = true
	cfg.ContainerClass = "notes"
	cfg.AriaLabel = "Notes"

	c := cfg.ContainerOptions()
	if !c.Article || c.Class != "notes" || c.AriaLabel != "Notes" {
		t.Errorf("ContainerOptions() = %+v", c)
	}
	if c.ID != "" {
		t.Errorf("Expected empty ID so each page gets its own, got %q", c.ID)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.json")
	overrideConfigPath(t, testConfigPath)

	testCfg := DefaultConfig()
	testCfg.SourceDir = "/test/notes"
	testCfg.OutputDir = "/test/site"
	testCfg.LogFile = "/tmp/mdtree-test.log"
	testCfg.LangPrefix = "lang-"
	testCfg.SanitizeHTML = markdown.Bool(false)
	testCfg.MaxNestingLevel = 3

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(testConfigPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.LangPrefix != "lang-" {
		t.Errorf("LangPrefix mismatch: got %q", loadedCfg.LangPrefix)
	}
	if loadedCfg.MaxNestingLevel != 3 {
		t.Errorf("MaxNestingLevel mismatch: got %d", loadedCfg.MaxNestingLevel)
	}
	if loadedCfg.SanitizeHTML == nil || *loadedCfg.SanitizeHTML {
		t.Error("SanitizeHTML should load as false")
	}
	if loadedCfg.SourceDir != "/test/notes" {
		t.Errorf("SourceDir mismatch: got %q", loadedCfg.SourceDir)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.json")
	overrideConfigPath(t, testConfigPath)

	if err := os.WriteFile(testConfigPath, []byte(`{"source_dir": "/docs"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SourceDir != "/docs" {
		t.Errorf("SourceDir = %q, want /docs", cfg.SourceDir)
	}
	if cfg.LangPrefix != "language-" {
		t.Errorf("Expected default LangPrefix, got %q", cfg.LangPrefix)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.json")
	overrideConfigPath(t, testConfigPath)

	if err := os.WriteFile(testConfigPath, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	tmpDir := t.TempDir()
	overrideConfigPath(t, filepath.Join(tmpDir, "nonexistent.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}

	if cfg.MaxNestingLevel != markdown.DefaultMaxNestingLevel {
		t.Errorf("Expected default nesting level, got %d", cfg.MaxNestingLevel)
	}
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "tilde expansion", input: "~/test"},
		{name: "tilde only", input: "~"},
		{name: "absolute path", input: "/tmp/test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if err != nil {
				t.Fatalf("expandPath() error = %v", err)
			}
			if result == "" {
				t.Error("expandPath() returned empty string")
			}
			if tt.input[0] == '~' && result == tt.input {
				t.Errorf("Path was not expanded: %s", result)
			}
		})
	}
}

func TestConfigPathsExpanded(t *testing.T) {
	tmpDir := t.TempDir()
	overrideConfigPath(t, filepath.Join(tmpDir, "config.json"))

	testCfg := DefaultConfig()
	testCfg.SourceDir = "~/notes"
	testCfg.OutputDir = "~/notes/_site"
	testCfg.LogFile = "~/mdtree.log"

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedCfg.SourceDir[0] == '~' {
		t.Error("SourceDir was not expanded")
	}
	if loadedCfg.OutputDir[0] == '~' {
		t.Error("OutputDir was not expanded")
	}
	if loadedCfg.LogFile[0] == '~' {
		t.Error("LogFile was not expanded")
	}
}
