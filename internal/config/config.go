package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config holds CLI defaults read from the config file. Flags set on the
// command line take precedence.
type Config struct {
	Format            string  `yaml:"format,omitempty"`
	Theme             string  `yaml:"theme,omitempty"`
	Width             int     `yaml:"width,omitempty"`
	OSC8              string  `yaml:"osc8,omitempty"`
	Inline            *bool   `yaml:"inline,omitempty"`
	Breaks            *bool   `yaml:"breaks,omitempty"`
	GFM               *bool   `yaml:"gfm,omitempty"`
	BaseURL           string  `yaml:"base_url,omitempty"`
	OpenLinksInNewTab *bool   `yaml:"open_links_in_new_tab,omitempty"`
	LangPrefix        *string `yaml:"lang_prefix,omitempty"`
	MaxDepth          int     `yaml:"max_depth,omitempty"`
	SanitizeHTML      bool    `yaml:"sanitize_html,omitempty"`
	Serve             string  `yaml:"serve,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Format: "ansi",
		Theme:  "default",
		OSC8:   "auto",
	}
}

// ConfigPath returns the path to the config file
// Can be overridden for testing
var ConfigPath = func() string {
	return filepath.Join(xdg.ConfigHome, "mdtree", "config.yaml")
}

// Load reads the config file at path, or ConfigPath when path is empty. A
// missing default file yields DefaultConfig; a missing explicit file is an
// error.
func Load(path string) (*Config, bool, error) {
	explicit := path != ""
	if !explicit {
		path = ConfigPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return DefaultConfig(), false, nil
		}
		return nil, false, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, false, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, true, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validFormats := map[string]bool{
		"html": true,
		"ansi": true,
		"tree": true,
	}
	if !validFormats[strings.ToLower(c.Format)] {
		return fmt.Errorf("invalid format '%s': must be one of: html, ansi, tree", c.Format)
	}
	if c.Width < 0 {
		return fmt.Errorf("width cannot be negative")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth cannot be negative")
	}
	switch strings.ToLower(c.OSC8) {
	case "", "auto", "on", "off", "true", "false", "1", "0", "yes", "no":
	default:
		return fmt.Errorf("invalid osc8 '%s': must be one of: auto, on, off", c.OSC8)
	}
	return nil
}
