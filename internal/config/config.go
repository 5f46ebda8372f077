// Package config loads the virtuallist demo configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied before a file or flags are read.
const (
	DefaultListHeight   = 400.0
	DefaultItemCount    = 0
	DefaultMinThumbSize = 1.0
	DefaultHideDelay    = 300 * time.Millisecond
	DefaultMouseWheel   = 3
	DefaultLogLevel     = "info"
)

// Renderer kinds.
const (
	RendererText     = "text"
	RendererMarkdown = "markdown"
	RendererCode     = "code"
)

// Validation errors.
var (
	ErrMissingEstimatedHeight = errors.New("list.estimated_item_height is required and must be positive")
	ErrNegativeItemCount      = errors.New("list.item_count cannot be negative")
	ErrNegativeHeight         = errors.New("list.height cannot be negative")
	ErrUnknownRenderer        = errors.New("renderer.kind must be text, markdown or code")
)

// Config is the full demo configuration.
type Config struct {
	List      ListConfig      `yaml:"list"`
	Scrollbar ScrollbarConfig `yaml:"scrollbar"`
	Renderer  RendererConfig  `yaml:"renderer"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ListConfig sizes the virtual list.
type ListConfig struct {
	// Height is the container height in rows. Values taller than the
	// terminal are clamped by the CLI.
	Height              float64 `yaml:"height"`
	ItemCount           int     `yaml:"item_count"`
	EstimatedItemHeight float64 `yaml:"estimated_item_height"`
	// Source is an optional file to read items from instead of
	// generating ItemCount items.
	Source string `yaml:"source"`
}

// ScrollbarConfig tunes the custom scrollbar.
type ScrollbarConfig struct {
	MinThumbSize float64       `yaml:"min_thumb_size"`
	HideDelay    time.Duration `yaml:"hide_delay"`
	MouseWheel   int           `yaml:"mouse_wheel"`
	AlwaysShow   bool          `yaml:"always_show"`
}

// RendererConfig selects how items are drawn.
type RendererConfig struct {
	Kind     string `yaml:"kind"`
	Language string `yaml:"language"`
	Style    string `yaml:"style"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when no file is given.
// EstimatedItemHeight has no default and must be supplied.
func Default() *Config {
	return &Config{
		List: ListConfig{
			Height:    DefaultListHeight,
			ItemCount: DefaultItemCount,
		},
		Scrollbar: ScrollbarConfig{
			MinThumbSize: DefaultMinThumbSize,
			HideDelay:    DefaultHideDelay,
			MouseWheel:   DefaultMouseWheel,
		},
		Renderer: RendererConfig{Kind: RendererText},
		Logging:  LoggingConfig{Level: DefaultLogLevel},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Load does not validate; call Validate once flags have been applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML from %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks required fields and ranges.
func (c *Config) Validate() error {
	if c.List.EstimatedItemHeight <= 0 {
		return fmt.Errorf("%w: got %v", ErrMissingEstimatedHeight, c.List.EstimatedItemHeight)
	}
	if c.List.ItemCount < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeItemCount, c.List.ItemCount)
	}
	if c.List.Height < 0 {
		return fmt.Errorf("%w: got %v", ErrNegativeHeight, c.List.Height)
	}
	switch c.Renderer.Kind {
	case RendererText, RendererMarkdown, RendererCode:
	default:
		return fmt.Errorf("%w: got %q", ErrUnknownRenderer, c.Renderer.Kind)
	}
	return nil
}
