// Package config loads the presentation configuration from YAML or TOML
// files layered over embedded defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/marquee/pkg/adapters/memory"
	"github.com/aretw0/marquee/pkg/cycle"
	"github.com/aretw0/marquee/pkg/domain"
	"github.com/aretw0/marquee/pkg/emitter"
	"github.com/aretw0/marquee/pkg/pipeline"
	"github.com/aretw0/marquee/pkg/scheduler"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config is the full presentation configuration.
type Config struct {
	Layouts    []string                    `mapstructure:"layouts"`
	Items      []Item                      `mapstructure:"items"`
	Highlights []string                    `mapstructure:"highlights"`
	Narratives map[string]domain.Narrative `mapstructure:"narratives"`
	Timing     pipeline.Timing             `mapstructure:"timing"`
	Schedule   scheduler.Timing            `mapstructure:"schedule"`
	Emitter    emitter.Settings            `mapstructure:"emitter"`
	Engine     Engine                      `mapstructure:"engine"`
	Viewport   Viewport                    `mapstructure:"viewport"`
	Log        Log                         `mapstructure:"log"`
}

// Item describes one cycle item.
type Item struct {
	Key     string `mapstructure:"key"`
	Glyph   string `mapstructure:"glyph"`
	Word    string `mapstructure:"word"`
	Caption string `mapstructure:"caption"`
}

// Engine tunes the animation engine and the orchestrator.
type Engine struct {
	FrameInterval time.Duration `mapstructure:"frame_interval"`
	FinaleDelay   time.Duration `mapstructure:"finale_delay"`
}

// Viewport is the initial surface size in cells.
type Viewport struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Log selects the logger. Format is one of auto, text or pretty.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	base, err := parse(defaultsYAML, ".yaml")
	if err != nil {
		return nil, fmt.Errorf("embedded defaults: %w", err)
	}
	return decode(base)
}

// Load reads path and merges it over the defaults. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data in the format named by ext (".yaml", ".yml" or ".toml")
// and merges it over the defaults.
func Parse(data []byte, ext string) (*Config, error) {
	base, err := parse(defaultsYAML, ".yaml")
	if err != nil {
		return nil, fmt.Errorf("embedded defaults: %w", err)
	}
	overlay, err := parse(data, ext)
	if err != nil {
		return nil, err
	}
	return decode(merge(base, overlay))
}

func parse(data []byte, ext string) (map[string]any, error) {
	out := map[string]any{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &out); err != nil {
			return nil, fmt.Errorf("failed to parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return out, nil
}

// merge overlays src onto dst. Nested maps merge key by key, anything else
// (lists included) is replaced.
func merge(dst, src map[string]any) map[string]any {
	for k, v := range src {
		if sm, ok := v.(map[string]any); ok {
			if dm, ok := dst[k].(map[string]any); ok {
				dst[k] = merge(dm, sm)
				continue
			}
		}
		dst[k] = v
	}
	return dst
}

func decode(raw map[string]any) (*Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			intToDurationHook,
		),
		ErrorUnused: true,
		Result:      &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// intToDurationHook reads bare numbers as milliseconds.
func intToDurationHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return time.Duration(v) * time.Millisecond, nil
	case int64:
		return time.Duration(v) * time.Millisecond, nil
	}
	return data, nil
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	modes, err := c.Modes()
	if err != nil {
		return err
	}
	if _, err := cycle.New(modes...); err != nil {
		return fmt.Errorf("layouts: %w", err)
	}
	if len(c.Items) == 0 {
		return fmt.Errorf("%w: no items", domain.ErrContract)
	}
	seen := make(map[string]bool, len(c.Items))
	for _, it := range c.Items {
		if it.Key == "" {
			return fmt.Errorf("%w: item without key", domain.ErrContract)
		}
		if seen[it.Key] {
			return fmt.Errorf("%w: duplicate item %q", domain.ErrContract, it.Key)
		}
		seen[it.Key] = true
		if _, ok := c.Narratives[it.Key]; !ok {
			return fmt.Errorf("item %q: %w", it.Key, domain.ErrMissingNarrative)
		}
	}
	if err := c.Timing.Validate(); err != nil {
		return err
	}
	if err := c.Schedule.Validate(); err != nil {
		return err
	}
	if err := c.Emitter.Validate(); err != nil {
		return err
	}
	if c.Engine.FrameInterval <= 0 {
		return fmt.Errorf("%w: engine frame_interval must be positive", domain.ErrContract)
	}
	if c.Engine.FinaleDelay < 0 {
		return fmt.Errorf("engine finale_delay: %w", domain.ErrNegativeDuration)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport must be positive", domain.ErrContract)
	}
	switch c.Log.Format {
	case "", "auto", "text", "pretty":
	default:
		return fmt.Errorf("%w: log format %q", domain.ErrContract, c.Log.Format)
	}
	return nil
}

// Modes converts the layout names.
func (c *Config) Modes() ([]domain.LayoutMode, error) {
	out := make([]domain.LayoutMode, len(c.Layouts))
	for i, name := range c.Layouts {
		m := domain.LayoutMode(name)
		if !m.Valid() {
			return nil, fmt.Errorf("%w: unknown layout %q", domain.ErrContract, name)
		}
		out[i] = m
	}
	return out, nil
}

// ItemSpecs converts items for the memory stage.
func (c *Config) ItemSpecs() []memory.ItemSpec {
	out := make([]memory.ItemSpec, len(c.Items))
	for i, it := range c.Items {
		out[i] = memory.ItemSpec{Key: it.Key, Glyph: it.Glyph, Word: it.Word, Caption: it.Caption}
	}
	return out
}

// NarrativeTable builds the lookup table.
func (c *Config) NarrativeTable() *memory.Narratives {
	return memory.NewNarratives(c.Narratives)
}
