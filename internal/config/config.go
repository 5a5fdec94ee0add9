// Package config loads LocalPaint settings from TOML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"LocalPaint/internal/state"
)

// Config is the full application configuration.
type Config struct {
	Canvas CanvasConf   `toml:"canvas"`
	Export ExportConf   `toml:"export"`
	Tools  []state.Tool `toml:"tools"`
	Server ServerConf   `toml:"server"`
	Log    LogConf      `toml:"log"`
}

type CanvasConf struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	Ink        string `toml:"ink"`
}

type ExportConf struct {
	Scale  float64 `toml:"scale"`
	Prefix string  `toml:"prefix"`
	Crop   bool    `toml:"crop"`
}

type ServerConf struct {
	Listen    string `toml:"listen"`
	Advertise bool   `toml:"advertise"`
	Service   string `toml:"service"`
}

type LogConf struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Canvas: CanvasConf{
			Width:      256,
			Height:     256,
			Background: "#ffffff",
			Ink:        "#000000",
		},
		Export: ExportConf{
			Scale:  4,
			Prefix: "sketch",
		},
		Tools: DefaultTools(),
		Server: ServerConf{
			Listen:  ":8888",
			Service: "_localpaint._tcp",
		},
		Log: LogConf{Level: "info"},
	}
}

// DefaultTools returns two markers and three stickers.
func DefaultTools() []state.Tool {
	return []state.Tool{
		{Name: "thin", Thickness: 2},
		{Name: "thick", Thickness: 6},
		{Name: "heart", Glyph: "♥", GlyphSize: 24},
		{Name: "smile", Glyph: "☺", GlyphSize: 24},
		{Name: "note", Glyph: "♪", GlyphSize: 24},
	}
}

// LoadFile loads the configuration from a TOML file. It errors if the file
// has keys that were not decoded.
func LoadFile(fileName string) (*Config, error) {
	return load(fileName, true)
}

// Load is like LoadFile but reads the configuration from a string.
func Load(conf string) (*Config, error) {
	return load(conf, false)
}

func load(conf string, isFileName bool) (*Config, error) {
	c := Default()
	// a [[tools]] list replaces the defaults instead of merging into them
	c.Tools = nil
	var md toml.MetaData
	var err error
	if isFileName {
		md, err = toml.DecodeFile(conf, c)
	} else {
		md, err = toml.Decode(conf, c)
	}
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("undecoded fields in configuration: %v", undecoded)
	}
	if c.Tools == nil {
		c.Tools = DefaultTools()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks ranges and tool definitions.
func (c *Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Export.Scale <= 0 {
		errs = append(errs, fmt.Errorf("export scale must be positive, got %v", c.Export.Scale))
	}
	if _, err := ParseColor(c.Canvas.Background); err != nil {
		errs = append(errs, fmt.Errorf("canvas background: %w", err))
	}
	if _, err := ParseColor(c.Canvas.Ink); err != nil {
		errs = append(errs, fmt.Errorf("canvas ink: %w", err))
	}
	if len(c.Tools) == 0 {
		errs = append(errs, errors.New("at least one tool is required"))
	}
	seen := map[string]bool{}
	for i, t := range c.Tools {
		name := strings.TrimSpace(t.Name)
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("tool %d has no name", i))
		case seen[name]:
			errs = append(errs, fmt.Errorf("duplicate tool %q", name))
		case !t.IsSticker() && t.Thickness < 0:
			errs = append(errs, fmt.Errorf("tool %q has negative thickness", name))
		}
		seen[name] = true
	}
	return errors.Join(errs...)
}

// ParseColor parses a #rrggbb hex colour.
func ParseColor(s string) (color.Color, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// BackgroundColor returns the parsed canvas background.
func (c *Config) BackgroundColor() color.Color {
	col, err := ParseColor(c.Canvas.Background)
	if err != nil {
		return color.White
	}
	return col
}

// InkColor returns the parsed initial drawing colour.
func (c *Config) InkColor() color.Color {
	col, err := ParseColor(c.Canvas.Ink)
	if err != nil {
		return color.Black
	}
	return col
}
