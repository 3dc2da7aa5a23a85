// Package config loads TOML configuration for the timeline toolkit.
//
// Configuration is layered: Default() supplies the reference visual
// design (the compressed 2021-2026 window with a short first year), and
// a TOML file overrides individual fields. The axis compression scheme
// is deliberately configuration, not code: the mapper consumes whatever
// segments the config produces.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/amandersonyou/impact-timeline/pkg/errors"
	"github.com/amandersonyou/impact-timeline/pkg/timeline/layout"
	"github.com/amandersonyou/impact-timeline/pkg/timeline/timescale"
)

// Config is the complete toolkit configuration.
type Config struct {
	Axis   AxisConfig   `toml:"axis"`
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
}

// AxisConfig describes the piecewise year scale.
type AxisConfig struct {
	// FirstYear and LastYear bound the configured window (inclusive).
	FirstYear int `toml:"first_year"`
	LastYear  int `toml:"last_year"`

	// YearLength is the pixel length of a regular year segment.
	YearLength float64 `toml:"year_length"`

	// FirstYearLength overrides the first year's segment length,
	// compressing a sparsely populated opening year. Zero means the
	// first year uses YearLength.
	FirstYearLength float64 `toml:"first_year_length"`

	// SegmentGap is the fixed pixel gap between year segments.
	SegmentGap float64 `toml:"segment_gap"`
}

// LayoutConfig mirrors layout.Options.
type LayoutConfig struct {
	LineSpacing    float64 `toml:"line_spacing"`
	DescriptionGap float64 `toml:"description_gap"`
	MinWrapWidth   float64 `toml:"min_wrap_width"`
	MaxWrapWidth   float64 `toml:"max_wrap_width"`
	AxisMargin     float64 `toml:"axis_margin"`
}

// RenderConfig controls the SVG rendering surface.
type RenderConfig struct {
	// ViewportWidth is the default frame width used when the caller
	// does not supply one.
	ViewportWidth float64 `toml:"viewport_width"`

	// FontSize is the base text size in pixels.
	FontSize float64 `toml:"font_size"`

	// CharWidth is the estimated per-character width as a fraction of
	// FontSize, used by the layout-time text measurer.
	CharWidth float64 `toml:"char_width"`

	// MarkerRadius is the radius of point-event markers.
	MarkerRadius float64 `toml:"marker_radius"`

	// SpanWidth is the stroke width of span-event extents.
	SpanWidth float64 `toml:"span_width"`
}

// Default returns the reference configuration: the 2021-2026 window with
// a 150px first year, 1100px regular years, and a 100px gap.
func Default() Config {
	return Config{
		Axis: AxisConfig{
			FirstYear:       2021,
			LastYear:        2026,
			YearLength:      1100,
			FirstYearLength: 150,
			SegmentGap:      100,
		},
		Layout: LayoutConfig{
			LineSpacing:    layout.DefaultLineSpacing,
			DescriptionGap: layout.DefaultDescriptionGap,
			MinWrapWidth:   layout.DefaultMinWrapWidth,
			MaxWrapWidth:   layout.DefaultMaxWrapWidth,
			AxisMargin:     layout.DefaultAxisMargin,
		},
		Render: RenderConfig{
			ViewportWidth: 1200,
			FontSize:      14,
			CharWidth:     0.55,
			MarkerRadius:  7,
			SpanWidth:     10,
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field invariants.
func (c Config) Validate() error {
	if c.Axis.LastYear < c.Axis.FirstYear {
		return errors.New(errors.ErrCodeInvalidConfig,
			"axis.last_year %d precedes axis.first_year %d", c.Axis.LastYear, c.Axis.FirstYear)
	}
	if c.Axis.YearLength <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "axis.year_length must be positive")
	}
	if c.Axis.SegmentGap < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "axis.segment_gap must be non-negative")
	}
	if c.Layout.MinWrapWidth > c.Layout.MaxWrapWidth {
		return errors.New(errors.ErrCodeInvalidConfig,
			"layout.min_wrap_width %.0f exceeds layout.max_wrap_width %.0f",
			c.Layout.MinWrapWidth, c.Layout.MaxWrapWidth)
	}
	return nil
}

// Scale builds the timescale described by the axis configuration.
func (c AxisConfig) Scale() (*timescale.Scale, error) {
	segments := make([]timescale.YearSegment, 0, c.LastYear-c.FirstYear+1)
	for y := c.FirstYear; y <= c.LastYear; y++ {
		length := c.YearLength
		if y == c.FirstYear && c.FirstYearLength > 0 {
			length = c.FirstYearLength
		}
		segments = append(segments, timescale.YearSegment{Year: y, Length: length})
	}
	return timescale.New(segments, c.SegmentGap)
}

// Options converts the layout configuration to engine options.
func (c LayoutConfig) Options() layout.Options {
	return layout.Options{
		LineSpacing:    c.LineSpacing,
		DescriptionGap: c.DescriptionGap,
		MinWrapWidth:   c.MinWrapWidth,
		MaxWrapWidth:   c.MaxWrapWidth,
		AxisMargin:     c.AxisMargin,
	}
}
