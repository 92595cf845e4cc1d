package chart

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gopkg.in/yaml.v3"
)

// Bounds selects how the y-axis range is chosen.
type Bounds string

const (
	// BoundsDynamic fits the axis to [min-Padding, max+Padding].
	BoundsDynamic Bounds = "dynamic"
	// BoundsAuto leaves the range to the charting library.
	BoundsAuto Bounds = "auto"
)

// Format is the image encoding a chart is rendered to.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// Options is the single configuration for the weight chart.
type Options struct {
	Title        string  `yaml:"title"`
	DatasetLabel string  `yaml:"dataset_label"`
	XAxisTitle   string  `yaml:"x_axis_title"`
	YAxisTitle   string  `yaml:"y_axis_title"`
	Bounds       Bounds  `yaml:"bounds"`
	Padding      float64 `yaml:"padding"`

	LineColor   string  `yaml:"line_color"`
	FillColor   string  `yaml:"fill_color"`
	PointColor  string  `yaml:"point_color"`
	LineWidth   float64 `yaml:"line_width"`
	PointRadius float64 `yaml:"point_radius"`
	Fill        bool    `yaml:"fill"`
	Legend      bool    `yaml:"legend"`

	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Format Format `yaml:"format"`
}

// DefaultOptions returns the weight chart look: teal line with a light fill,
// green points, dynamic bounds padded by 2 kg.
func DefaultOptions() Options {
	return Options{
		DatasetLabel: "Weight (kg)",
		XAxisTitle:   "Date",
		YAxisTitle:   "Weight (kg)",
		Bounds:       BoundsDynamic,
		Padding:      2,
		LineColor:    "#4bc0c0",
		FillColor:    "#4bc0c033",
		PointColor:   "#008000",
		LineWidth:    2,
		PointRadius:  5,
		Fill:         true,
		Legend:       true,
		Width:        800,
		Height:       400,
		Format:       PNG,
	}
}

// LoadOptions reads YAML overrides on top of DefaultOptions. A missing file
// yields the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("failed to read chart options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse chart options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate checks enumerations, sizes and colours.
func (o Options) Validate() error {
	switch o.Bounds {
	case BoundsDynamic, BoundsAuto:
	default:
		return fmt.Errorf("unknown bounds policy %q", o.Bounds)
	}
	switch o.Format {
	case PNG, SVG:
	default:
		return fmt.Errorf("unknown chart format %q", o.Format)
	}
	if o.Padding < 0 {
		return fmt.Errorf("padding must not be negative, got %v", o.Padding)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", o.Width, o.Height)
	}
	for _, c := range []string{o.LineColor, o.FillColor, o.PointColor} {
		if _, err := parseColor(c); err != nil {
			return err
		}
	}
	return nil
}

// parseColor accepts #rrggbb or #rrggbbaa.
func parseColor(s string) (drawing.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return drawing.Color{}, fmt.Errorf("invalid colour %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return drawing.Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return drawing.Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

func mustColor(s string) drawing.Color {
	c, err := parseColor(s)
	if err != nil {
		return drawing.Color{A: 255}
	}
	return c
}
