// Package chart renders the weight history as a line chart and owns the one
// live chart bound to a canvas.
package chart

import (
	"bytes"
	"errors"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
)

var (
	// ErrEmptySeries is returned for a series without points.
	ErrEmptySeries = errors.New("series has no points")
	// ErrLengthMismatch is returned when labels and values differ in length.
	ErrLengthMismatch = errors.New("series labels and values differ in length")
	// ErrNoCanvas is returned when a session has nothing to draw on.
	ErrNoCanvas = errors.New("no canvas to draw on")
)

// Series is an ordered list of (label, value) points.
type Series struct {
	Labels []string
	Values []float64
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Values)
}

// Validate rejects empty and ragged series.
func (s Series) Validate() error {
	if len(s.Labels) != len(s.Values) {
		return fmt.Errorf("%w: %d labels, %d values", ErrLengthMismatch, len(s.Labels), len(s.Values))
	}
	if len(s.Values) == 0 {
		return ErrEmptySeries
	}
	return nil
}

// rendered is the output of a single draw.
type rendered struct {
	image      []byte
	yMin, yMax float64
}

// render draws s with opts. Points sit at x = 1..n with the labels as ticks,
// so the x-axis keeps the backend's order and spacing.
func render(s Series, opts Options) (*rendered, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	n := s.Len()
	xs := make([]float64, n)
	ticks := make([]gochart.Tick, n)
	for i, label := range s.Labels {
		xs[i] = float64(i + 1)
		ticks[i] = gochart.Tick{Value: xs[i], Label: label}
	}
	ys := s.Values
	if n == 1 {
		// go-chart needs two distinct x values; repeat the point one step right.
		xs = []float64{xs[0], xs[0] + 1}
		ys = []float64{ys[0], ys[0]}
	}

	yMin, yMax, err := YBounds(s.Values, opts.Padding)
	if err != nil {
		return nil, err
	}
	var yRange *gochart.ContinuousRange
	switch opts.Bounds {
	case BoundsDynamic:
		yRange = &gochart.ContinuousRange{Min: yMin, Max: yMax}
	case BoundsAuto:
		// The library cannot draw a zero-height range, so a flat series
		// still gets explicit bounds.
		yMin, yMax, _ = YBounds(s.Values, 0)
		if flat(s.Values) {
			yRange = &gochart.ContinuousRange{Min: yMin, Max: yMax}
		}
	}

	style := gochart.Style{
		StrokeColor: mustColor(opts.LineColor),
		StrokeWidth: opts.LineWidth,
		DotColor:    mustColor(opts.PointColor),
		DotWidth:    opts.PointRadius,
	}
	if opts.Fill {
		style.FillColor = mustColor(opts.FillColor)
	}

	yAxis := gochart.YAxis{Name: opts.YAxisTitle}
	if yRange != nil {
		yAxis.Range = yRange
	}

	c := gochart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:  opts.XAxisTitle,
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: 0.5, Max: float64(n) + 0.5},
		},
		YAxis: yAxis,
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    opts.DatasetLabel,
				XValues: xs,
				YValues: ys,
				Style:   style,
			},
		},
	}
	if opts.Legend {
		c.Elements = []gochart.Renderable{gochart.Legend(&c)}
	}

	provider := gochart.PNG
	if opts.Format == SVG {
		provider = gochart.SVG
	}
	var buf bytes.Buffer
	if err := c.Render(provider, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return &rendered{image: buf.Bytes(), yMin: yMin, yMax: yMax}, nil
}

func flat(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
