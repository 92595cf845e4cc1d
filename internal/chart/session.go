package chart

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"recipebook-tracker/internal/logging"
)

// Canvas is the surface a chart is painted on.
type Canvas interface {
	Paint(image []byte, format Format) error
	Clear() error
}

// Chart is one drawn chart bound to a canvas. Destroy releases the canvas.
type Chart struct {
	mu        *sync.Mutex
	id        int
	canvas    Canvas
	format    Format
	image     []byte
	points    int
	yMin      float64
	yMax      float64
	destroyed bool
}

// ID numbers charts in the order their session created them, starting at 1.
func (c *Chart) ID() int { return c.id }

// Points is the number of plotted points.
func (c *Chart) Points() int { return c.points }

// YRange is the y-axis domain the chart was drawn with. Under BoundsAuto it
// is the data's extent; go-chart may draw a wider range around it.
func (c *Chart) YRange() (lo, hi float64) { return c.yMin, c.yMax }

// Image returns the encoded image, or nil once the chart is destroyed.
func (c *Chart) Image() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.image
}

// Format is the image encoding.
func (c *Chart) Format() Format { return c.format }

// Destroyed reports whether the chart has been destroyed.
func (c *Chart) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// destroy must be called with c.mu held.
func (c *Chart) destroy() error {
	if c.destroyed {
		return nil
	}
	c.destroyed = true
	c.image = nil
	return c.canvas.Clear()
}

// Session owns the single live chart on a canvas. Redraw destroys the
// previous chart before binding the new one, so at most one is live.
type Session struct {
	mu      sync.Mutex
	canvas  Canvas
	opts    Options
	log     *zap.Logger
	live    *Chart
	created int
}

// NewSession binds a session to canvas.
func NewSession(canvas Canvas, opts Options, log *zap.Logger) (*Session, error) {
	if canvas == nil {
		return nil, ErrNoCanvas
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chart options: %w", err)
	}
	return &Session{canvas: canvas, opts: opts, log: logging.OrNop(log)}, nil
}

// Redraw replaces the live chart with one drawn from series. An invalid series
// or a render failure leaves the previous chart in place.
func (s *Session) Redraw(series Series) (*Chart, error) {
	out, err := render(series, s.opts)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live != nil {
		if err := s.live.destroy(); err != nil {
			s.log.Warn("clear canvas", zap.Int("chart", s.live.id), zap.Error(err))
		}
		s.live = nil
	}

	s.created++
	c := &Chart{
		mu:     &s.mu,
		id:     s.created,
		canvas: s.canvas,
		format: s.opts.Format,
		image:  out.image,
		points: series.Len(),
		yMin:   out.yMin,
		yMax:   out.yMax,
	}
	if err := s.canvas.Paint(c.image, c.format); err != nil {
		return nil, fmt.Errorf("paint chart: %w", err)
	}
	s.live = c
	s.log.Debug("chart drawn", zap.Int("chart", c.id), zap.Int("points", c.points),
		zap.Float64("y_min", c.yMin), zap.Float64("y_max", c.yMax))
	return c, nil
}

// Current returns the live chart, or nil.
func (s *Session) Current() *Chart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Live returns the number of live charts: 0 or 1.
func (s *Session) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return 0
	}
	return 1
}

// Close destroys the live chart, if any.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return nil
	}
	err := s.live.destroy()
	s.live = nil
	return err
}
