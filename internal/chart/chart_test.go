package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCanvas counts what is currently painted on it.
type memCanvas struct {
	mu       sync.Mutex
	attached int
	paints   int
	last     []byte
	failNext error
}

func (c *memCanvas) Paint(image []byte, _ Format) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failNext != nil {
		err := c.failNext
		c.failNext = nil
		return err
	}
	c.attached++
	c.paints++
	c.last = image
	return nil
}

func (c *memCanvas) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attached--
	c.last = nil
	return nil
}

func (c *memCanvas) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attached
}

var pngMagic = []byte("\x89PNG")

func TestYBounds(t *testing.T) {
	lo, hi, err := YBounds([]float64{80, 78}, 2)
	require.NoError(t, err)
	assert.Equal(t, 76.0, lo)
	assert.Equal(t, 82.0, hi)

	lo, hi, err = YBounds([]float64{70}, 0)
	require.NoError(t, err)
	assert.Less(t, lo, hi)

	_, _, err = YBounds(nil, 2)
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestSeriesValidate(t *testing.T) {
	assert.ErrorIs(t, Series{}.Validate(), ErrEmptySeries)
	assert.ErrorIs(t, Series{Labels: []string{"Jan"}, Values: []float64{1, 2}}.Validate(), ErrLengthMismatch)
	assert.NoError(t, Series{Labels: []string{"Jan"}, Values: []float64{1}}.Validate())
}

func TestRedrawExample(t *testing.T) {
	canvas := &memCanvas{}
	s, err := NewSession(canvas, DefaultOptions(), nil)
	require.NoError(t, err)

	c, err := s.Redraw(Series{Labels: []string{"Jan", "Feb"}, Values: []float64{80, 78}})
	require.NoError(t, err)

	assert.Equal(t, 2, c.Points())
	lo, hi := c.YRange()
	assert.LessOrEqual(t, lo, 76.0)
	assert.GreaterOrEqual(t, hi, 82.0)
	assert.True(t, bytes.HasPrefix(c.Image(), pngMagic))
	assert.Equal(t, PNG, c.Format())
}

func TestRedrawSinglePoint(t *testing.T) {
	canvas := &memCanvas{}
	s, err := NewSession(canvas, DefaultOptions(), nil)
	require.NoError(t, err)

	c, err := s.Redraw(Series{Labels: []string{"2026-03-14"}, Values: []float64{70}})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Points())
	lo, hi := c.YRange()
	assert.Equal(t, 68.0, lo)
	assert.Equal(t, 72.0, hi)
	assert.True(t, bytes.HasPrefix(c.Image(), pngMagic))
	assert.Equal(t, 1, s.Live())
}

func TestSinglePointAutoBounds(t *testing.T) {
	opts := DefaultOptions()
	opts.Bounds = BoundsAuto
	opts.Format = SVG
	s, err := NewSession(&memCanvas{}, opts, nil)
	require.NoError(t, err)

	c, err := s.Redraw(Series{Labels: []string{"Mon"}, Values: []float64{81.5}})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Points())
	assert.Contains(t, string(c.Image()), "<svg")
}

func TestOldChartReadableDuringRedraw(t *testing.T) {
	s, err := NewSession(&memCanvas{}, DefaultOptions(), nil)
	require.NoError(t, err)
	series := Series{Labels: []string{"a", "b"}, Values: []float64{70, 71}}
	first, err := s.Redraw(series)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 3; i++ {
			_, err := s.Redraw(series)
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = first.Destroyed()
			_ = first.Image()
		}
	}()
	wg.Wait()

	assert.True(t, first.Destroyed())
	assert.Nil(t, first.Image())
}

func TestRedrawTwiceLeavesOneLiveChart(t *testing.T) {
	canvas := &memCanvas{}
	s, err := NewSession(canvas, DefaultOptions(), nil)
	require.NoError(t, err)

	series := Series{Labels: []string{"2026-01-01", "2026-01-02", "2026-01-03"}, Values: []float64{82, 81.4, 80.9}}
	first, err := s.Redraw(series)
	require.NoError(t, err)
	second, err := s.Redraw(series)
	require.NoError(t, err)

	assert.True(t, first.Destroyed())
	assert.False(t, second.Destroyed())
	assert.Equal(t, 2, second.ID())
	assert.Equal(t, 1, s.Live())
	assert.Equal(t, 1, canvas.count())
	assert.Same(t, second, s.Current())
}

func TestConcurrentRedrawsKeepOneLiveChart(t *testing.T) {
	canvas := &memCanvas{}
	s, err := NewSession(canvas, DefaultOptions(), nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Redraw(Series{Labels: []string{"a", "b"}, Values: []float64{70, 70 + float64(i)}})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, s.Live())
	assert.Equal(t, 1, canvas.count())
	assert.Equal(t, 8, canvas.paints)
}

func TestInvalidSeriesKeepsPreviousChart(t *testing.T) {
	canvas := &memCanvas{}
	s, err := NewSession(canvas, DefaultOptions(), nil)
	require.NoError(t, err)

	prev, err := s.Redraw(Series{Labels: []string{"Jan"}, Values: []float64{80}})
	require.NoError(t, err)

	_, err = s.Redraw(Series{})
	assert.ErrorIs(t, err, ErrEmptySeries)
	_, err = s.Redraw(Series{Labels: []string{"Jan", "Feb"}, Values: []float64{80}})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	assert.Same(t, prev, s.Current())
	assert.False(t, prev.Destroyed())
	assert.Equal(t, 1, canvas.count())
}

func TestPaintFailureLeavesNoLiveChart(t *testing.T) {
	canvas := &memCanvas{}
	s, err := NewSession(canvas, DefaultOptions(), nil)
	require.NoError(t, err)
	_, err = s.Redraw(Series{Labels: []string{"Jan"}, Values: []float64{80}})
	require.NoError(t, err)

	canvas.failNext = errors.New("canvas gone")
	_, err = s.Redraw(Series{Labels: []string{"Feb"}, Values: []float64{79}})
	assert.Error(t, err)
	assert.Equal(t, 0, s.Live())
	assert.Equal(t, 0, canvas.count())
}

func TestCloseDestroysLiveChart(t *testing.T) {
	canvas := &memCanvas{}
	s, err := NewSession(canvas, DefaultOptions(), nil)
	require.NoError(t, err)
	c, err := s.Redraw(Series{Labels: []string{"Jan"}, Values: []float64{80}})
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.True(t, c.Destroyed())
	assert.Nil(t, c.Image())
	assert.Equal(t, 0, s.Live())
	require.NoError(t, s.Close())
}

func TestNewSessionRequiresCanvas(t *testing.T) {
	_, err := NewSession(nil, DefaultOptions(), nil)
	assert.ErrorIs(t, err, ErrNoCanvas)
}

func TestAutoBoundsAndSVG(t *testing.T) {
	opts := DefaultOptions()
	opts.Bounds = BoundsAuto
	opts.Format = SVG
	opts.Legend = false
	opts.Fill = false

	s, err := NewSession(&memCanvas{}, opts, nil)
	require.NoError(t, err)

	c, err := s.Redraw(Series{Labels: []string{"Jan", "Feb"}, Values: []float64{75, 75}})
	require.NoError(t, err)
	assert.Contains(t, string(c.Image()), "<svg")
	lo, hi := c.YRange()
	assert.Less(t, lo, 75.0)
	assert.Greater(t, hi, 75.0)

	// A non-flat series reports its own extent without padding.
	c, err = s.Redraw(Series{Labels: []string{"Jan", "Feb"}, Values: []float64{74, 77}})
	require.NoError(t, err)
	lo, hi = c.YRange()
	assert.Equal(t, 74.0, lo)
	assert.Equal(t, 77.0, hi)
}

func TestOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.Validate())

	bad := opts
	bad.Bounds = "static"
	assert.Error(t, bad.Validate())

	bad = opts
	bad.Format = "gif"
	assert.Error(t, bad.Validate())

	bad = opts
	bad.LineColor = "teal"
	assert.Error(t, bad.Validate())

	bad = opts
	bad.Padding = -1
	assert.Error(t, bad.Validate())

	bad = opts
	bad.Width = 0
	assert.Error(t, bad.Validate())
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#4bc0c033")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x4b), c.R)
	assert.Equal(t, uint8(0xc0), c.G)
	assert.Equal(t, uint8(0xc0), c.B)
	assert.Equal(t, uint8(0x33), c.A)

	c, err = parseColor("008000")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x80), c.G)
	assert.Equal(t, uint8(0xff), c.A)
}

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)

	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x_axis_title: Timeline\npadding: 3.5\nformat: svg\n"), 0o644))
	opts, err = LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "Timeline", opts.XAxisTitle)
	assert.Equal(t, 3.5, opts.Padding)
	assert.Equal(t, SVG, opts.Format)
	assert.Equal(t, "Weight (kg)", opts.YAxisTitle)

	require.NoError(t, os.WriteFile(path, []byte("bounds: fixed\n"), 0o644))
	_, err = LoadOptions(path)
	assert.Error(t, err)
}
