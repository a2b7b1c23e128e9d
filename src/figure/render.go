package figure

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/BitonicBenchViewer/src/logger"
)

// ErrNoData is returned by the chart builders when no series has a drawable point.
var ErrNoData = errors.New("figure has no drawable points")

// Options tunes raster rendering. Zero values mean the figure's own pixel size, light theme.
type Options struct {
	Width  int
	Height int
	Dark   bool
	// Caption, when set, is stamped at the bottom-right of PNG/image output.
	Caption string
}

func (o Options) size(f *Figure) (int, int) {
	w, h := f.PixelSize()
	if o.Width > 0 {
		w = o.Width
	}
	if o.Height > 0 {
		h = o.Height
	}
	return w, h
}

type theme struct {
	background, canvas, text, axis, grid drawing.Color
}

var (
	lightTheme = theme{
		background: drawing.ColorWhite,
		canvas:     drawing.ColorWhite,
		text:       drawing.Color{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
		axis:       drawing.Color{R: 0x55, G: 0x55, B: 0x55, A: 0xff},
		grid:       drawing.Color{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff},
	}
	darkTheme = theme{
		background: drawing.Color{R: 18, G: 18, B: 18, A: 0xff},
		canvas:     drawing.Color{R: 24, G: 24, B: 24, A: 0xff},
		text:       drawing.Color{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
		axis:       drawing.Color{R: 0x99, G: 0x99, B: 0x99, A: 0xff},
		grid:       drawing.Color{R: 0x3a, G: 0x3a, B: 0x3a, A: 0xff},
	}
)

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// lineStyle draws a solid line with small dots at the measured sizes.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}

// buildChart converts the figure into a go-chart definition sized w x h.
func buildChart(f *Figure, w, h int, dark bool) (*chart.Chart, error) {
	x0, x1, y0, y1, ok := AxisRanges(f)
	if !ok {
		return nil, ErrNoData
	}
	th := lightTheme
	if dark {
		th = darkTheme
	}

	series := make([]chart.Series, 0, len(f.Series))
	for i, s := range f.Series {
		pts := s.Points()
		if len(pts) == 0 {
			logger.Warnf("[figure] series %q has no drawable points; left out of the chart", s.Name)
			continue
		}
		xs := make([]float64, len(pts))
		ys := make([]float64, len(pts))
		for j, p := range pts {
			xs[j], ys[j] = p.X, p.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(toDrawing(SeriesColor(i))),
		})
	}

	axisStyle := chart.Style{FontColor: th.text, StrokeColor: th.axis}
	gridStyle := chart.Style{StrokeColor: th.grid, StrokeWidth: 1}

	ch := &chart.Chart{
		Title:      f.Title,
		TitleStyle: chart.Style{FontColor: th.text},
		Width:      w,
		Height:     h,
		Background: chart.Style{
			FillColor: th.background,
			Padding:   chart.Box{Top: 24, Left: 16, Right: 20, Bottom: 16},
		},
		Canvas: chart.Style{FillColor: th.canvas},
		XAxis: chart.XAxis{
			Name:           f.XLabel,
			NameStyle:      chart.Style{FontColor: th.text},
			Style:          axisStyle,
			Range:          &chart.ContinuousRange{Min: x0, Max: x1},
			Ticks:          niceTicks(x0, x1, 8),
			GridMajorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           f.YLabel,
			NameStyle:      chart.Style{FontColor: th.text},
			Style:          axisStyle,
			Range:          &chart.ContinuousRange{Min: y0, Max: y1},
			Ticks:          niceTicks(y0, y1, 6),
			GridMajorStyle: gridStyle,
		},
		Series: series,
	}
	if f.Legend {
		attachLegend(ch, th)
	}
	return ch, nil
}

// attachLegend lays the series legend out as a thin strip along the top of the plot area.
func attachLegend(ch *chart.Chart, th theme) {
	ch.Elements = append(ch.Elements, chart.LegendThin(ch, chart.Style{
		FillColor:   th.canvas,
		FontColor:   th.text,
		StrokeColor: th.axis,
	}))
}

// AxisRanges returns the X and Y axis ranges the raster chart uses for f.
func AxisRanges(f *Figure) (x0, x1, y0, y1 float64, ok bool) {
	minX, maxX, minY, maxY, ok := f.Extent()
	if !ok {
		return 0, 0, 0, 0, false
	}
	x0, x1 = xAxisBounds(minX, maxX)
	y0, y1 = yAxisBounds(minY, maxY)
	return x0, x1, y0, y1, true
}

// Render draws the figure into an image. A figure with no drawable point renders as a blank
// canvas with a "no data" caption rather than failing.
func Render(f *Figure, opts Options) (image.Image, error) {
	w, h := opts.size(f)
	ch, err := buildChart(f, w, h, opts.Dark)
	if errors.Is(err, ErrNoData) {
		bg := lightTheme.background
		if opts.Dark {
			bg = darkTheme.background
		}
		return Caption(blank(w, h, bg), "No data points in "+sourceName(f), opts.Dark), nil
	}
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	if opts.Caption != "" {
		img = Caption(img, opts.Caption, opts.Dark)
	}
	return img, nil
}

// WritePNG renders the figure and encodes it as PNG to w.
func WritePNG(w io.Writer, f *Figure, opts Options) error {
	img, err := Render(f, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WriteSVG renders the figure as SVG with go-chart. Captions are raster-only and ignored here.
func WriteSVG(w io.Writer, f *Figure, opts Options) error {
	width, height := opts.size(f)
	ch, err := buildChart(f, width, height, opts.Dark)
	if err != nil {
		return err
	}
	if err := ch.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	return nil
}

func blank(w, h int, bg drawing.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	c := color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: bg.A}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func sourceName(f *Figure) string {
	if f.Source == "" {
		return "table"
	}
	return f.Source
}
