// Package figure builds and renders the bitonic merge sort comparison chart: one line per
// sort variant, elapsed microseconds against input SIZE.
//
// Build resolves every column before anything is drawn, so a missing column never yields a
// half-drawn chart. Render draws a raster with go-chart (used by the viewer window and the
// HTTP preview); Save and WriteTo export at the fixed 10 x 6 inch size with gonum/plot.
package figure

import (
	"encoding/json"
	"image/color"
	"math"

	"github.com/iafilius/BitonicBenchViewer/src/results"
)

const (
	Title  = "Performance Comparison of Bitonic Merge Sorting"
	XLabel = "SIZE (# of elements)"
	YLabel = "Performance (microseconds)"

	// XColumn is the shared X axis of every series.
	XColumn = results.SizeColumn

	// Figure size in units; one unit is an inch for vector output.
	WidthUnits  = 10.0
	HeightUnits = 6.0
	// PixelsPerUnit scales units to raster pixels.
	PixelsPerUnit = 100
)

// SeriesColumns lists the plotted columns in drawing and legend order.
var SeriesColumns = []string{"Serial", "Parallel CPU", "Parallel Intel GPU", "Parallel Nvidia GPU"}

// palette follows the usual category-10 ordering so lines keep the same color per variant.
var palette = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
}

// SeriesColor returns the line color of the i-th series.
func SeriesColor(i int) color.RGBA { return palette[i%len(palette)] }

// ColumnSource is anything that can hand out named numeric columns; *results.Table is one.
type ColumnSource interface {
	Column(name string) ([]float64, error)
}

// Point is one drawable (x, y) pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is one line: Name plus X and Y in table row order (same length).
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// Len returns the number of rows in the series, drawable or not.
func (s Series) Len() int { return len(s.X) }

// Points returns the drawable pairs in row order. Pairs with a NaN or infinite coordinate
// are left out, so the line joins the neighbouring points.
func (s Series) Points() []Point {
	out := make([]Point, 0, len(s.X))
	for i := range s.X {
		x, y := s.X[i], s.Y[i]
		if !finite(x) || !finite(y) {
			continue
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out
}

func (s Series) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name   string  `json:"name"`
		Rows   int     `json:"rows"`
		Points []Point `json:"points"`
	}{s.Name, s.Len(), s.Points()})
}

// Figure is a fully resolved chart, ready to render.
type Figure struct {
	Title  string   `json:"title"`
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Legend bool     `json:"legend"`
	Series []Series `json:"series"`
	// Source names the table the figure was built from, if known.
	Source string `json:"source,omitempty"`
}

// Build resolves SIZE and every column of SeriesColumns from src, in order. The first
// missing column fails the build with *results.ColumnNotFoundError.
func Build(src ColumnSource) (*Figure, error) {
	return BuildColumns(src, SeriesColumns)
}

// BuildColumns is Build with an explicit series list.
func BuildColumns(src ColumnSource, columns []string) (*Figure, error) {
	xs, err := src.Column(XColumn)
	if err != nil {
		return nil, err
	}
	fig := &Figure{
		Title:  Title,
		XLabel: XLabel,
		YLabel: YLabel,
		Width:  WidthUnits,
		Height: HeightUnits,
		Legend: true,
	}
	if s, ok := src.(interface{ Source() string }); ok {
		fig.Source = s.Source()
	}
	for _, name := range columns {
		ys, err := src.Column(name)
		if err != nil {
			return nil, err
		}
		x := make([]float64, len(xs))
		copy(x, xs)
		fig.Series = append(fig.Series, Series{Name: name, X: x, Y: ys})
	}
	return fig, nil
}

// PixelSize returns the raster size of the figure at PixelsPerUnit.
func (f *Figure) PixelSize() (int, int) {
	return int(math.Round(f.Width * PixelsPerUnit)), int(math.Round(f.Height * PixelsPerUnit))
}

// Rows returns the number of table rows behind the figure.
func (f *Figure) Rows() int {
	if len(f.Series) == 0 {
		return 0
	}
	return f.Series[0].Len()
}

// Extent returns the min/max of drawable X and Y values; ok is false when nothing is drawable.
func (f *Figure) Extent() (minX, maxX, minY, maxY float64, ok bool) {
	minX, minY = math.MaxFloat64, math.MaxFloat64
	maxX, maxY = -math.MaxFloat64, -math.MaxFloat64
	for _, s := range f.Series {
		for _, p := range s.Points() {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
			ok = true
		}
	}
	return
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
