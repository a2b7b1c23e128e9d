package figure

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Formats lists the export formats understood by Save and WriteTo.
var Formats = []string{"png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff"}

// FormatFromPath returns the lower-case extension of path without the dot.
func FormatFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// SupportedFormat reports whether format can be exported.
func SupportedFormat(format string) bool {
	format = strings.ToLower(format)
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// newPlot lays the figure out on a gonum plot with the same labels, colors and ordering
// as the raster renderer.
func newPlot(f *Figure) (*plot.Plot, error) {
	_, _, minY, maxY, ok := f.Extent()
	if !ok {
		return nil, ErrNoData
	}
	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = f.XLabel
	p.Y.Label.Text = f.YLabel
	p.Y.Min = math.Min(0, minY)
	p.Y.Max = math.Max(0, maxY)
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	for i, s := range f.Series {
		pts := s.Points()
		if len(pts) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(pts))
		for j, pt := range pts {
			xys[j].X, xys[j].Y = pt.X, pt.Y
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.Color = SeriesColor(i)
		line.Width = vg.Points(1.5)
		points.Color = SeriesColor(i)
		points.Radius = vg.Points(1.5)
		p.Add(line, points)
		if f.Legend {
			p.Legend.Add(s.Name, line)
		}
	}
	return p, nil
}

func (f *Figure) inches() (vg.Length, vg.Length) {
	return vg.Length(f.Width) * vg.Inch, vg.Length(f.Height) * vg.Inch
}

// Save exports the figure to path at its size in inches. The format follows the extension.
func Save(f *Figure, path string) error {
	format := FormatFromPath(path)
	if !SupportedFormat(format) {
		return fmt.Errorf("unsupported export format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	p, err := newPlot(f)
	if err != nil {
		return err
	}
	w, h := f.inches()
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// WriteTo exports the figure in format to w.
func WriteTo(w io.Writer, f *Figure, format string) error {
	if !SupportedFormat(format) {
		return fmt.Errorf("unsupported export format %q", format)
	}
	p, err := newPlot(f)
	if err != nil {
		return err
	}
	wd, ht := f.inches()
	wt, err := p.WriterTo(wd, ht, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	_, err = wt.WriteTo(w)
	return err
}
