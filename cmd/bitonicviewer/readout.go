package main

import (
	"fmt"
	"math"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/BitonicBenchViewer/cmd/bitonicviewer/uihelpers"
	"github.com/iafilius/BitonicBenchViewer/src/figure"
	"github.com/iafilius/BitonicBenchViewer/src/results"
)

// Approximate distance in image pixels from the image edges to the plot area. go-chart puts
// the Y axis ticks and name on the right.
const (
	axisLeftGutterPx  = float32(24)
	axisRightGutterPx = float32(88)
)

// imageXToValue maps an x position inside the chart image to a SIZE value on [x0,x1].
func imageXToValue(pxImg, imgW float32, x0, x1 float64) float64 {
	plotW := imgW - axisLeftGutterPx - axisRightGutterPx
	if plotW < 1 {
		plotW = imgW
	}
	frac := float64((pxImg - axisLeftGutterPx) / plotW)
	frac = math.Max(0, math.Min(1, frac))
	return x0 + frac*(x1-x0)
}

// nearestIndex returns the row whose x is closest to v, skipping NaN; -1 when there is none.
// Ties keep the earlier row.
func nearestIndex(xs []float64, v float64) int {
	best := -1
	bestD := math.Inf(1)
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if d := math.Abs(x - v); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// formatReadout describes one table row: SIZE, each series timing and its speedup over the
// first series (Serial).
func formatReadout(fig *figure.Figure, row int) string {
	if fig == nil || len(fig.Series) == 0 || row < 0 || row >= fig.Rows() {
		return ""
	}
	parts := []string{fmt.Sprintf("%s %s", results.SizeColumn, formatValue(fig.Series[0].X[row]))}
	base := fig.Series[0].Y[row]
	for i, s := range fig.Series {
		v := s.Y[row]
		p := fmt.Sprintf("%s %s µs", s.Name, formatValue(v))
		if i > 0 && !math.IsNaN(v) && !math.IsNaN(base) && v != 0 {
			p += fmt.Sprintf(" (%.1fx)", base/v)
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " | ")
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// readoutOverlay sits on top of the chart image and reports the row under the pointer.
type readoutOverlay struct {
	widget.BaseWidget
	state   *uiState
	lastRow int
}

func newReadoutOverlay(state *uiState) *readoutOverlay {
	o := &readoutOverlay{state: state, lastRow: -1}
	o.ExtendBaseWidget(o)
	return o
}

func (o *readoutOverlay) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(&fyne.Container{})
}

// rowAt maps a pointer position inside the overlay to a table row.
func (o *readoutOverlay) rowAt(pos fyne.Position) int {
	st := o.state
	if st == nil || st.fig == nil || st.chartImg == nil || st.chartImg.Image == nil {
		return -1
	}
	b := st.chartImg.Image.Bounds()
	imgW, imgH := float32(b.Dx()), float32(b.Dy())
	size := o.Size()
	drawX, _, _, _, scale := uihelpers.ContainRect(imgW, imgH, size.Width, size.Height)
	if scale == 0 {
		return -1
	}
	x0, x1, _, _, ok := figure.AxisRanges(st.fig)
	if !ok {
		return -1
	}
	v := imageXToValue((pos.X-drawX)/scale, imgW, x0, x1)
	return nearestIndex(st.fig.Series[0].X, v)
}

func (o *readoutOverlay) MouseMoved(ev *desktop.MouseEvent) {
	row := o.rowAt(ev.Position)
	if row == o.lastRow {
		return
	}
	o.lastRow = row
	o.state.showReadout(row)
}

func (o *readoutOverlay) MouseIn(ev *desktop.MouseEvent) {
	o.MouseMoved(ev)
}

func (o *readoutOverlay) MouseOut() {
	o.lastRow = -1
	o.state.showReadout(-1)
}
