package uihelpers

import (
	"path/filepath"
)

// ChartAspect is height/width of the 10 x 6 figure.
const ChartAspect = 0.6

// ComputeChartDimensions applies width/height clamp rules used for the chart image.
// Input: desired raw width (e.g., canvas width). Returns clamped width & height keeping 10:6.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 600 {
		w = 600
	}
	if w > 2400 {
		w = 2400
	}
	return w, int(float32(w) * ChartAspect)
}

// ComputeTableColumnWidths returns column widths for the results table given a window width
// and the number of columns. SIZE (column 0) stays narrow; timing columns share the rest.
func ComputeTableColumnWidths(winW float32, cols int) []float32 {
	if cols <= 0 {
		return nil
	}
	out := make([]float32, cols)
	first := float32(110)
	if winW < 520 {
		first = 80
	}
	out[0] = first
	if cols == 1 {
		return out
	}
	rest := (winW - first - 24) / float32(cols-1)
	if rest < 90 {
		rest = 90
	}
	if rest > 220 {
		rest = 220
	}
	for i := 1; i < cols; i++ {
		out[i] = rest
	}
	return out
}

// ContainRect returns where an image of imgW x imgH lands inside a view of viewW x viewH when
// scaled to fit (fyne's ImageFillContain): top-left offset, drawn size, and scale.
func ContainRect(imgW, imgH, viewW, viewH float32) (x, y, w, h, scale float32) {
	if imgW <= 0 || imgH <= 0 || viewW <= 0 || viewH <= 0 {
		return 0, 0, 0, 0, 0
	}
	sx := viewW / imgW
	sy := viewH / imgH
	scale = sx
	if sy < sx {
		scale = sy
	}
	w = imgW * scale
	h = imgH * scale
	return (viewW - w) / 2, (viewH - h) / 2, w, h, scale
}

// TruncatePath shortens p to about n characters, keeping the file name.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
