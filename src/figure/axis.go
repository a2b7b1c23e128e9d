package figure

import (
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// niceAxisBounds expands [min,max] by a 5% margin and rounds outwards to a multiple of the
// tick step that n ticks would use, so the range ends on a labelled value.
func niceAxisBounds(min, max float64, n int) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	step := niceStep(span+2*pad, n)
	return math.Floor((min-pad)/step) * step, math.Ceil((max+pad)/step) * step
}

// xAxisBounds pads the SIZE axis; it never goes below zero for non-negative sizes.
func xAxisBounds(min, max float64) (float64, float64) {
	a, b := niceAxisBounds(min, max, 8)
	if min >= 0 && a < 0 {
		a = 0
	}
	return a, b
}

// yAxisBounds anchors timings at zero with a nice rounded max. Negative values extend the
// axis below zero instead of being clipped.
func yAxisBounds(minY, maxY float64) (float64, float64) {
	lo, hi := math.Min(0, minY), math.Max(0, maxY)
	if hi == lo {
		hi = lo + 1
	}
	step := niceStep((hi-lo)*1.05, 6)
	y0 := math.Floor(lo*1.05/step) * step
	y1 := math.Ceil(hi*1.05/step) * step
	if y0 == 0 {
		y0 = 0 // no -0 in tick labels
	}
	return y0, y1
}

// niceStep picks a 1, 2, 2.5, 5 x 10^k step yielding about n ticks over span.
func niceStep(span float64, n int) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	best := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			best = step
		}
	}
	return best
}

// niceTicks generates about n ticks covering [min, max].
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	step := niceStep(max-min, n)
	start := math.Ceil(min/step-1e-9) * step
	var ticks []chart.Tick
	for v := start; v <= max+step*1e-6; v += step {
		v = round6(v)
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v)})
		if len(ticks) > n+2 {
			break
		}
	}
	return ticks
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// formatTick keeps large values integral and small ones short.
func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}
