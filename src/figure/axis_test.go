package figure

import (
	"math"
	"testing"
)

func TestYAxisBounds_AnchorsZero(t *testing.T) {
	minY, maxY := yAxisBounds(0, 1000)
	if minY != 0 {
		t.Fatalf("expected min anchored at zero, got %.2f", minY)
	}
	if maxY <= 1000 {
		t.Fatalf("expected headroom above max, got %.2f", maxY)
	}
	if _, m := yAxisBounds(0, 0); m <= 0 {
		t.Fatalf("expected positive max for empty data, got %.2f", m)
	}
}

func TestYAxisBounds_NegativeValuesNotClipped(t *testing.T) {
	lo, hi := yAxisBounds(-50, 1000)
	if lo > -50 || hi < 1000 {
		t.Fatalf("bounds [%.2f,%.2f] do not cover data [-50,1000]", lo, hi)
	}
	lo, hi = yAxisBounds(-300, -20)
	if lo > -300 || hi != 0 {
		t.Fatalf("all-negative data should span [<=-300, 0], got [%.2f,%.2f]", lo, hi)
	}
	if lo, _ := yAxisBounds(5, 1000); lo != 0 {
		t.Fatalf("positive data still anchors at zero, got %.2f", lo)
	}
}

func TestXAxisBounds_NoNegativeSizes(t *testing.T) {
	a, b := xAxisBounds(100, 200)
	if a < 0 {
		t.Fatalf("size axis went negative: %.2f", a)
	}
	if a > 100 || b < 200 {
		t.Fatalf("bounds [%.2f,%.2f] do not cover data [100,200]", a, b)
	}
	// single size still yields a non-empty range
	a, b = xAxisBounds(1024, 1024)
	if !(b > a) {
		t.Fatalf("expected non-empty range for single size, got [%.2f,%.2f]", a, b)
	}
}

func TestNiceTicks_InsideRangeAndIncreasing(t *testing.T) {
	cases := []struct {
		min, max float64
		n        int
	}{
		{0, 1100, 6},
		{0, 1, 6},
		{0, 8_500_000, 6},
		{1000, 1_100_000, 8},
	}
	for _, c := range cases {
		ticks := niceTicks(c.min, c.max, c.n)
		if len(ticks) < 2 {
			t.Fatalf("expected at least 2 ticks for [%v,%v], got %d", c.min, c.max, len(ticks))
		}
		if len(ticks) > c.n+3 {
			t.Fatalf("too many ticks for [%v,%v]: %d", c.min, c.max, len(ticks))
		}
		for i, tk := range ticks {
			if tk.Value < c.min-1e-6 || tk.Value > c.max+1e-6 {
				t.Fatalf("tick %v outside [%v,%v]", tk.Value, c.min, c.max)
			}
			if i > 0 && !(tk.Value > ticks[i-1].Value) {
				t.Fatalf("ticks not increasing at %d: %v <= %v", i, tk.Value, ticks[i-1].Value)
			}
			if tk.Label == "" {
				t.Fatalf("empty label for tick %v", tk.Value)
			}
		}
	}
	if niceTicks(0, 1, 1) != nil || niceTicks(math.NaN(), 1, 5) != nil {
		t.Fatalf("expected nil ticks for degenerate input")
	}
}

func TestFormatTick(t *testing.T) {
	cases := map[float64]string{
		0:       "0",
		1048576: "1048576",
		250:     "250",
		12.5:    "12.5",
		2.5:     "2.50",
		0.25:    "0.250",
		0.005:   "0.0050",
		-150:    "-150",
	}
	for in, want := range cases {
		if got := formatTick(in); got != want {
			t.Fatalf("formatTick(%v) = %q want %q", in, got, want)
		}
	}
}

func TestSeriesColorCycles(t *testing.T) {
	if SeriesColor(0) != SeriesColor(len(palette)) {
		t.Fatalf("palette should cycle")
	}
	if SeriesColor(0) == SeriesColor(1) {
		t.Fatalf("adjacent series share a color")
	}
}
