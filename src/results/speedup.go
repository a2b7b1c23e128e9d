package results

import (
	"math"
)

// BaselineColumn is the column parallel variants are compared against.
const BaselineColumn = "Serial"

// SpeedupRow holds Serial/variant ratios for one input size. A ratio above 1 means the
// variant was faster than the serial sort. Missing or zero timings yield NaN.
type SpeedupRow struct {
	Size    float64
	Serial  float64
	Speedup map[string]float64
}

// Speedups computes per-row speedups of each variant column over Serial, rows ordered by SIZE.
func Speedups(t *Table, variants []string) ([]SpeedupRow, error) {
	st := t.SortedBySize()
	sizes, err := st.Column(SizeColumn)
	if err != nil {
		return nil, err
	}
	serial, err := st.Column(BaselineColumn)
	if err != nil {
		return nil, err
	}
	cols := make([][]float64, len(variants))
	for i, v := range variants {
		if cols[i], err = st.Column(v); err != nil {
			return nil, err
		}
	}
	out := make([]SpeedupRow, st.Len())
	for r := range out {
		row := SpeedupRow{Size: sizes[r], Serial: serial[r], Speedup: make(map[string]float64, len(variants))}
		for i, v := range variants {
			row.Speedup[v] = ratio(serial[r], cols[i][r])
		}
		out[r] = row
	}
	return out, nil
}

func ratio(base, v float64) float64 {
	if math.IsNaN(base) || math.IsNaN(v) || v == 0 {
		return math.NaN()
	}
	return base / v
}

// BestVariant returns the variant with the highest speedup in row, or "" when none is known.
func BestVariant(row SpeedupRow, variants []string) (string, float64) {
	best, bestV := "", math.NaN()
	for _, v := range variants {
		s, ok := row.Speedup[v]
		if !ok || math.IsNaN(s) {
			continue
		}
		if best == "" || s > bestV {
			best, bestV = v, s
		}
	}
	return best, bestV
}
