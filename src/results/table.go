// Package results loads the bitonic sort benchmark table (results.csv).
//
// The file is comma separated with a header row naming the columns. Column types are
// inferred from content: a column is numeric when every non-empty cell parses as a number,
// otherwise it is kept as text and only fails when it is asked for as numbers. SIZE must be
// numeric. The benchmark host appends a header plus one row per run, so rows that repeat the
// header are skipped. Empty cells, "NaN"/"NA" and short rows load as NaN (or "" for text) so
// that all columns stay row aligned.
package results

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/iafilius/BitonicBenchViewer/src/logger"
)

// DefaultPath is the results file read when no path is configured.
const DefaultPath = "results.csv"

// SizeColumn is the input-size column every results file must carry.
const SizeColumn = "SIZE"

// Table is the in-memory results table. It is immutable once loaded.
type Table struct {
	source  string
	columns []string
	index   map[string]int
	data    [][]float64 // data[col][row]; NaN throughout for text columns
	cells   [][]string  // cells[col][row], trimmed as read
	bad     map[int]*SchemaError
	rows    int
}

// Load reads the results file at path.
func Load(path string) (*Table, error) {
	defer logger.TimeTrack(time.Now(), "load "+path)
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()
	t, err := Read(f, path)
	if err != nil {
		return nil, err
	}
	logger.Debugf("[results] loaded %s: %d rows, columns=%s", path, t.Len(), strings.Join(t.Columns(), "|"))
	return t, nil
}

// Read parses a results table from r. name is used in errors and as the table source.
func Read(r io.Reader, name string) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &FileAccessError{Path: name, Err: err}
	}
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Path: name, Reason: "empty file, expected a header row"}
	}
	if err != nil {
		return nil, &SchemaError{Path: name, Line: 1, Reason: "unreadable header", Err: err}
	}

	t := &Table{source: name, index: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			return nil, &SchemaError{Path: name, Line: 1, Reason: "empty column name at position " + strconv.Itoa(i+1)}
		}
		if _, dup := t.index[h]; dup {
			return nil, &SchemaError{Path: name, Line: 1, Column: h, Reason: "duplicate column name"}
		}
		t.index[h] = i
		t.columns = append(t.columns, h)
	}
	if _, ok := t.index[SizeColumn]; !ok {
		return nil, &SchemaError{Path: name, Line: 1, Column: SizeColumn, Reason: "required column missing"}
	}
	t.data = make([][]float64, len(t.columns))
	t.cells = make([][]string, len(t.columns))
	t.bad = make(map[int]*SchemaError)

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			se := &SchemaError{Path: name, Reason: "malformed row", Err: err}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				se.Line = pe.Line
			}
			return nil, se
		}
		line, _ := cr.FieldPos(0)
		if isHeaderRepeat(rec, t.columns) {
			logger.Debugf("[results] %s line %d: skipping repeated header", name, line)
			continue
		}
		if len(rec) > len(t.columns) {
			return nil, &SchemaError{Path: name, Line: line, Reason: "row has " + strconv.Itoa(len(rec)) + " fields, header has " + strconv.Itoa(len(t.columns))}
		}
		for c := range t.columns {
			cell := ""
			if c < len(rec) {
				cell = strings.TrimSpace(rec[c])
			}
			v, err := parseCell(cell)
			if err != nil {
				v = math.NaN()
				if _, seen := t.bad[c]; !seen {
					t.bad[c] = &SchemaError{Path: name, Line: line, Column: t.columns[c], Reason: "not a number: " + strconv.Quote(cell)}
				}
			}
			t.data[c] = append(t.data[c], v)
			t.cells[c] = append(t.cells[c], cell)
		}
		t.rows++
	}
	for c, se := range t.bad {
		for r := range t.data[c] {
			t.data[c][r] = math.NaN()
		}
		if t.columns[c] == SizeColumn {
			return nil, se
		}
		logger.Debugf("[results] %s: column %q is text (%s)", name, t.columns[c], se.Reason)
	}
	return t, nil
}

func isHeaderRepeat(rec, columns []string) bool {
	if len(rec) != len(columns) {
		return false
	}
	for i := range rec {
		if strings.TrimSpace(rec[i]) != columns[i] {
			return false
		}
	}
	return true
}

// parseCell converts one cell; blanks and NaN spellings become NaN.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "na", "n/a":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// Source returns the path or name the table was read from.
func (t *Table) Source() string { return t.source }

// Len returns the number of data rows.
func (t *Table) Len() int { return t.rows }

// Columns returns the column names in file order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether the table carries the named column.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Numeric reports whether the named column exists and every non-empty cell is a number.
func (t *Table) Numeric(name string) bool {
	i, ok := t.index[name]
	if !ok {
		return false
	}
	_, isText := t.bad[i]
	return !isText
}

// Column returns a copy of the named column in row order. A text column fails with the
// *SchemaError of its first non-numeric cell.
func (t *Table) Column(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &ColumnNotFoundError{Column: name, Available: t.Columns()}
	}
	if se, isText := t.bad[i]; isText {
		return nil, se
	}
	out := make([]float64, t.rows)
	copy(out, t.data[i])
	return out, nil
}

// Cell returns the text of row i in the named column as read, or "" when out of range.
func (t *Table) Cell(i int, name string) string {
	c, ok := t.index[name]
	if !ok || i < 0 || i >= t.rows {
		return ""
	}
	return t.cells[c][i]
}

// Row returns the values of row i keyed by column name. Text columns read as NaN.
func (t *Table) Row(i int) map[string]float64 {
	if i < 0 || i >= t.rows {
		return nil
	}
	out := make(map[string]float64, len(t.columns))
	for c, name := range t.columns {
		out[name] = t.data[c][i]
	}
	return out
}

// SortedBySize returns a copy of the table with rows ordered by ascending SIZE.
// NaN sizes sort last; ties keep file order.
func (t *Table) SortedBySize() *Table {
	sizes := t.data[t.index[SizeColumn]]
	order := make([]int, t.rows)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		x, y := sizes[order[a]], sizes[order[b]]
		if math.IsNaN(y) {
			return !math.IsNaN(x)
		}
		return x < y
	})
	out := &Table{source: t.source, columns: t.Columns(), index: t.index, bad: t.bad, rows: t.rows}
	out.data = make([][]float64, len(t.data))
	out.cells = make([][]string, len(t.cells))
	for c := range t.data {
		col := make([]float64, t.rows)
		cells := make([]string, t.rows)
		for i, r := range order {
			col[i] = t.data[c][r]
			cells[i] = t.cells[c][r]
		}
		out.data[c] = col
		out.cells[c] = cells
	}
	return out
}
