// bitonicreader prints the benchmark table and the speedup of each parallel variant over
// the serial sort, without any UI.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/iafilius/BitonicBenchViewer/src/figure"
	"github.com/iafilius/BitonicBenchViewer/src/logger"
	"github.com/iafilius/BitonicBenchViewer/src/results"
)

func main() {
	var file, level string
	flag.StringVar(&file, "file", results.DefaultPath, "Path to results.csv")
	flag.StringVar(&level, "log-level", "warn", "Log level: debug, info, warn, error")
	flag.Parse()
	if !logger.SetLogLevel(level) {
		fmt.Fprintf(os.Stderr, "error: unknown log level %q\n", level)
		os.Exit(2)
	}
	tbl, err := results.Load(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := report(os.Stdout, tbl); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// report writes one line per SIZE with the serial time, each variant's speedup and the
// fastest variant.
func report(out io.Writer, tbl *results.Table) error {
	variants := figure.SeriesColumns[1:]
	rows, err := results.Speedups(tbl, variants)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "File: %s\nRows: %d\n\n", tbl.Source(), tbl.Len())

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprint(w, "SIZE\tSerial (µs)")
	for _, v := range variants {
		fmt.Fprintf(w, "\t%s", v)
	}
	fmt.Fprintln(w, "\tFastest")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s", num(r.Size), num(r.Serial))
		for _, v := range variants {
			fmt.Fprintf(w, "\t%s", speedup(r.Speedup[v]))
		}
		best, x := results.BestVariant(r, variants)
		if best == "" {
			fmt.Fprintln(w, "\t-")
			continue
		}
		fmt.Fprintf(w, "\t%s (%s)\n", best, speedup(x))
	}
	return w.Flush()
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%g", v)
}

func speedup(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx", v)
}
