// Bitonic bench viewer entrypoint.
//
// Loads the benchmark table (results.csv by default) and plots Serial, Parallel CPU,
// Parallel Intel GPU and Parallel Nvidia GPU timings against SIZE.
//
// Modes:
//  1. Window (default): show the chart in a desktop window; returns when the window is closed.
//  2. Export (-out chart.png|svg|pdf|...): write the chart to a file and exit, no window.
//  3. Serve (-serve :8080): serve the chart over HTTP until interrupted.
//
// Any failure to load the table or resolve a column exits non-zero before anything is drawn.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iafilius/BitonicBenchViewer/src/config"
	"github.com/iafilius/BitonicBenchViewer/src/figure"
	"github.com/iafilius/BitonicBenchViewer/src/httpview"
	"github.com/iafilius/BitonicBenchViewer/src/logger"
	"github.com/iafilius/BitonicBenchViewer/src/results"
)

func main() {
	cfg, err := config.Load("bitonicviewer", os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fatal(err)
	}
	logger.SetLogLevel(cfg.LogLevel)
	if err := run(cfg); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

func run(cfg config.Config) error {
	tbl, fig, err := loadFigure(cfg.File)
	if err != nil {
		return err
	}
	switch cfg.Mode() {
	case "export":
		return RunExportMode(fig, cfg.Out, renderOptions(cfg, fig))
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		// The file is re-read per request, so captions are computed per request too.
		if cfg.Caption {
			logger.Infof("[serve] captions are per request: add ?caption=1 to /chart.png")
		}
		return httpview.New(cfg.File, figure.Options{Dark: cfg.Dark()}).ListenAndServe(ctx, cfg.Serve)
	default:
		runWindow(cfg, tbl, fig)
		return nil
	}
}

// loadFigure reads the table at path and resolves every plotted column.
func loadFigure(path string) (*results.Table, *figure.Figure, error) {
	defer logger.TimeTrack(time.Now(), "load figure")
	tbl, err := results.Load(path)
	if err != nil {
		return nil, nil, err
	}
	fig, err := figure.Build(tbl)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Infof("[viewer] loaded %s: %d rows, %d series", path, tbl.Len(), len(fig.Series))
	return tbl, fig, nil
}

func renderOptions(cfg config.Config, fig *figure.Figure) figure.Options {
	opts := figure.Options{Dark: cfg.Dark()}
	if cfg.Caption {
		opts.Caption = figure.SourceCaption(fig)
	}
	return opts
}
