package main

import (
	"errors"
	"image"
	_ "image/png" // register PNG decoder
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iafilius/BitonicBenchViewer/src/config"
	"github.com/iafilius/BitonicBenchViewer/src/figure"
	"github.com/iafilius/BitonicBenchViewer/src/results"
)

const scenarioCSV = "SIZE,Serial,Parallel CPU,Parallel Intel GPU,Parallel Nvidia GPU\n100,500,120,200,80\n200,1000,240,400,160\n"

func writeResults(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "results.csv")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write results: %v", err)
	}
	return p
}

func scenarioFigure(t *testing.T) *figure.Figure {
	t.Helper()
	_, fig, err := loadFigure(writeResults(t, scenarioCSV))
	if err != nil {
		t.Fatalf("loadFigure: %v", err)
	}
	return fig
}

func TestRunExportMode_PNGUsesFigureSize(t *testing.T) {
	fig := scenarioFigure(t)
	out := filepath.Join(t.TempDir(), "nested", "chart.png")
	if err := RunExportMode(fig, out, figure.Options{Caption: figure.SourceCaption(fig)}); err != nil {
		t.Fatalf("RunExportMode: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 1000 || cfg.Height != 600 {
		t.Fatalf("exported %dx%d want 1000x600", cfg.Width, cfg.Height)
	}
}

func TestRunExportMode_VectorFormats(t *testing.T) {
	fig := scenarioFigure(t)
	dir := t.TempDir()
	for _, name := range []string{"chart.svg", "chart.pdf"} {
		out := filepath.Join(dir, name)
		if err := RunExportMode(fig, out, figure.Options{}); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		st, err := os.Stat(out)
		if err != nil || st.Size() == 0 {
			t.Fatalf("%s not written: %v", name, err)
		}
	}
	b, _ := os.ReadFile(filepath.Join(dir, "chart.svg"))
	if !strings.Contains(string(b), "<svg") {
		t.Fatalf("svg export lacks <svg element")
	}
}

func TestRunExportMode_UnsupportedFormat(t *testing.T) {
	fig := scenarioFigure(t)
	out := filepath.Join(t.TempDir(), "chart.bmp")
	if err := RunExportMode(fig, out, figure.Options{}); err == nil {
		t.Fatalf("expected error for .bmp")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("nothing should be written for an unsupported format")
	}
}

// A failing load must stop the run before any output exists.
func TestRun_FailsBeforePlotting(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "chart.png")

	cfg := config.Default()
	cfg.File = filepath.Join(dir, "missing.csv")
	cfg.Out = out
	err := run(cfg)
	var fae *results.FileAccessError
	if !errors.As(err, &fae) {
		t.Fatalf("want FileAccessError, got %v", err)
	}

	cfg.File = writeResults(t, "SIZE,Serial,Parallel CPU,Parallel Nvidia GPU\n100,1,2,3\n")
	err = run(cfg)
	var cnf *results.ColumnNotFoundError
	if !errors.As(err, &cnf) || cnf.Column != "Parallel Intel GPU" {
		t.Fatalf("want ColumnNotFoundError for Parallel Intel GPU, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("no chart should be written when loading fails")
	}
}

func TestRun_ExportMode(t *testing.T) {
	cfg := config.Default()
	cfg.File = writeResults(t, scenarioCSV)
	cfg.Out = filepath.Join(t.TempDir(), "chart.svg")
	if err := run(cfg); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(cfg.Out); err != nil {
		t.Fatalf("export missing: %v", err)
	}
}
