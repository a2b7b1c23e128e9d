package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iafilius/BitonicBenchViewer/src/figure"
	"github.com/iafilius/BitonicBenchViewer/src/logger"
)

// RunExportMode writes the chart to out without creating a UI window. PNG goes through the
// raster renderer so it matches the window; every other format is the 10 x 6 inch gonum export.
func RunExportMode(fig *figure.Figure, out string, opts figure.Options) error {
	defer logger.TimeTrack(time.Now(), "export "+out)
	format := figure.FormatFromPath(out)
	if !figure.SupportedFormat(format) {
		return fmt.Errorf("unsupported export format %q for %s", format, out)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
	}
	if format == "png" {
		var buf bytes.Buffer
		if err := figure.WritePNG(&buf, fig, opts); err != nil {
			return fmt.Errorf("png encode %s: %w", out, err)
		}
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
	} else if err := figure.Save(fig, out); err != nil {
		return err
	}
	logger.Infof("[export] wrote %s (%d series, %d rows)", out, len(fig.Series), fig.Rows())
	return nil
}
