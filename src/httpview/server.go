// Package httpview serves the benchmark chart over HTTP for headless machines.
// Every request re-reads the results file, so the page always reflects the file on disk.
package httpview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iafilius/BitonicBenchViewer/src/figure"
	"github.com/iafilius/BitonicBenchViewer/src/logger"
	"github.com/iafilius/BitonicBenchViewer/src/results"
)

// Server renders the chart for one results file.
type Server struct {
	File    string
	Options figure.Options
	// Loader reads the table; results.Load when nil.
	Loader func(path string) (*results.Table, error)
}

// New returns a Server for path.
func New(path string, opts figure.Options) *Server {
	return &Server{File: path, Options: opts, Loader: results.Load}
}

// Handler builds the gin router.
//
//	GET /           small HTML page embedding the chart
//	GET /chart.png  raster chart (go-chart)
//	GET /chart.svg  vector chart, 10 x 6 in (gonum/plot)
//	GET /api/figure figure as JSON
//	GET /healthz    liveness
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLog())
	r.GET("/", s.index)
	r.GET("/chart.png", s.chartPNG)
	r.GET("/chart.svg", s.chartSVG)
	r.GET("/api/figure", s.figureJSON)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Infof("[serve] chart for %s on http://%s/", s.File, displayAddr(addr))
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugf("[serve] %s %s -> %d in %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// build loads the table and resolves the figure, writing the error response on failure.
func (s *Server) build(c *gin.Context) (*figure.Figure, bool) {
	load := s.Loader
	if load == nil {
		load = results.Load
	}
	tbl, err := load(s.File)
	if err == nil {
		var fig *figure.Figure
		fig, err = figure.Build(tbl)
		if err == nil {
			return fig, true
		}
	}
	status := statusFor(err)
	logger.Warnf("[serve] %s: %v", c.Request.URL.Path, err)
	c.JSON(status, gin.H{"error": err.Error()})
	return nil, false
}

// statusFor maps load/build errors onto HTTP status codes.
func statusFor(err error) int {
	var fae *results.FileAccessError
	var se *results.SchemaError
	var cnf *results.ColumnNotFoundError
	switch {
	case errors.As(err, &fae):
		return http.StatusNotFound
	case errors.As(err, &se), errors.As(err, &cnf):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) chartPNG(c *gin.Context) {
	fig, ok := s.build(c)
	if !ok {
		return
	}
	opts := s.Options
	if opts.Caption == "" && c.Query("caption") == "1" {
		opts.Caption = figure.SourceCaption(fig)
	}
	if c.Query("theme") == "dark" {
		opts.Dark = true
	}
	var buf bytes.Buffer
	if err := figure.WritePNG(&buf, fig, opts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) chartSVG(c *gin.Context) {
	fig, ok := s.build(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := figure.WriteTo(&buf, fig, "svg"); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, figure.ErrNoData) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func (s *Server) figureJSON(c *gin.Context) {
	fig, ok := s.build(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, fig)
}

const indexHTML = `<!doctype html>
<html><head><meta charset="utf-8"><title>%[1]s</title></head>
<body style="margin:0;background:%[2]s;display:flex;justify-content:center">
<img src="/chart.png" alt="%[1]s" style="max-width:100%%">
</body></html>
`

// pageBackground matches the chart canvas of the configured theme.
func (s *Server) pageBackground() string {
	if s.Options.Dark {
		return "#121212"
	}
	return "#ffffff"
}

func (s *Server) index(c *gin.Context) {
	page := fmt.Sprintf(indexHTML, html.EscapeString(figure.Title), s.pageBackground())
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
