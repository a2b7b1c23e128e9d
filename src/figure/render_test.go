package figure

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestRender_DefaultSize(t *testing.T) {
	fig, err := Build(mustTable(t, scenarioCSV))
	require.NoError(t, err)

	img, err := Render(fig, Options{})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1000, 600), img.Bounds())
}

func TestRender_Idempotent(t *testing.T) {
	fig, err := Build(mustTable(t, scenarioCSV))
	require.NoError(t, err)

	var a, b bytes.Buffer
	require.NoError(t, WritePNG(&a, fig, Options{Width: 800, Height: 480}))
	require.NoError(t, WritePNG(&b, fig, Options{Width: 800, Height: 480}))
	assert.True(t, bytes.Equal(a.Bytes(), b.Bytes()), "two renders of the same figure differ")
}

func TestRender_NoDataIsBlankNotError(t *testing.T) {
	fig, err := Build(mustTable(t, "SIZE,Serial,Parallel CPU,Parallel Intel GPU,Parallel Nvidia GPU\n"))
	require.NoError(t, err)

	img, err := Render(fig, Options{Dark: true})
	require.NoError(t, err)
	assert.Equal(t, 1000, img.Bounds().Dx())

	var buf bytes.Buffer
	assert.ErrorIs(t, WriteSVG(&buf, fig, Options{}), ErrNoData)
}

func TestRender_SingleRow(t *testing.T) {
	csv := "SIZE,Serial,Parallel CPU,Parallel Intel GPU,Parallel Nvidia GPU\n1024,900,300,200,100\n"
	fig, err := Build(mustTable(t, csv))
	require.NoError(t, err)
	_, err = Render(fig, Options{})
	require.NoError(t, err)
}

func TestWriteSVG_ContainsLabels(t *testing.T) {
	fig, err := Build(mustTable(t, scenarioCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, fig, Options{}))
	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<svg"))
	for _, want := range []string{"Bitonic Merge Sorting", "Parallel Nvidia GPU", "SIZE (# of elements)"} {
		assert.Contains(t, out, want)
	}
}

func TestSave_Formats(t *testing.T) {
	fig, err := Build(mustTable(t, scenarioCSV))
	require.NoError(t, err)
	dir := t.TempDir()

	for _, name := range []string{"chart.png", "chart.svg", "chart.pdf"} {
		p := filepath.Join(dir, name)
		require.NoError(t, Save(fig, p), name)
		st, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, st.Size(), int64(0), name)
	}

	err = Save(fig, filepath.Join(dir, "chart.bmp"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestWriteTo_SVG(t *testing.T) {
	fig, err := Build(mustTable(t, scenarioCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, fig, "SVG"))
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "Serial")
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "png", FormatFromPath("out/Chart.PNG"))
	assert.Equal(t, "", FormatFromPath("chart"))
	assert.True(t, SupportedFormat("TIFF"))
	assert.False(t, SupportedFormat("gif"))
}

func TestCaption(t *testing.T) {
	base := blank(200, 60, lightTheme.background)
	out := Caption(base, "results.csv, 2 rows", false)
	require.NotNil(t, out)
	assert.Equal(t, base.Bounds(), out.Bounds())

	// the box border sits just inside the bottom-right margin; the opposite corner is untouched
	box := captionBox(base.Bounds(), 10, basicfont.Face7x13.Metrics())
	assert.Equal(t, image.Pt(194, 54), box.Max)
	r, _, _, _ := out.At(193, 53).RGBA()
	br, _, _, _ := base.At(193, 53).RGBA()
	assert.Less(t, r, br, "light theme border is darker than the background")
	assert.Equal(t, base.At(4, 55), out.At(4, 55))

	dark := blank(200, 60, darkTheme.background)
	outDark := Caption(dark, "results.csv, 2 rows", true)
	r, _, _, _ = outDark.At(193, 53).RGBA()
	br, _, _, _ = dark.At(193, 53).RGBA()
	assert.Greater(t, r, br, "dark theme border is lighter than the background")

	assert.Equal(t, base, Caption(base, "  ", false))

	fig, err := Build(mustTable(t, scenarioCSV))
	require.NoError(t, err)
	assert.Equal(t, "results.csv, 2 rows", SourceCaption(fig))
}

func TestNegativeTimings_RasterAndVectorAgree(t *testing.T) {
	fig, err := Build(mustTable(t, "SIZE,Serial,Parallel CPU,Parallel Intel GPU,Parallel Nvidia GPU\n100,-50,120,200,80\n200,1000,240,400,160\n"))
	require.NoError(t, err)

	_, _, y0, _, ok := AxisRanges(fig)
	require.True(t, ok)
	assert.LessOrEqual(t, y0, -50.0)

	p, err := newPlot(fig)
	require.NoError(t, err)
	assert.LessOrEqual(t, p.Y.Min, -50.0)
	assert.Less(t, y0, 0.0)
	assert.Less(t, p.Y.Min, 0.0)
}
