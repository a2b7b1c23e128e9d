package main

import (
	"image"
	"image/color"
	"image/png"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/BitonicBenchViewer/cmd/bitonicviewer/uihelpers"
	"github.com/iafilius/BitonicBenchViewer/src/config"
	"github.com/iafilius/BitonicBenchViewer/src/figure"
	"github.com/iafilius/BitonicBenchViewer/src/logger"
	"github.com/iafilius/BitonicBenchViewer/src/results"
)

const readoutHint = "Hover the chart or select a table row to read the timings."

type uiState struct {
	app    fyne.App
	window fyne.Window

	file    string
	tbl     *results.Table
	fig     *figure.Figure
	dark    bool
	caption bool

	chartImg  *canvas.Image
	overlay   *readoutOverlay
	readout   *widget.Label
	table     *widget.Table
	fileLabel *widget.Label
}

// variantTheme pins the default theme to one variant.
type variantTheme struct{ variant fyne.ThemeVariant }

func (t *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, t.variant)
}
func (t *variantTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (t *variantTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (t *variantTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func themeFor(dark bool) fyne.Theme {
	if dark {
		return &variantTheme{variant: theme.VariantDark}
	}
	return &variantTheme{variant: theme.VariantLight}
}

// runWindow shows the chart and blocks until the window is closed. tbl and fig are already
// loaded, so nothing here can fail on the initial data.
func runWindow(cfg config.Config, tbl *results.Table, fig *figure.Figure) {
	a := app.NewWithID("com.bitonicbench.viewer")
	a.Settings().SetTheme(themeFor(cfg.Dark()))
	w := a.NewWindow(figure.Title)
	pw, ph := fig.PixelSize()
	w.Resize(fyne.NewSize(float32(pw)+40, float32(ph)+160))

	state := &uiState{
		app:     a,
		window:  w,
		file:    cfg.File,
		tbl:     tbl,
		fig:     fig,
		dark:    cfg.Dark(),
		caption: cfg.Caption,
	}

	state.fileLabel = widget.NewLabel(uihelpers.TruncatePath(state.file, 60))
	state.readout = widget.NewLabel(readoutHint)
	state.readout.Wrapping = fyne.TextWrapWord

	cw, ch := fig.PixelSize()
	state.chartImg = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, cw, ch)))
	state.chartImg.FillMode = canvas.ImageFillContain
	state.chartImg.SetMinSize(fyne.NewSize(600, 360))
	state.overlay = newReadoutOverlay(state)
	state.table = buildResultsTable(state)

	darkChk := widget.NewCheck("Dark", func(b bool) {
		state.dark = b
		a.Settings().SetTheme(themeFor(b))
		redrawChart(state)
	})
	darkChk.SetChecked(state.dark)
	captionChk := widget.NewCheck("Caption", func(b bool) {
		state.caption = b
		redrawChart(state)
	})
	captionChk.SetChecked(state.caption)

	top := container.NewHBox(
		widget.NewButton("Reload", func() { reload(state) }),
		widget.NewButton("Export PNG…", func() { exportChartPNG(state) }),
		widget.NewButton("Export Vector…", func() { exportChartVector(state) }),
		darkChk,
		captionChk,
		widget.NewLabel("File:"),
		state.fileLabel,
	)

	tabs := container.NewAppTabs(
		container.NewTabItem("Chart", container.NewStack(state.chartImg, state.overlay)),
		container.NewTabItem("Table", state.table),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	tabs.OnSelected = func(*container.TabItem) {
		a.Preferences().SetInt("selectedTabIndex", tabs.SelectedIndex())
	}
	if idx := a.Preferences().IntWithFallback("selectedTabIndex", 0); idx >= 0 && idx < len(tabs.Items) {
		tabs.SelectIndex(idx)
	}

	w.SetContent(container.NewBorder(top, state.readout, nil, nil, tabs))
	buildMenus(state)

	// Redraw on window resize so the chart scales with width.
	prevW := 0
	done := make(chan struct{})
	w.SetOnClosed(func() { close(done) })
	go func() {
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				c := w.Canvas()
				if c == nil {
					continue
				}
				curW := int(c.Size().Width)
				if curW != prevW {
					prevW = curW
					fyne.Do(func() {
						redrawChart(state)
						sizeTableColumns(state)
					})
				}
			}
		}
	}()

	redrawChart(state)
	w.ShowAndRun()
}

func buildMenus(state *uiState) {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { reload(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG…", func() { exportChartPNG(state) }),
		fyne.NewMenuItem("Export Vector…", func() { exportChartVector(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu))

	canv := state.window.Canvas()
	if canv == nil {
		return
	}
	for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: mod}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { reload(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { state.window.Close() })
	}
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		prev := state.file
		state.file = path
		if !reload(state) {
			state.file = prev
		}
	}, state.window)
	d.Show()
}

// reload re-reads the current file. On failure the previous chart stays and the error is shown.
func reload(state *uiState) bool {
	tbl, fig, err := loadFigure(state.file)
	if err != nil {
		logger.Errorf("[viewer] reload %s: %v", state.file, err)
		dialog.ShowError(err, state.window)
		return false
	}
	state.tbl, state.fig = tbl, fig
	state.fileLabel.SetText(uihelpers.TruncatePath(state.file, 60))
	state.showReadout(-1)
	state.table.Refresh()
	sizeTableColumns(state)
	redrawChart(state)
	return true
}

// chartSize follows the window width, falling back to the figure's own size.
func chartSize(state *uiState) (int, int) {
	if state.window == nil || state.window.Canvas() == nil || state.window.Canvas().Size().Width == 0 {
		return state.fig.PixelSize()
	}
	return uihelpers.ComputeChartDimensions(int(state.window.Canvas().Size().Width*0.95) - 12)
}

func redrawChart(state *uiState) {
	if state.fig == nil || state.chartImg == nil {
		return
	}
	w, h := chartSize(state)
	opts := figure.Options{Width: w, Height: h, Dark: state.dark}
	if state.caption {
		opts.Caption = figure.SourceCaption(state.fig)
	}
	img, err := figure.Render(state.fig, opts)
	if err != nil {
		logger.Errorf("[viewer] render: %v", err)
		img = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	state.chartImg.Image = img
	state.chartImg.Refresh()
	if state.overlay != nil {
		state.overlay.Refresh()
	}
}

func (st *uiState) showReadout(row int) {
	if st.readout == nil {
		return
	}
	if text := formatReadout(st.fig, row); text != "" {
		st.readout.SetText(text)
		return
	}
	st.readout.SetText(readoutHint)
}

// buildResultsTable lists the loaded rows in file order; row 0 is the header.
func buildResultsTable(state *uiState) *widget.Table {
	t := widget.NewTable(
		func() (int, int) {
			if state.tbl == nil {
				return 0, 0
			}
			return state.tbl.Len() + 1, len(state.tbl.Columns())
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			lbl := o.(*widget.Label)
			cols := state.tbl.Columns()
			if id.Col >= len(cols) {
				lbl.SetText("")
				return
			}
			if id.Row == 0 {
				lbl.TextStyle = fyne.TextStyle{Bold: true}
				lbl.SetText(cols[id.Col])
				return
			}
			lbl.TextStyle = fyne.TextStyle{}
			if !state.tbl.Numeric(cols[id.Col]) {
				lbl.SetText(state.tbl.Cell(id.Row-1, cols[id.Col]))
				return
			}
			lbl.SetText(formatValue(state.tbl.Row(id.Row - 1)[cols[id.Col]]))
		},
	)
	t.OnSelected = func(id widget.TableCellID) {
		state.showReadout(id.Row - 1)
	}
	return t
}

func sizeTableColumns(state *uiState) {
	if state.table == nil || state.tbl == nil || state.window.Canvas() == nil {
		return
	}
	widths := uihelpers.ComputeTableColumnWidths(state.window.Canvas().Size().Width, len(state.tbl.Columns()))
	for i, w := range widths {
		state.table.SetColumnWidth(i, w)
	}
}

func exportChartPNG(state *uiState) {
	if state.chartImg == nil || state.chartImg.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, state.chartImg.Image); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName("bitonic_chart.png")
	fs.Show()
}

// exportChartVector writes the 10 x 6 inch gonum rendering; the format follows the chosen
// extension and defaults to SVG.
func exportChartVector(state *uiState) {
	if state.fig == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		format := figure.FormatFromPath(wc.URI().Path())
		if !figure.SupportedFormat(format) {
			format = "svg"
		}
		if err := figure.WriteTo(wc, state.fig, format); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName("bitonic_chart.svg")
	fs.Show()
}
