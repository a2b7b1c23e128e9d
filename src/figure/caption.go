package figure

import (
	"fmt"
	"image"
	"image/draw"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	captionPad    = 4 // text to box edge
	captionMargin = 6 // box to image edge
)

// Caption stamps text into a bordered footer box at the bottom-right of img, using the
// light or dark chart theme. Blank text returns img unchanged.
func Caption(img image.Image, text string, dark bool) image.Image {
	th := lightTheme
	if dark {
		th = darkTheme
	}
	return stampCaption(img, text, th)
}

func stampCaption(img image.Image, text string, th theme) image.Image {
	if img == nil || strings.TrimSpace(text) == "" {
		return img
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: out, Src: image.NewUniform(th.text), Face: face}
	box := captionBox(out.Bounds(), d.MeasureString(text).Ceil(), face.Metrics())
	draw.Draw(out, box, image.NewUniform(th.axis), image.Point{}, draw.Src)
	draw.Draw(out, box.Inset(1), image.NewUniform(th.canvas), image.Point{}, draw.Src)

	d.Dot = fixed.P(box.Min.X+captionPad, box.Max.Y-captionPad-face.Metrics().Descent.Ceil())
	d.DrawString(text)
	return out
}

// captionBox is the footer rectangle for a run of text textW pixels wide, inset from the
// bottom-right corner of b.
func captionBox(b image.Rectangle, textW int, m font.Metrics) image.Rectangle {
	w := textW + 2*captionPad
	h := m.Ascent.Ceil() + m.Descent.Ceil() + 2*captionPad
	corner := image.Pt(b.Max.X-captionMargin, b.Max.Y-captionMargin)
	return image.Rectangle{Min: corner.Sub(image.Pt(w, h)), Max: corner}
}

// SourceCaption describes where a figure came from, e.g. "results.csv, 12 rows".
func SourceCaption(f *Figure) string {
	rows := f.Rows()
	unit := "rows"
	if rows == 1 {
		unit = "row"
	}
	return fmt.Sprintf("%s, %d %s", filepath.Base(sourceName(f)), rows, unit)
}
