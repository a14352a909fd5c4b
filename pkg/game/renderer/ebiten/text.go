package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"lockworks/pkg/game/renderer"
)

// styleColor maps a markup style to its palette colour
func styleColor(s renderer.TextStyle) color.Color {
	switch s {
	case renderer.StyleTitle, renderer.StyleAction, renderer.StyleActionShort:
		return colorAction
	case renderer.StyleLock:
		return colorLock
	case renderer.StyleItem:
		return colorItem
	case renderer.StyleDenied:
		return colorDenied
	case renderer.StyleSuccess:
		return colorSuccess
	case renderer.StyleHazard:
		return colorHazard
	case renderer.StyleLit:
		return colorLit
	case renderer.StyleSubtle:
		return colorSubtle
	default:
		return colorText
	}
}

// drawText draws a marked-up message at (x, y), top left, and returns its
// width.
func (e *EbitenRenderer) drawText(screen *ebiten.Image, msg string, x, y float64) float64 {
	return e.drawTextWithFace(screen, msg, x, y, e.getSansFontFace())
}

// drawTextWithFace draws a marked-up message with a specific font face.
// Uses the face's size for the baseline offset so different font sizes
// position correctly.
func (e *EbitenRenderer) drawTextWithFace(screen *ebiten.Image, msg string, x, y float64, face *text.GoTextFace) float64 {
	currentX := x
	for _, seg := range renderer.Parse(msg) {
		if seg.Text == "" {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(currentX, y)
		op.ColorScale.ScaleWithColor(styleColor(seg.Style))
		text.Draw(screen, seg.Text, face, op)

		w, _ := text.Measure(seg.Text, face, 0)
		currentX += w
	}
	return currentX - x
}

// drawCentered draws plain text centred on (cx, cy) in one colour.
func (e *EbitenRenderer) drawCentered(screen *ebiten.Image, str string, cx, cy float64, col color.Color, face *text.GoTextFace) {
	w, h := text.Measure(str, face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx-w/2, cy-h/2)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, face, op)
}

// applyAlpha applies an alpha value to a color
func applyAlpha(c color.Color, alpha float64) color.Color {
	alpha = max(0, min(1, alpha))
	r, g, b, a := c.RGBA()
	return color.RGBA{
		uint8(float64(r>>8) * alpha),
		uint8(float64(g>>8) * alpha),
		uint8(float64(b>>8) * alpha),
		uint8(float64(a>>8) * alpha),
	}
}
