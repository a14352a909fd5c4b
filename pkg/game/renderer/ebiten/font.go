package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFonts parses the embedded Go fonts
func (e *EbitenRenderer) loadFonts() error {
	for _, f := range []struct {
		dst **text.GoTextFaceSource
		ttf []byte
	}{
		{&e.monoFontSource, gomono.TTF},
		{&e.sansFontSource, goregular.TTF},
		{&e.sansBoldFontSource, gobold.TTF},
	} {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(f.ttf))
		if err != nil {
			return fmt.Errorf("load font: %w", err)
		}
		*f.dst = src
	}
	return nil
}

// getUIFontSize returns the font size for UI text
func (e *EbitenRenderer) getUIFontSize() float64 {
	return baseFontSize * e.scale
}

// getMonoFontFace returns a cached monospace font face, used for clocks and
// the dial pad screen
func (e *EbitenRenderer) getMonoFontFace() *text.GoTextFace {
	size := e.getUIFontSize() * 2
	if e.cachedMonoFace == nil || e.cachedMonoFace.Size != size {
		e.cachedMonoFace = &text.GoTextFace{
			Source: e.monoFontSource,
			Size:   size,
		}
	}
	return e.cachedMonoFace
}

// getSansFontFace returns a cached sans-serif font face for UI text
func (e *EbitenRenderer) getSansFontFace() *text.GoTextFace {
	size := e.getUIFontSize()
	if e.cachedSansFace == nil || e.cachedSansFace.Size != size {
		e.cachedSansFace = &text.GoTextFace{
			Source: e.sansFontSource,
			Size:   size,
		}
	}
	return e.cachedSansFace
}

// getTitleFontFace returns a cached bold face 2pt larger than UI text
func (e *EbitenRenderer) getTitleFontFace() *text.GoTextFace {
	size := e.getUIFontSize() + 2
	if e.cachedTitleFace == nil || e.cachedTitleFace.Size != size {
		e.cachedTitleFace = &text.GoTextFace{
			Source: e.sansBoldFontSource,
			Size:   size,
		}
	}
	return e.cachedTitleFace
}
