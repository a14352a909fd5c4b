package ebiten

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/game/renderer"
	"lockworks/pkg/game/state"
)

// EbitenRenderer draws the selected lock in a window and feeds mouse and
// keyboard input to it. Update and Draw run on ebiten's goroutine.
type EbitenRenderer struct {
	windowWidth  int
	windowHeight int
	scale        float64

	monoFontSource     *text.GoTextFaceSource
	sansFontSource     *text.GoTextFaceSource
	sansBoldFontSource *text.GoTextFaceSource

	cachedMonoFace  *text.GoTextFace
	cachedSansFace  *text.GoTextFace
	cachedTitleFace *text.GoTextFace

	game      *state.Game
	ctx       context.Context
	presenter *renderer.EventPresenter
	sampler   input.FrameSampler
	logger    *zap.Logger

	// Hit regions from the last Draw, for pointer focus and clicks.
	lockArea rect
	hits     []hit
	listHits []hit

	windowOpenedLogged bool
}

// New creates a new Ebiten renderer
func New(presenter *renderer.EventPresenter, logger *zap.Logger) *EbitenRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EbitenRenderer{
		windowWidth:  defaultWindowWidth,
		windowHeight: defaultWindowHeight,
		scale:        1,
		presenter:    presenter,
		logger:       logger,
	}
}

// Init loads the fonts and sets up the window
func (e *EbitenRenderer) Init() {
	if err := e.loadFonts(); err != nil {
		e.logger.Error("fonts unavailable", zap.Error(err))
	}
	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(renderer.Plain("GT{TITLE}"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
}

// Clear is a no-op: every Draw fills the whole screen
func (e *EbitenRenderer) Clear() {}

// StyleText returns the text wrapped in the markup for style, which Draw
// turns back into colour
func (e *EbitenRenderer) StyleText(str string, style renderer.TextStyle) string {
	return renderer.Markup(str, style)
}

// FormatText formats a message; markup is kept for drawing
func (e *EbitenRenderer) FormatText(msg string, args ...any) string {
	return renderer.Expand(renderer.Markup, msg, args...)
}

// RenderFrame sets the game to draw. Drawing happens in Draw.
func (e *EbitenRenderer) RenderFrame(g *state.Game) {
	e.game = g
}

// Run opens the window and plays the scene until the player quits, the
// window is closed or ctx is done.
func (e *EbitenRenderer) Run(ctx context.Context, g *state.Game) error {
	e.ctx = ctx
	e.RenderFrame(g)
	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Layout returns the game's logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.windowWidth, e.windowHeight = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
