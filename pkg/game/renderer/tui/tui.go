package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/gookit/color"
	"go.uber.org/zap"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/terminal"
	"lockworks/pkg/game/renderer"
	"lockworks/pkg/game/state"
)

// FrameTime is the tick and redraw interval of the play loop.
const FrameTime = time.Second / 30

// Widths of the drawn gauges, in cells.
const (
	gaugeWidth = 40
	listWidth  = 24
)

// ErrNotInteractive is returned by Run when stdin is not a terminal.
var ErrNotInteractive = errors.New("stdin is not a terminal")

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	colorTitle       color.Style
	colorLock        color.Style
	colorAction      color.Style
	colorActionShort color.Style
	colorDenied      color.Style
	colorSuccess     color.Style
	colorItem        color.Style
	colorHazard      color.Style
	colorLit         color.Style
	colorSubtle      color.Style

	presenter *renderer.EventPresenter
	sampler   *input.Sampler
	logger    *zap.Logger
	out       io.Writer
}

// New creates a new TUI renderer. The presenter is the one handed to the
// scene's locks; it supplies the flashes drawn on the lock faces.
func New(presenter *renderer.EventPresenter, logger *zap.Logger) *TUIRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TUIRenderer{
		presenter: presenter,
		sampler:   input.NewSampler(),
		logger:    logger,
		out:       os.Stdout,
	}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorTitle = color.Style{color.FgWhite, color.OpBold}
	t.colorLock = color.Style{color.FgCyan}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorSuccess = color.Style{color.FgGreen}
	t.colorItem = color.Style{color.FgYellow}
	t.colorHazard = color.Style{color.FgRed}
	t.colorLit = color.Style{color.FgBlack, color.BgYellow, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	_ = c.Run()
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleTitle:
		return t.colorTitle.Sprint(text)
	case renderer.StyleLock:
		return t.colorLock.Sprint(text)
	case renderer.StyleItem:
		return t.colorItem.Sprint(text)
	case renderer.StyleAction:
		return t.colorAction.Sprint(text)
	case renderer.StyleActionShort:
		return t.colorActionShort.Sprint(text)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(text)
	case renderer.StyleSuccess:
		return t.colorSuccess.Sprint(text)
	case renderer.StyleHazard:
		return t.colorHazard.Sprint(text)
	case renderer.StyleLit:
		return t.colorLit.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	return renderer.Expand(t.StyleText, msg, args...)
}

// Run puts the terminal in raw mode and plays the scene: keys are folded
// into one input sample per frame, the selected lock is ticked and the
// frame redrawn.
func (t *TUIRenderer) Run(ctx context.Context, g *state.Game) error {
	if !terminal.IsInteractive() {
		return ErrNotInteractive
	}
	restore, err := terminal.MakeRaw()
	if err != nil {
		return err
	}
	defer restore()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan input.RawInput, 32)
	go func() {
		if err := input.NewKeyReader(os.Stdin).Run(ctx, keys); err != nil && !errors.Is(err, context.Canceled) {
			t.logger.Warn("key reader stopped", zap.Error(err))
		}
	}()

	ticker := time.NewTicker(FrameTime)
	defer ticker.Stop()

	last := time.Now()
	for !g.Quit {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-keys:
			if !ok {
				return nil
			}
			t.sampler.Feed(input.MapToIntent(ev), ev.Timestamp)
		case now := <-ticker.C:
			t.step(g, now.Sub(last).Seconds(), t.sampler.Sample(now))
			last = now
			terminal.Home()
			t.RenderFrame(g)
		}
	}
	return nil
}

// step runs one frame of play.
func (t *TUIRenderer) step(g *state.Game, dt float64, in input.Sample) {
	selected := g.Selected
	g.Apply(t.sampler.Meta())
	if g.Selected != selected {
		t.sampler.Reset()
		return
	}
	g.Tick(dt, in)
	if t.presenter != nil {
		t.presenter.Advance(dt)
	}
}

// RenderFrame renders a complete game frame
func (t *TUIRenderer) RenderFrame(g *state.Game) {
	var b strings.Builder

	t.printHeader(&b, g)
	t.printLockList(&b, g)
	if cur := g.Current(); cur != nil {
		t.printLock(&b, g, cur)
	}
	t.printStatusBar(&b, g)
	t.printPossibleActions(&b)
	t.printMessagesPane(&b, g)

	fmt.Fprint(t.out, strings.ReplaceAll(b.String(), "\n", "\r\n"))
}

func (t *TUIRenderer) printString(b *strings.Builder, msg string, a ...any) {
	b.WriteString(t.FormatText(msg, a...))
	b.WriteString("\n")
}

func (t *TUIRenderer) printBullet(b *strings.Builder, txt string) {
	b.WriteString(" - ")
	t.printString(b, txt)
}

func (t *TUIRenderer) printHeader(b *strings.Builder, g *state.Game) {
	t.printString(b, "TITLE{GT{TITLE}}  SUBTLE{%d/%d GT{OPENED}}", g.Opened.Size(), len(g.Locks))
	b.WriteString("\n")
}

// printLockList renders the scene's locks, one per line.
func (t *TUIRenderer) printLockList(b *strings.Builder, g *state.Game) {
	for i, a := range g.Locks {
		marker := "  "
		if i == g.Selected {
			marker = t.colorActionShort.Sprint("> ")
		}
		name := t.colorLock.Sprint(fmt.Sprintf("%-*s", listWidth, g.Title(a)))
		var status string
		switch {
		case g.IsOpened(a.Name()) || !a.Locked():
			status = t.FormatText("OK{GT{STATUS_OPEN}}")
		case a.Playing():
			status = t.FormatText("ACTION{GT{STATUS_PLAYING}}")
		case g.Failures[a.Name()] > 0:
			status = t.FormatText("DENIED{GT{STATUS_FAILED}} SUBTLE{x%d}", g.Failures[a.Name()])
		default:
			status = t.FormatText("SUBTLE{GT{STATUS_LOCKED}}")
		}
		b.WriteString(marker + name + " " + status + "\n")
	}
	b.WriteString("\n")
}

// printStatusBar renders the inventory status bar
func (t *TUIRenderer) printStatusBar(b *strings.Builder, g *state.Game) {
	b.WriteString("\n")
	b.WriteString(t.FormatText("SUBTLE{GT{INVENTORY}}: "))

	tools := g.Inventory.Tools()
	if len(tools) == 0 {
		b.WriteString(t.FormatText("SUBTLE{GT{EMPTY}}\n"))
		return
	}
	items := make([]string, 0, len(tools))
	for _, tool := range tools {
		items = append(items, t.FormatText("ITEM{%s} x%d", tool, g.Inventory.Count(tool)))
	}
	b.WriteString(strings.Join(items, t.colorSubtle.Sprint(", ")) + "\n")
}

// printPossibleActions prints the key bindings
func (t *TUIRenderer) printPossibleActions(b *strings.Builder) {
	t.printBullet(b, "KEY{e} GT{HELP_ACTIVATE}  KEY{tab}/KEY{p} GT{HELP_SWITCH}  KEY{x} GT{HELP_ABORT}  KEY{q} GT{HELP_QUIT}")
	t.printBullet(b, "KEY{arrows} GT{HELP_POINTER}  KEY{w} GT{HELP_ROTATE}  KEY{a}/KEY{d} GT{HELP_DIAL}  KEY{f} GT{HELP_PRIMARY}  KEY{o} GT{HELP_ORBIT}  KEY{1-0} GT{HELP_PICK}")
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(b *strings.Builder, g *state.Game) {
	width := terminal.GetWidth()

	label := " " + renderer.Plain("GT{MESSAGES}") + " "
	sideLen := (width - len(label)) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := width - sideLen - len(label)
	if rightLen < 1 {
		rightLen = 1
	}

	b.WriteString("\n")
	b.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", sideLen)+label+strings.Repeat("─", rightLen)) + "\n")

	if len(g.Messages) == 0 {
		t.printString(b, "  SUBTLE{GT{NO_MESSAGES}}")
	} else {
		for _, msg := range g.Messages {
			t.printString(b, "  "+msg)
		}
	}

	b.WriteString(t.colorSubtle.Sprint(strings.Repeat("─", width)) + "\n")
}

// gauge draws a bar of width cells filled to fraction v.
func (t *TUIRenderer) gauge(v float64, style color.Style) string {
	v = max(0, min(1, v))
	filled := int(v*gaugeWidth + 0.5)
	return "[" + style.Sprint(strings.Repeat("█", filled)) + t.colorSubtle.Sprint(strings.Repeat("·", gaugeWidth-filled)) + "]"
}

// marker draws a gauge with a single mark at fraction v.
func (t *TUIRenderer) marker(v float64) string {
	pos := int(max(0, min(1, v)) * (gaugeWidth - 1))
	return "[" + t.colorSubtle.Sprint(strings.Repeat("─", pos)) +
		t.colorActionShort.Sprint("┃") +
		t.colorSubtle.Sprint(strings.Repeat("─", gaugeWidth-1-pos)) + "]"
}
