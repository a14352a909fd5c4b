package ebiten

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"lockworks/pkg/engine/lock"
	"lockworks/pkg/game/state"
)

// Draw renders the game to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	g := e.game
	if g == nil || e.sansFontSource == nil {
		return
	}

	screenWidth, screenHeight := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	lineHeight := e.getUIFontSize() * 1.5
	headerHeight := lineHeight + margin
	messagesHeight := lineHeight*(messageLines+1) + margin

	// Square lock area on the left, side panel on the right
	size := min(screenWidth-sidePanelWidth-margin*3, screenHeight-headerHeight-messagesHeight-margin)
	size = max(size, 100)
	e.lockArea = rect{x: margin, y: headerHeight, w: size, h: size}

	e.drawHeader(screen, g)
	e.drawLockArea(screen, g)
	e.drawLockList(screen, g, rect{x: margin*2 + size, y: headerHeight, w: sidePanelWidth, h: size})
	e.drawMessagesPanel(screen, g, rect{x: margin, y: screenHeight - messagesHeight, w: screenWidth - margin*2, h: messagesHeight - margin})
}

func (e *EbitenRenderer) drawHeader(screen *ebiten.Image, g *state.Game) {
	w := e.drawTextWithFace(screen, "TITLE{GT{TITLE}}", margin, margin/2, e.getTitleFontFace())
	e.drawText(screen, fmt.Sprintf("SUBTLE{%d/%d GT{OPENED}}", g.Opened.Size(), len(g.Locks)), margin*2+w, margin/2+2)
}

// drawLockArea draws the selected lock, or a prompt when it is put away
func (e *EbitenRenderer) drawLockArea(screen *ebiten.Image, g *state.Game) {
	a := e.lockArea
	vector.DrawFilledRect(screen, float32(a.x), float32(a.y), float32(a.w), float32(a.h), colorLockBackground, false)
	e.hits = e.hits[:0]

	cur := g.Current()
	if cur == nil {
		return
	}
	lineHeight := e.getUIFontSize() * 1.5
	e.drawText(screen, fmt.Sprintf("LOCK{%s} SUBTLE{(%s)}", g.Title(cur), cur.Game().Kind()), a.x+8, a.y+8)

	if !cur.Visible() {
		msg := "GT{PRESS} KEY{e} GT{TO_ACTIVATE}"
		switch {
		case !cur.Locked():
			msg = "OK{GT{LOCK_OPEN}}"
		case cur.RequiredTool() != "" && g.Inventory.Count(cur.RequiredTool()) <= 0:
			msg = fmt.Sprintf("DENIED{GT{MSG_NEED_TOOL}} ITEM{%s}", cur.RequiredTool())
		}
		e.drawText(screen, msg, a.x+8, a.y+a.h/2)
		return
	}

	e.drawLock(screen, g, cur.Game())

	switch cur.Game().Session().Outcome() {
	case lock.Won:
		e.drawText(screen, "OK{GT{MSG_WIN}}", a.x+8, a.y+a.h-lineHeight)
	case lock.Lost:
		e.drawText(screen, "DENIED{GT{MSG_FAIL}}", a.x+8, a.y+a.h-lineHeight)
	}
}

// drawLockList draws the scene's locks and the inventory; each lock name is
// clickable
func (e *EbitenRenderer) drawLockList(screen *ebiten.Image, g *state.Game, area rect) {
	vector.DrawFilledRect(screen, float32(area.x), float32(area.y), float32(area.w), float32(area.h), colorPanelBackground, false)
	e.listHits = e.listHits[:0]

	lineHeight := e.getUIFontSize() * 1.5
	y := area.y + 8
	for i, a := range g.Locks {
		row := rect{x: area.x, y: y - 2, w: area.w, h: lineHeight}
		if i == g.Selected {
			vector.DrawFilledRect(screen, float32(row.x), float32(row.y), float32(row.w), float32(row.h), colorFocusBackground, false)
		}
		status := "SUBTLE{GT{STATUS_LOCKED}}"
		switch {
		case g.IsOpened(a.Name()) || !a.Locked():
			status = "OK{GT{STATUS_OPEN}}"
		case a.Playing():
			status = "ACTION{GT{STATUS_PLAYING}}"
		case g.Failures[a.Name()] > 0:
			status = fmt.Sprintf("DENIED{GT{STATUS_FAILED}} SUBTLE{x%d}", g.Failures[a.Name()])
		}
		e.drawText(screen, fmt.Sprintf("LOCK{%s}", g.Title(a)), area.x+8, y)
		e.drawText(screen, status, area.x+area.w*0.62, y)
		e.listHits = append(e.listHits, hit{index: i, area: row})
		y += lineHeight
	}

	y += lineHeight
	e.drawText(screen, "SUBTLE{GT{INVENTORY}}", area.x+8, y)
	y += lineHeight
	tools := g.Inventory.Tools()
	if len(tools) == 0 {
		e.drawText(screen, "SUBTLE{GT{EMPTY}}", area.x+16, y)
	}
	for _, tool := range tools {
		e.drawText(screen, fmt.Sprintf("ITEM{%s} x%d", tool, g.Inventory.Count(tool)), area.x+16, y)
		y += lineHeight
	}

	help := []string{
		"KEY{E} GT{HELP_ACTIVATE}   KEY{Tab} GT{HELP_SWITCH}",
		"KEY{Esc} GT{HELP_ABORT}   KEY{Q} GT{HELP_QUIT}",
		"KEY{W}/KEY{RMB} GT{HELP_ROTATE}   KEY{A}/KEY{D} GT{HELP_DIAL}",
		"KEY{LMB} GT{HELP_PRIMARY}   KEY{O}/KEY{MMB} GT{HELP_ORBIT}",
	}
	y = area.y + area.h - lineHeight*float64(len(help)) - 4
	for _, line := range help {
		e.drawText(screen, line, area.x+8, y)
		y += lineHeight
	}
}

// drawMessagesPanel renders the messages log pane
func (e *EbitenRenderer) drawMessagesPanel(screen *ebiten.Image, g *state.Game, area rect) {
	vector.DrawFilledRect(screen, float32(area.x), float32(area.y), float32(area.w), float32(area.h), colorPanelBackground, false)

	lineHeight := e.getUIFontSize() * 1.5
	y := area.y + 6
	e.drawText(screen, "SUBTLE{GT{MESSAGES}}", area.x+8, y)
	y += lineHeight
	if len(g.Messages) == 0 {
		e.drawText(screen, "SUBTLE{GT{NO_MESSAGES}}", area.x+16, y)
		return
	}
	for _, msg := range g.Messages {
		e.drawText(screen, msg, area.x+16, y)
		y += lineHeight
	}
}
