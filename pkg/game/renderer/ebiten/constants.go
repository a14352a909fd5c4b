// Package ebiten provides an Ebiten-based 2D graphical renderer for Lockworks.
package ebiten

import "image/color"

// Color palette - brighter colors for visibility
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorLockBackground  = color.RGBA{15, 15, 26, 255}    // Darker for the lock area
	colorPanelBackground = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
	colorFocusBackground = color.RGBA{60, 80, 100, 200}   // Element under the pointer
	colorMetal           = color.RGBA{150, 155, 175, 255} // Lock bodies
	colorMetalDark       = color.RGBA{70, 72, 90, 255}
	colorPick            = color.RGBA{230, 230, 240, 255}
	colorText            = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorSubtle          = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorAction          = color.RGBA{180, 150, 250, 255} // Blue-purple
	colorLock            = color.RGBA{150, 200, 230, 255} // Lock names
	colorItem            = color.RGBA{220, 170, 255, 255} // Bright purple
	colorDenied          = color.RGBA{255, 100, 100, 255} // Bright red
	colorHazard          = color.RGBA{255, 80, 80, 255}
	colorSuccess         = color.RGBA{100, 255, 150, 255}
	colorLit             = color.RGBA{255, 220, 100, 255} // Flashing buttons
)

// wireColors is the bomb's three-colour palette; duds are grey.
var (
	wireColors = []color.RGBA{
		{220, 60, 60, 255},
		{70, 120, 230, 255},
		{60, 190, 90, 255},
	}
	wireDud = color.RGBA{140, 140, 140, 255}
)

// Layout, in pixels at the default window size.
const (
	defaultWindowWidth  = 1024
	defaultWindowHeight = 720
	margin              = 20
	sidePanelWidth      = 320
	baseFontSize        = 16
	messageLines        = 5
)
