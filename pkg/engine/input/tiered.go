package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceMouse
	DeviceTerminal
)

// Action represents a high-level intent while working a lock.
type Action int

const (
	ActionNone Action = iota

	// Pointer
	ActionPointerLeft
	ActionPointerRight
	ActionPointerUp
	ActionPointerDown

	// Lock manipulation
	ActionRotate
	ActionDialLeft
	ActionDialRight
	ActionPrimary
	ActionOrbit
	ActionPick // select element Intent.Index

	// Meta
	ActionAbort
	ActionQuit
	ActionNextLock
	ActionPrevLock
	ActionActivate
)

// Intent is the high-level description of what the player wants to do.
type Intent struct {
	Action Action
	Index  int
}

// RawInput is an event emitted directly from an input device.
// Code is a device-specific identifier (e.g. "KeyW", "arrow_up", "3").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// bindings maps raw codes to actions.
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	"arrow_left":  ActionPointerLeft,
	"arrow_right": ActionPointerRight,
	"arrow_up":    ActionPointerUp,
	"arrow_down":  ActionPointerDown,

	"w":     ActionRotate,
	" ":     ActionRotate,
	"a":     ActionDialLeft,
	",":     ActionDialLeft,
	"d":     ActionDialRight,
	".":     ActionDialRight,
	"enter": ActionPrimary,
	"f":     ActionPrimary,
	"o":     ActionOrbit,

	"x":      ActionAbort,
	"escape": ActionAbort,
	"q":      ActionQuit,
	"quit":   ActionQuit,
	"tab":    ActionNextLock,
	"n":      ActionNextLock,
	"p":      ActionPrevLock,
	"e":      ActionActivate,
}

// pickCodes are the element selection keys: 1-9 then 0, then the row below.
var pickCodes = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "z", "c", "v", "b", "m"}

// MapToIntent applies the current bindings to a raw input.
func MapToIntent(ev RawInput) Intent {
	for i, code := range pickCodes {
		if ev.Code == code {
			return Intent{Action: ActionPick, Index: i}
		}
	}
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// PickCode returns the key that selects element i, or "" if none does.
func PickCode(i int) string {
	if i < 0 || i >= len(pickCodes) {
		return ""
	}
	return pickCodes[i]
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionPointerLeft:
		return "Pointer Left"
	case ActionPointerRight:
		return "Pointer Right"
	case ActionPointerUp:
		return "Pointer Up"
	case ActionPointerDown:
		return "Pointer Down"
	case ActionRotate:
		return "Rotate"
	case ActionDialLeft:
		return "Dial Left"
	case ActionDialRight:
		return "Dial Right"
	case ActionPrimary:
		return "Use"
	case ActionOrbit:
		return "Orbit"
	case ActionPick:
		return "Select"
	case ActionAbort:
		return "Abort"
	case ActionQuit:
		return "Quit"
	case ActionNextLock:
		return "Next Lock"
	case ActionPrevLock:
		return "Previous Lock"
	case ActionActivate:
		return "Activate"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help text doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single code.
// Pick keys and arrows are reserved.
func SetSingleBinding(action Action, code string) {
	for c, a := range bindings {
		if a == action && !reservedCode(c) {
			delete(bindings, c)
		}
	}
	if code != "" && !reservedCode(code) {
		bindings[code] = action
	}
}

func reservedCode(code string) bool {
	switch code {
	case "arrow_up", "arrow_down", "arrow_left", "arrow_right", "escape", "quit":
		return true
	}
	for _, c := range pickCodes {
		if c == code {
			return true
		}
	}
	return false
}
