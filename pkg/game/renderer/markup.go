package renderer

import (
	"fmt"
	"regexp"

	"github.com/leonelquinteros/gotext"
)

// Markup is FUNCTION{content}. GT{KEY} is replaced by its translation
// before any styling, so it may sit inside another function, as in
// DENIED{GT{MSG_FAILED}}.
var (
	markupRegex = regexp.MustCompile(`([A-Z][A-Z0-9_]*)\{([^{}]*)\}`)
	gtRegex     = regexp.MustCompile(`GT\{([A-Za-z0-9_]+)\}`)
)

// dynamicGet is used for runtime translation key lookups. Keeping it in a
// variable avoids go vet's non-constant format string check.
var dynamicGet = gotext.Get

var markupStyles = map[string]TextStyle{
	"TITLE":  StyleTitle,
	"LOCK":   StyleLock,
	"ITEM":   StyleItem,
	"ACTION": StyleAction,
	"KEY":    StyleActionShort,
	"DENIED": StyleDenied,
	"OK":     StyleSuccess,
	"HAZARD": StyleHazard,
	"LIT":    StyleLit,
	"SUBTLE": StyleSubtle,
}

// Segment is a run of text in one style.
type Segment struct {
	Text  string
	Style TextStyle
}

// Translate replaces every GT{KEY} with its translation.
func Translate(msg string) string {
	return gtRegex.ReplaceAllStringFunc(msg, func(m string) string {
		return dynamicGet(gtRegex.FindStringSubmatch(m)[1])
	})
}

// Parse translates msg and splits it into styled segments. Unknown
// functions are kept as plain text.
func Parse(msg string) []Segment {
	msg = Translate(msg)

	var out []Segment
	last := 0
	for _, m := range markupRegex.FindAllStringSubmatchIndex(msg, -1) {
		style, ok := markupStyles[msg[m[2]:m[3]]]
		if !ok {
			continue
		}
		if m[0] > last {
			out = append(out, Segment{Text: msg[last:m[0]], Style: StyleNormal})
		}
		out = append(out, Segment{Text: msg[m[4]:m[5]], Style: style})
		last = m[1]
	}
	if last < len(msg) {
		out = append(out, Segment{Text: msg[last:], Style: StyleNormal})
	}
	return out
}

// Expand formats msg and renders every segment through style.
func Expand(style func(text string, s TextStyle) string, msg string, args ...any) string {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	var out string
	for _, seg := range Parse(msg) {
		if seg.Style == StyleNormal {
			out += seg.Text
			continue
		}
		out += style(seg.Text, seg.Style)
	}
	return out
}

// Markup wraps text in the markup function for style s, the inverse of
// Parse.
func Markup(text string, s TextStyle) string {
	for fn, style := range markupStyles {
		if style == s {
			return fn + "{" + text + "}"
		}
	}
	return text
}

// Plain formats msg with the markup stripped.
func Plain(msg string, args ...any) string {
	return Expand(func(text string, _ TextStyle) string { return text }, msg, args...)
}
