package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockworks/pkg/engine/lock"
	"lockworks/pkg/game/state"
)

func TestParse_Segments(t *testing.T) {
	got := Parse("LOCK{Safe} is DENIED{jammed}!")
	assert.Equal(t, []Segment{
		{Text: "Safe", Style: StyleLock},
		{Text: " is ", Style: StyleNormal},
		{Text: "jammed", Style: StyleDenied},
		{Text: "!", Style: StyleNormal},
	}, got)
}

func TestParse_UnknownFunctionIsText(t *testing.T) {
	got := Parse("WHAT{x}")
	assert.Equal(t, []Segment{{Text: "WHAT{x}", Style: StyleNormal}}, got)
}

func TestParse_TranslatesInsideFunctions(t *testing.T) {
	old := dynamicGet
	t.Cleanup(func() { dynamicGet = old })
	dynamicGet = func(key string, _ ...interface{}) string {
		if key == "MSG_FAIL" {
			return "The lock holds."
		}
		return key
	}

	got := Parse("DENIED{GT{MSG_FAIL}}")
	assert.Equal(t, []Segment{{Text: "The lock holds.", Style: StyleDenied}}, got)
}

func TestExpand_StylesSegments(t *testing.T) {
	out := Expand(func(text string, s TextStyle) string {
		if s == StyleItem {
			return "[" + text + "]"
		}
		return text
	}, "need ITEM{%s} x%d", "lockpicks", 2)
	assert.Equal(t, "need [lockpicks] x2", out)
	assert.Equal(t, "need lockpicks", Plain("need ITEM{lockpicks}"))
}

func TestFormatText_WithoutRenderer(t *testing.T) {
	SetRenderer(nil)
	assert.Equal(t, "open Safe", FormatText("open LOCK{%s}", "Safe"))
}

func TestEventPresenter_MessagesAndFlash(t *testing.T) {
	g := &state.Game{}
	p := NewEventPresenter(g, nil)

	p.OnVisualEvent(lock.Event{Kind: lock.EventPress, Target: 3, Value: 440})
	ev, ok := p.Flash()
	require.True(t, ok)
	assert.Equal(t, 3, ev.Target)

	p.Advance(FlashTime / 2)
	_, ok = p.Flash()
	assert.True(t, ok)
	p.Advance(FlashTime)
	_, ok = p.Flash()
	assert.False(t, ok)

	p.OnVisualEvent(lock.Event{Kind: lock.EventBreak, Target: -1})
	p.OnVisualEvent(lock.Event{Kind: lock.EventTurn, Target: -1})
	assert.Equal(t, []string{"HAZARD{GT{MSG_PICK_BROKE}}"}, g.Messages, "turns are not logged")
	assert.True(t, p.Turning())
	p.Advance(0.1)
	assert.False(t, p.Turning())
}

func TestMarkup_RoundTrips(t *testing.T) {
	for _, s := range []TextStyle{StyleLock, StyleDenied, StyleLit, StyleActionShort} {
		got := Parse(Markup("x", s))
		assert.Equal(t, []Segment{{Text: "x", Style: s}}, got)
	}
	assert.Equal(t, "x", Markup("x", StyleNormal))
}
