package locks

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
	"lockworks/pkg/engine/sequence"
)

// Dial pad timing.
const (
	dialPadPreroll = 1.0
	basePitch      = 0.8
	pitchStep      = 0.05
)

// DialPadConfig configures a DialPad.
type DialPadConfig struct {
	Buttons              int     `yaml:"buttons"`
	Rounds               int     `yaml:"rounds"`
	SequenceSpeed        float64 `yaml:"sequenceSpeed"`
	FullInputBeforeCheck bool    `yaml:"fullInputBeforeCheck"`
	Preset               []int   `yaml:"preset,omitempty"`
	ShowUserInput        bool    `yaml:"showUserInput"`
	RoundMessage         string  `yaml:"roundMessage"`
	WinMessage           string  `yaml:"winMessage"`
	LoseMessage          string  `yaml:"loseMessage"`
}

// DefaultDialPadConfig returns a nine button pad with five rounds.
func DefaultDialPadConfig() DialPadConfig {
	return DialPadConfig{
		Buttons:       9,
		Rounds:        5,
		SequenceSpeed: 0.5,
		RoundMessage:  "SEQUENCE",
		WinMessage:    "SUCCESS",
		LoseMessage:   "FAIL",
	}
}

// DialPad is a memory lock: it plays a tone sequence and the player repeats
// it. Every round adds one random tone.
type DialPad struct {
	base
	cfg         DialPadConfig
	matcher     *sequence.Matcher
	remembered  []int
	interactive bool
	screen      string
}

// NewDialPad creates an idle dial pad.
func NewDialPad(cfg DialPadConfig) *DialPad {
	return &DialPad{base: newBase(KindDialPad), cfg: cfg}
}

// NotePitch is the playback pitch of a button.
func NotePitch(button int) float64 {
	return basePitch + pitchStep*float64(button)
}

func (d *DialPad) matcherConfig() sequence.Config {
	policy := sequence.ImmediateFail
	if d.cfg.FullInputBeforeCheck {
		policy = sequence.FullInput
	}
	preset := d.cfg.Preset
	if len(preset) == 0 {
		preset = d.remembered
	}
	return sequence.Config{
		SymbolCount: d.cfg.Buttons,
		Rounds:      d.cfg.Rounds,
		Policy:      policy,
		Preset:      preset,
	}
}

// Activate starts the pad. A preset (or a remembered) sequence makes the
// buttons live at once; otherwise one tone is drawn and played back first.
func (d *DialPad) Activate(env lock.Env) (lock.Handle, error) {
	if d.cfg.SequenceSpeed < 0 {
		return lock.Handle{}, lock.Invalid(KindDialPad, "sequenceSpeed", "must not be negative, got %v", d.cfg.SequenceSpeed)
	}
	mc := d.matcherConfig()
	if err := mc.Validate(); err != nil {
		return lock.Handle{}, err
	}

	h := d.session.Begin(env)
	d.matcher = sequence.New(mc)
	d.interactive = false

	initial := 0
	if len(mc.Preset) == 0 {
		initial = 1
	}
	if _, err := d.matcher.Start(initial, d.session.RNG()); err != nil {
		d.session.End()
		return lock.Handle{}, err
	}

	if d.cfg.Rounds <= 1 {
		d.screen = d.cfg.RoundMessage
	} else {
		d.screen = d.roundText()
	}

	if initial > 0 {
		d.playback()
	} else {
		d.interactive = true
	}
	return h, nil
}

func (d *DialPad) roundText() string {
	return fmt.Sprintf("%s %d", d.cfg.RoundMessage, d.matcher.Len())
}

// playback queues the pre-roll, one press per tone and the hand-over.
func (d *DialPad) playback() {
	d.interactive = false
	steps := d.session.Steps()
	steps.Schedule(dialPadPreroll, func() {
		d.screen = d.roundText()
	})
	for i, note := range d.matcher.Sequence() {
		delay := d.cfg.SequenceSpeed
		if i == 0 {
			delay = 0
		}
		steps.Schedule(delay, func() {
			d.session.Emit(lock.EventPress, note, NotePitch(note))
		})
	}
	steps.Schedule(d.cfg.SequenceSpeed, func() {
		d.interactive = true
	})
}

// Tick runs playback and feeds this frame's button picks to the pad.
func (d *DialPad) Tick(dt float64, in input.Sample) lock.Outcome {
	if !d.running() {
		return d.session.Outcome()
	}
	d.session.Steps().Advance(dt)
	for _, b := range in.Picks {
		if !d.interactive || !d.session.Active() {
			break
		}
		if err := d.Press(b); err != nil {
			d.session.Logger().Debug("dial pad press ignored", zap.Int("button", b), zap.Error(err))
		}
	}
	return d.session.Outcome()
}

// Press submits one button.
func (d *DialPad) Press(button int) error {
	if !d.session.Active() {
		return fmt.Errorf("press %d: %w", button, lock.ErrNotActive)
	}
	if !d.interactive {
		return lock.Invalidf("press %d during playback", button)
	}
	if button < 0 || button >= d.cfg.Buttons {
		return lock.Invalidf("button %d outside [0,%d)", button, d.cfg.Buttons)
	}

	d.session.Emit(lock.EventPress, button, NotePitch(button))
	if d.cfg.ShowUserInput {
		if d.matcher.Index() == 0 {
			d.screen = ""
		}
		d.screen += ButtonLabel(button)
	}

	round := d.matcher.Round()
	if _, err := d.matcher.Submit(button); err != nil {
		return err
	}

	switch d.matcher.Outcome() {
	case lock.Lost:
		d.interactive = false
		d.screen = d.cfg.LoseMessage
		d.session.Lose()
	case lock.Won:
		d.interactive = false
		d.screen = d.cfg.WinMessage
		d.session.Win()
	default:
		if d.matcher.Round() > round {
			d.playback()
		}
	}
	return nil
}

// Deactivate stops the pad. A generated single-round sequence is kept for
// the next activation; longer generated sequences are dropped.
func (d *DialPad) Deactivate() {
	if d.matcher != nil && len(d.cfg.Preset) == 0 {
		if d.cfg.Rounds > 1 {
			d.remembered = nil
		} else {
			d.remembered = d.matcher.Sequence()
		}
	}
	d.interactive = false
	d.session.End()
}

// ButtonLabel is the printed face of a button: 1-9 then 0.
func ButtonLabel(button int) string {
	return strconv.Itoa((button + 1) % 10)
}

// Screen returns the pad's display text.
func (d *DialPad) Screen() string {
	return strings.TrimSpace(d.screen)
}

func (d *DialPad) Interactive() bool { return d.interactive }
func (d *DialPad) Buttons() int { return d.cfg.Buttons }
func (d *DialPad) Config() DialPadConfig { return d.cfg }

// Progress returns the input position, the sequence length and the round.
func (d *DialPad) Progress() (index, length, round int) {
	if d.matcher == nil {
		return 0, 0, 0
	}
	return d.matcher.Index(), d.matcher.Len(), d.matcher.Round()
}
