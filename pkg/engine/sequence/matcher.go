// Package sequence matches player input against a symbol sequence that
// grows by one symbol per round.
package sequence

import (
	"fmt"

	"lockworks/pkg/engine/lock"
)

// Policy decides when a wrong symbol ends the attempt.
type Policy int

const (
	// ImmediateFail loses on the first wrong symbol.
	ImmediateFail Policy = iota
	// FullInput counts mistakes and judges the round after its last symbol.
	FullInput
)

// Result is the verdict for one submitted symbol.
type Result int

const (
	Pending Result = iota // nothing to match against yet
	Correct
	Wrong
)

func (r Result) String() string {
	switch r {
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	default:
		return "pending"
	}
}

// Config describes a sequence lock.
type Config struct {
	SymbolCount int
	Rounds      int
	Policy      Policy
	Preset      []int
}

// Validate checks the config, returning a *lock.ConfigError.
func (c Config) Validate() error {
	if c.SymbolCount < 1 {
		return lock.Invalid("sequence", "symbolCount", "must be at least 1, got %d", c.SymbolCount)
	}
	if c.Rounds < 1 {
		return lock.Invalid("sequence", "rounds", "must be at least 1, got %d", c.Rounds)
	}
	for i, s := range c.Preset {
		if s < 0 || s >= c.SymbolCount {
			return lock.Invalid("sequence", fmt.Sprintf("preset[%d]", i), "symbol %d outside [0,%d)", s, c.SymbolCount)
		}
	}
	return nil
}

// Matcher tracks progress through the sequence.
type Matcher struct {
	cfg      Config
	rng      lock.RNG
	sequence []int
	index    int
	mistakes int
	round    int
	outcome  lock.Outcome
	started  bool
}

// New creates a matcher; call Start before submitting symbols.
func New(cfg Config) *Matcher {
	return &Matcher{cfg: cfg}
}

// Start validates the config and builds the first sequence: the preset if
// one is configured, otherwise initialLength random symbols.
func (m *Matcher) Start(initialLength int, rng lock.RNG) ([]int, error) {
	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}
	if initialLength < 0 {
		return nil, lock.Invalid("sequence", "initialLength", "must not be negative, got %d", initialLength)
	}
	if rng == nil {
		rng = lock.DefaultRNG()
	}

	m.rng = rng
	m.index, m.mistakes = 0, 0
	m.round = 1
	m.outcome = lock.InProgress
	m.started = true

	if len(m.cfg.Preset) > 0 {
		m.sequence = append([]int(nil), m.cfg.Preset...)
		return m.Sequence(), nil
	}
	m.sequence = make([]int, 0, initialLength+m.cfg.Rounds)
	for i := 0; i < initialLength; i++ {
		m.AppendRandomSymbol()
	}
	return m.Sequence(), nil
}

// AppendRandomSymbol extends the sequence by one uniform symbol.
func (m *Matcher) AppendRandomSymbol() []int {
	if m.rng == nil {
		m.rng = lock.DefaultRNG()
	}
	m.sequence = append(m.sequence, m.rng.IntN(m.cfg.SymbolCount))
	return m.Sequence()
}

// Submit matches one symbol against the sequence. An empty sequence yields
// Pending without changing anything. Submitting after the outcome is
// decided, or an out of range symbol, returns an error wrapping
// lock.ErrInvalidOperation.
func (m *Matcher) Submit(symbol int) (Result, error) {
	if !m.started || m.outcome != lock.InProgress {
		return Pending, fmt.Errorf("submit %d: %w", symbol, lock.ErrNotActive)
	}
	if symbol < 0 || symbol >= m.cfg.SymbolCount {
		return Pending, lock.Invalidf("symbol %d outside [0,%d)", symbol, m.cfg.SymbolCount)
	}
	if len(m.sequence) == 0 {
		return Pending, nil
	}

	result := Correct
	if m.sequence[m.index] != symbol {
		result = Wrong
		m.mistakes++
		if m.cfg.Policy == ImmediateFail {
			m.outcome = lock.Lost
			return result, nil
		}
	}

	m.index++
	if m.index >= len(m.sequence) {
		m.finishRound()
	}
	return result, nil
}

func (m *Matcher) finishRound() {
	switch {
	case m.mistakes > 0:
		m.outcome = lock.Lost
	case m.round < m.cfg.Rounds:
		m.round++
		m.index = 0
		m.AppendRandomSymbol()
	default:
		m.outcome = lock.Won
	}
}

// Reset forgets the sequence; the matcher must be started again.
func (m *Matcher) Reset() {
	m.sequence = nil
	m.index, m.mistakes, m.round = 0, 0, 0
	m.outcome = lock.InProgress
	m.started = false
}

// Sequence returns a copy of the current sequence.
func (m *Matcher) Sequence() []int {
	return append([]int(nil), m.sequence...)
}

func (m *Matcher) Len() int { return len(m.sequence) }
func (m *Matcher) Index() int { return m.index }
func (m *Matcher) Mistakes() int { return m.mistakes }
func (m *Matcher) Round() int { return m.round }
func (m *Matcher) Rounds() int { return m.cfg.Rounds }
func (m *Matcher) Outcome() lock.Outcome { return m.outcome }
func (m *Matcher) Config() Config { return m.cfg }
