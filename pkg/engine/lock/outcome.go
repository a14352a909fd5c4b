// Package lock holds the state machine shared by every lock minigame:
// outcomes, session phases, visual events, the timed step queue and the
// contracts a host engine implements to receive results.
package lock

// Outcome is the result reported by a lock after each tick.
type Outcome int

const (
	InProgress Outcome = iota
	Won
	Lost
)

// String returns a human-readable outcome name
func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends the session.
func (o Outcome) Terminal() bool {
	return o == Won || o == Lost
}

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseWon
	PhaseLost
)

// String returns a human-readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Outcome maps the phase onto the outcome a tick reports.
func (p Phase) Outcome() Outcome {
	switch p {
	case PhaseWon:
		return Won
	case PhaseLost:
		return Lost
	default:
		return InProgress
	}
}
