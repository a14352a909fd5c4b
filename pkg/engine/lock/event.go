package lock

// EventKind identifies a presentation cue emitted by a lock.
type EventKind int

const (
	EventPress EventKind = iota
	EventClick
	EventReset
	EventBreak
	EventWin
	EventFail
	EventTurn
	EventBeep
	EventDeactivate
)

// String returns the event name used in logs
func (k EventKind) String() string {
	switch k {
	case EventPress:
		return "press"
	case EventClick:
		return "click"
	case EventReset:
		return "reset"
	case EventBreak:
		return "break"
	case EventWin:
		return "win"
	case EventFail:
		return "fail"
	case EventTurn:
		return "turn"
	case EventBeep:
		return "beep"
	case EventDeactivate:
		return "deactivate"
	default:
		return "unknown"
	}
}

// Event is a visual or audio cue for the host. Target is the symbol, plug or
// wire the cue refers to (-1 when none); Value carries pitch, volume or
// duration depending on Kind.
type Event struct {
	Kind   EventKind
	Target int
	Value  float64
}

// Presenter receives presentation cues. Implementations must not call back
// into the lock that emitted the event.
type Presenter interface {
	OnVisualEvent(ev Event)
}

// PresenterFunc adapts a plain function to the Presenter interface.
type PresenterFunc func(ev Event)

// OnVisualEvent calls f(ev)
func (f PresenterFunc) OnVisualEvent(ev Event) {
	f(ev)
}

// Bridge receives the single terminal outcome of a session.
type Bridge interface {
	OnWin()
	OnLose()
}

type nopPresenter struct{}

func (nopPresenter) OnVisualEvent(Event) {}

type nopBridge struct{}

func (nopBridge) OnWin()  {}
func (nopBridge) OnLose() {}
