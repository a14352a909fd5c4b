package state

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
	"lockworks/pkg/game/activator"
	"lockworks/pkg/game/config"
	"lockworks/pkg/game/inventory"
)

const maxMessages = 5

// Game is the play state of one scene: its locks, the one the player has
// selected, the shared inventory and the message log.
//
// Messages are stored with markup (GT{}, LOCK{}, ITEM{}...) and formatted by
// the renderer when drawn.
type Game struct {
	Scene     *config.File
	Locks     []*activator.Activator
	Selected  int
	Inventory *inventory.Inventory

	Opened   mapset.Set[string]
	Failures map[string]int

	Messages []string

	Quit bool
}

// New builds every lock of the scene. The shared options (logger, RNG,
// presenter) apply to every activator; the inventory and the outcome
// handlers are added here.
func New(scene *config.File, shared ...activator.Option) (*Game, error) {
	g := &Game{
		Scene:     scene,
		Inventory: inventory.New(scene.Inventory),
		Opened:    mapset.New[string](),
		Failures:  make(map[string]int),
		Messages:  make([]string, 0),
	}
	opts := append([]activator.Option(nil), shared...)
	opts = append(opts,
		activator.WithTools(g.Inventory),
		activator.OnWin(g.onWin),
		activator.OnLose(g.onLose),
	)
	acts, err := scene.Activators(opts...)
	if err != nil {
		return nil, err
	}
	g.Locks = acts
	return g, nil
}

func (g *Game) onWin(a *activator.Activator) {
	g.Opened.Put(a.Name())
	g.AddMessage(fmt.Sprintf("LOCK{%s} GT{MSG_OPENED}", g.Title(a)))
	if g.AllOpened() {
		g.AddMessage("GT{MSG_ALL_OPENED}")
	}
}

func (g *Game) onLose(a *activator.Activator) {
	g.Failures[a.Name()]++
	g.AddMessage(fmt.Sprintf("LOCK{%s} DENIED{GT{MSG_FAILED}}", g.Title(a)))
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	g.Messages = append(g.Messages, msg)

	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}

// Current returns the selected lock
func (g *Game) Current() *activator.Activator {
	if len(g.Locks) == 0 {
		return nil
	}
	return g.Locks[g.Selected]
}

// Title is the display name of a lock.
func (g *Game) Title(a *activator.Activator) string {
	if d, ok := g.Scene.Lookup(a.Name()); ok {
		return d.DisplayName()
	}
	return a.Name()
}

// Select moves the selection to lock i, wrapping around. A lock that was
// being played is put away first.
func (g *Game) Select(i int) {
	n := len(g.Locks)
	if n == 0 {
		return
	}
	i = ((i % n) + n) % n
	if i == g.Selected {
		return
	}
	if cur := g.Current(); cur.Visible() {
		cur.Deactivate()
	}
	g.Selected = i
}

// Next selects the following lock
func (g *Game) Next() { g.Select(g.Selected + 1) }

// Prev selects the previous lock
func (g *Game) Prev() { g.Select(g.Selected - 1) }

// Activate starts the selected lock. Refusals are logged as messages and
// returned.
func (g *Game) Activate() error {
	cur := g.Current()
	if cur == nil {
		return nil
	}
	err := cur.Interact()
	switch {
	case err == nil:
	case errors.Is(err, activator.ErrBusy):
		return nil
	case errors.Is(err, activator.ErrMissingTool):
		g.AddMessage(fmt.Sprintf("DENIED{GT{MSG_NEED_TOOL}} ITEM{%s}", cur.RequiredTool()))
	default:
		g.AddMessage(fmt.Sprintf("LOCK{%s} DENIED{%s}", g.Title(cur), err))
	}
	return err
}

// Tick advances the selected lock by dt seconds.
func (g *Game) Tick(dt float64, in input.Sample) lock.Outcome {
	cur := g.Current()
	if cur == nil {
		return lock.InProgress
	}
	return cur.Tick(dt, in)
}

// Apply runs the meta actions drained from an input sampler.
func (g *Game) Apply(actions []input.Action) {
	for _, act := range actions {
		switch act {
		case input.ActionQuit:
			g.Quit = true
		case input.ActionNextLock:
			g.Next()
		case input.ActionPrevLock:
			g.Prev()
		case input.ActionActivate:
			_ = g.Activate()
		}
	}
}

// IsOpened reports whether the named lock has been opened
func (g *Game) IsOpened(name string) bool {
	return g.Opened.Has(name)
}

// AllOpened reports whether every lock in the scene has been opened.
func (g *Game) AllOpened() bool {
	return g.Opened.Size() == len(g.Locks)
}
