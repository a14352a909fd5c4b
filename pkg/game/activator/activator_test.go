package activator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"lockworks/pkg/engine/input"
	"lockworks/pkg/engine/lock"
	"lockworks/pkg/game/inventory"
	"lockworks/pkg/game/locks"
)

func pad(preset ...int) *locks.DialPad {
	cfg := locks.DefaultDialPadConfig()
	cfg.Buttons = 4
	cfg.Rounds = 1
	cfg.Preset = preset
	return locks.NewDialPad(cfg)
}

type tally struct {
	wins, losses int
}

func (t *tally) options() []Option {
	return []Option{
		OnWin(func(*Activator) { t.wins++ }),
		OnLose(func(*Activator) { t.losses++ }),
	}
}

func TestActivator_WinRunsHandlersAfterDelay(t *testing.T) {
	var got tally
	a := New("door", pad(1, 2), got.options()...)

	require.NoError(t, a.Interact())
	assert.True(t, a.Playing())

	out := a.Tick(0.1, input.Sample{Picks: []int{1, 2}})
	assert.Equal(t, lock.Won, out)
	assert.False(t, a.Locked())
	assert.True(t, a.Closing())
	assert.Equal(t, 0, got.wins, "handlers wait for the deactivate delay")

	a.Tick(0.5, input.Sample{})
	assert.True(t, a.Visible())
	a.Tick(0.5, input.Sample{})
	assert.Equal(t, 1, got.wins)
	assert.False(t, a.Visible())
	assert.Equal(t, lock.PhaseIdle, a.Game().Session().Phase())
}

func TestActivator_UnlockedRunsWinHandlersImmediately(t *testing.T) {
	var got tally
	a := New("door", pad(1), append(got.options(), Unlocked())...)

	require.NoError(t, a.Interact())
	assert.Equal(t, 1, got.wins)
	assert.False(t, a.Visible())
	assert.Equal(t, lock.PhaseIdle, a.Game().Session().Phase(), "an unlocked activator never starts its lock")
}

func TestActivator_LoseKeepsItLocked(t *testing.T) {
	var got tally
	a := New("safe", pad(1, 2), append(got.options(), WithDeactivateDelay(0))...)

	require.NoError(t, a.Interact())
	a.Tick(0.1, input.Sample{Picks: []int{3}})
	a.Tick(0.1, input.Sample{})

	assert.Equal(t, 1, got.losses)
	assert.True(t, a.Locked())
	assert.False(t, a.Visible())

	require.NoError(t, a.Interact(), "a failed lock can be tried again")
	assert.True(t, a.Playing())
}

func TestActivator_BusyWhileShowing(t *testing.T) {
	a := New("door", pad(1))
	require.NoError(t, a.Interact())
	assert.ErrorIs(t, a.Interact(), ErrBusy)
}

func TestActivator_AbortLeavesWithoutOutcome(t *testing.T) {
	var got tally
	a := New("door", pad(1), got.options()...)
	require.NoError(t, a.Interact())

	out := a.Tick(0.1, input.Sample{Pressed: input.ButtonAbort})
	assert.Equal(t, lock.InProgress, out)
	assert.False(t, a.Visible())
	assert.True(t, a.Locked())
	assert.Zero(t, got.wins+got.losses)
}

func TestActivator_DeactivateFlushesPendingOutcome(t *testing.T) {
	var got tally
	a := New("door", pad(1), got.options()...)
	require.NoError(t, a.Interact())
	a.Tick(0.1, input.Sample{Picks: []int{1}})

	a.Deactivate()
	assert.Equal(t, 1, got.wins)
	assert.False(t, a.Visible())
}

func TestActivator_RequiredToolFromLock(t *testing.T) {
	inv := inventory.New(map[string]int{"lockpicks": 0})
	a := New("gate", locks.NewLockpick(locks.DefaultLockpickConfig()), WithTools(inv))

	assert.Equal(t, "lockpicks", a.RequiredTool())
	assert.ErrorIs(t, a.Interact(), ErrMissingTool)
	assert.False(t, a.Visible())

	inv.Add("lockpicks", 1)
	require.NoError(t, a.Interact())
	assert.True(t, a.Playing())
}

func TestActivator_RequiredToolOverride(t *testing.T) {
	inv := inventory.New(map[string]int{"keycard": 0})
	a := New("vault", pad(1), WithTools(inv), WithRequiredTool("keycard"))
	assert.ErrorIs(t, a.Interact(), ErrMissingTool)
}

func TestActivator_ConfigErrorSurfaces(t *testing.T) {
	cfg := locks.DefaultBombConfig()
	cfg.Wires = 1
	a := New("bomb", locks.NewBomb(cfg))

	err := a.Interact()
	require.Error(t, err)
	assert.True(t, lock.IsConfigError(err))
	assert.False(t, a.Visible())
}

func TestActivator_AlwaysShow(t *testing.T) {
	a := New("button", pad(1), AlwaysShow(), WithDeactivateDelay(0))
	require.NoError(t, a.Interact())
	a.Tick(0.1, input.Sample{Picks: []int{0}})
	a.Tick(0.1, input.Sample{})

	assert.True(t, a.Visible())
	assert.False(t, a.Playing())
	assert.NoError(t, a.Interact(), "an idle lock that stays on screen is not busy")
}

func TestActivator_LogsTransitions(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	a := New("door", pad(1), WithLogger(zap.New(core)), WithDeactivateDelay(0))

	require.NoError(t, a.Interact())
	a.Tick(0.1, input.Sample{Picks: []int{1}})
	a.Tick(0.1, input.Sample{})

	assert.Equal(t, 1, logs.FilterMessage("lock shown").Len())
	assert.Equal(t, 1, logs.FilterMessage("unlocked").Len())
	entry := logs.FilterMessage("unlocked").All()[0]
	assert.Equal(t, "door", entry.ContextMap()["activator"])
}
