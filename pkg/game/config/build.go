package config

import (
	"fmt"

	"lockworks/pkg/engine/lock"
	"lockworks/pkg/game/activator"
	"lockworks/pkg/game/locks"
)

// Game builds the lock described by d, idle and ready to activate.
func (d LockDef) Game() (lock.Game, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	switch d.Kind {
	case locks.KindDialPad:
		return locks.NewDialPad(orDefault(d.DialPad, locks.DefaultDialPadConfig)), nil
	case locks.KindCylinder:
		return locks.NewCylinder(orDefault(d.Cylinder, locks.DefaultCylinderConfig)), nil
	case locks.KindLockpick:
		return locks.NewLockpick(orDefault(d.Lockpick, locks.DefaultLockpickConfig)), nil
	case locks.KindSafeDial:
		return locks.NewSafeDial(orDefault(d.SafeDial, locks.DefaultSafeDialConfig)), nil
	case locks.KindComboDial:
		return locks.NewComboDial(orDefault(d.ComboDial, locks.DefaultComboDialConfig)), nil
	case locks.KindWirePanel:
		return locks.NewWirePanel(orDefault(d.WirePanel, locks.DefaultWirePanelConfig)), nil
	case locks.KindBomb:
		return locks.NewBomb(orDefault(d.Bomb, locks.DefaultBombConfig)), nil
	}
	return nil, lock.Invalid(d.Name, "kind", "unknown kind %q", d.Kind)
}

func orDefault[T any](cfg *T, def func() T) T {
	if cfg != nil {
		return *cfg
	}
	return def()
}

// Activator builds the lock and wraps it with the options the definition
// asks for. Shared options (logger, RNG, presenter, inventory) come first
// so the definition can override them.
func (d LockDef) Activator(shared ...activator.Option) (*activator.Activator, error) {
	g, err := d.Game()
	if err != nil {
		return nil, err
	}
	opts := append([]activator.Option(nil), shared...)
	if !d.IsLocked() {
		opts = append(opts, activator.Unlocked())
	}
	if d.AlwaysShow {
		opts = append(opts, activator.AlwaysShow())
	}
	if d.RequiredTool != "" {
		opts = append(opts, activator.WithRequiredTool(d.RequiredTool))
	}
	if d.DeactivateDelay != nil {
		opts = append(opts, activator.WithDeactivateDelay(*d.DeactivateDelay))
	}
	return activator.New(d.Name, g, opts...), nil
}

// Activators builds every lock in the scene, in file order.
func (f *File) Activators(shared ...activator.Option) ([]*activator.Activator, error) {
	out := make([]*activator.Activator, 0, len(f.Locks))
	for _, d := range f.Locks {
		a, err := d.Activator(shared...)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", d.Name, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// Check activates and deactivates every lock once against a throwaway
// environment, returning the first parameter error of each lock by name.
func (f *File) Check(rng lock.RNG) map[string]error {
	problems := make(map[string]error)
	for _, d := range f.Locks {
		g, err := d.Game()
		if err == nil {
			_, err = g.Activate(lock.Env{RNG: rng})
			g.Deactivate()
		}
		if err != nil {
			problems[d.Name] = err
		}
	}
	return problems
}
