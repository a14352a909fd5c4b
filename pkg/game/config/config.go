// Package config loads scene files: the inventory and the locks a scene is
// made of, in YAML.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"lockworks/pkg/engine/lock"
	"lockworks/pkg/game/locks"
)

//go:embed default.yaml
var defaultScene []byte

// File is one scene.
type File struct {
	Seed      *uint64        `yaml:"seed,omitempty"`
	Inventory map[string]int `yaml:"inventory,omitempty"`
	Locks     []LockDef      `yaml:"locks"`
}

// LockDef is one lock in a scene. At most one parameter block may be set
// and it must match Kind; without one the kind's defaults are used.
type LockDef struct {
	Name            string   `yaml:"name"`
	Kind            string   `yaml:"kind"`
	Title           string   `yaml:"title,omitempty"`
	Locked          *bool    `yaml:"locked,omitempty"`
	AlwaysShow      bool     `yaml:"alwaysShow,omitempty"`
	RequiredTool    string   `yaml:"requiredTool,omitempty"`
	DeactivateDelay *float64 `yaml:"deactivateDelay,omitempty"`

	DialPad   *locks.DialPadConfig   `yaml:"dialpad,omitempty"`
	Cylinder  *locks.CylinderConfig  `yaml:"cylinder,omitempty"`
	Lockpick  *locks.LockpickConfig  `yaml:"lockpick,omitempty"`
	SafeDial  *locks.SafeDialConfig  `yaml:"safedial,omitempty"`
	ComboDial *locks.ComboDialConfig `yaml:"combodial,omitempty"`
	WirePanel *locks.WirePanelConfig `yaml:"wirepanel,omitempty"`
	Bomb      *locks.BombConfig      `yaml:"bomb,omitempty"`
}

// UnmarshalYAML decodes a lock definition strictly, filling each parameter
// block in over the kind's defaults.
func (d *LockDef) UnmarshalYAML(value *yaml.Node) error {
	type plain LockDef
	if err := decodeStrict(value, (*plain)(d)); err != nil {
		return err
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, body := value.Content[i].Value, value.Content[i+1]
		var err error
		switch key {
		case locks.KindDialPad:
			d.DialPad, err = overDefaults(body, locks.DefaultDialPadConfig())
		case locks.KindCylinder:
			d.Cylinder, err = overDefaults(body, locks.DefaultCylinderConfig())
		case locks.KindLockpick:
			d.Lockpick, err = overDefaults(body, locks.DefaultLockpickConfig())
		case locks.KindSafeDial:
			d.SafeDial, err = overDefaults(body, locks.DefaultSafeDialConfig())
		case locks.KindComboDial:
			d.ComboDial, err = overDefaults(body, locks.DefaultComboDialConfig())
		case locks.KindWirePanel:
			d.WirePanel, err = overDefaults(body, locks.DefaultWirePanelConfig())
		case locks.KindBomb:
			d.Bomb, err = overDefaults(body, locks.DefaultBombConfig())
		}
		if err != nil {
			return fmt.Errorf("lock %q %s: %w", d.Name, key, err)
		}
	}
	return nil
}

func overDefaults[T any](body *yaml.Node, cfg T) (*T, error) {
	if err := decodeStrict(body, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decodeStrict decodes a node, rejecting unknown fields.
func decodeStrict(node *yaml.Node, out any) error {
	b, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Parse decodes and validates a scene.
func Parse(b []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, lock.Invalid("", "locks", "scene is empty")
		}
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads a scene file.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Default returns the built-in scene with one lock of every kind.
func Default() *File {
	f, err := Parse(defaultScene)
	if err != nil {
		panic(fmt.Sprintf("built-in scene: %v", err))
	}
	return f
}

// Validate checks the scene's structure. Lock parameters are checked when
// each lock activates.
func (f *File) Validate() error {
	if len(f.Locks) == 0 {
		return lock.Invalid("", "locks", "a scene needs at least one lock")
	}
	for tool, n := range f.Inventory {
		if n < 0 {
			return lock.Invalid("", "inventory."+tool, "count must not be negative, got %d", n)
		}
	}
	seen := make(map[string]bool, len(f.Locks))
	for i, d := range f.Locks {
		if d.Name == "" {
			return lock.Invalid("", fmt.Sprintf("locks[%d].name", i), "must not be empty")
		}
		if seen[d.Name] {
			return lock.Invalid(d.Name, "name", "duplicate lock name")
		}
		seen[d.Name] = true
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the kind and the parameter blocks.
func (d LockDef) Validate() error {
	if !slices.Contains(locks.Kinds(), d.Kind) {
		return lock.Invalid(d.Name, "kind", "unknown kind %q", d.Kind)
	}
	blocks := d.blocks()
	if len(blocks) > 1 {
		return lock.Invalid(d.Name, "params", "only one parameter block allowed, got %v", blocks)
	}
	if len(blocks) == 1 && blocks[0] != d.Kind {
		return lock.Invalid(d.Name, blocks[0], "block does not match kind %q", d.Kind)
	}
	if d.DeactivateDelay != nil && *d.DeactivateDelay < 0 {
		return lock.Invalid(d.Name, "deactivateDelay", "must not be negative, got %v", *d.DeactivateDelay)
	}
	return nil
}

func (d LockDef) blocks() []string {
	var out []string
	for kind, set := range map[string]bool{
		locks.KindDialPad:   d.DialPad != nil,
		locks.KindCylinder:  d.Cylinder != nil,
		locks.KindLockpick:  d.Lockpick != nil,
		locks.KindSafeDial:  d.SafeDial != nil,
		locks.KindComboDial: d.ComboDial != nil,
		locks.KindWirePanel: d.WirePanel != nil,
		locks.KindBomb:      d.Bomb != nil,
	} {
		if set {
			out = append(out, kind)
		}
	}
	slices.Sort(out)
	return out
}

// IsLocked reports whether the lock starts locked (the default).
func (d LockDef) IsLocked() bool {
	return d.Locked == nil || *d.Locked
}

// DisplayName is the title, or the name when no title is set.
func (d LockDef) DisplayName() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// Lookup returns the lock definition with the given name.
func (f *File) Lookup(name string) (LockDef, bool) {
	for _, d := range f.Locks {
		if d.Name == name {
			return d, true
		}
	}
	return LockDef{}, false
}

// Names lists the lock names in file order.
func (f *File) Names() []string {
	out := make([]string, 0, len(f.Locks))
	for _, d := range f.Locks {
		out = append(out, d.Name)
	}
	return out
}

// RNG returns the scene's random source: seeded when the scene or the
// override sets a seed.
func (f *File) RNG(override *uint64) lock.RNG {
	switch {
	case override != nil:
		return lock.NewSeededRNG(*override)
	case f.Seed != nil:
		return lock.NewSeededRNG(*f.Seed)
	default:
		return lock.DefaultRNG()
	}
}
