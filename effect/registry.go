package effect

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotFound is returned for unknown effect ids, parameter names, and
// parameter indices.
var ErrNotFound = errors.New("effect: not found")

var errDuplicateEffect = errors.New("effect: duplicate id")

// Descriptor describes a registered effect type.
type Descriptor struct {
	// ID is the unique registry key, used in chain text.
	ID string
	// Category groups effects for listing (dynamics, modulation, ...).
	Category string
	// Name is the human-readable display name.
	Name string
	// Params lists the published parameters in index order.
	Params []ParamDescriptor
}

// Constructor builds a fresh, zero-state instance at the given sample
// rate. Instances are never shared between calls.
type Constructor func(sampleRate float64) (Instance, error)

type registryEntry struct {
	desc   Descriptor
	build  Constructor
	byName map[string]int
}

// Registry maps effect ids to constructors and resolves parameter
// names to indices. A Registry is an explicitly constructed value:
// there is no package-level singleton, so tests and hosts can carry
// independent registries.
type Registry struct {
	entries map[string]*registryEntry
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registryEntry)}
}

// Register associates desc.ID with a constructor. Registration fails
// on a duplicate or empty id, a nil constructor, or descriptor
// parameters whose indices do not run 0..n-1 in order.
//
// As a self-test the constructor is invoked once and the instance is
// driven through one sample, so a unit that would recurse between its
// mono and stereo paths fails here instead of inside a callback.
func (r *Registry) Register(desc Descriptor, build Constructor) error {
	if desc.ID == "" {
		return errors.New("effect: empty id")
	}

	if build == nil {
		return errors.New("effect: nil constructor")
	}

	if _, exists := r.entries[desc.ID]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, desc.ID)
	}

	byName := make(map[string]int, len(desc.Params))

	for i, p := range desc.Params {
		if p.Index != i {
			return fmt.Errorf("effect: %s param %q index %d out of order", desc.ID, p.Name, p.Index)
		}

		if _, dup := byName[p.Name]; dup {
			return fmt.Errorf("effect: %s duplicate param name %q", desc.ID, p.Name)
		}

		byName[p.Name] = i
	}

	if err := selfTest(desc, build); err != nil {
		return err
	}

	r.entries[desc.ID] = &registryEntry{desc: desc, build: build, byName: byName}
	r.order = append(r.order, desc.ID)

	return nil
}

// MustRegister is like Register but panics on error. Intended for
// init-time wiring of built-in rosters.
func (r *Registry) MustRegister(desc Descriptor, build Constructor) {
	if err := r.Register(desc, build); err != nil {
		panic("effect registry: " + err.Error())
	}
}

// Create builds a fresh instance of id at the given sample rate.
func (r *Registry) Create(id string, sampleRate float64) (Instance, error) {
	e := r.entries[id]
	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	return e.build(sampleRate)
}

// ParamIndexByName resolves a parameter name for id to its index.
// Indices are stable across calls and across appended parameters.
func (r *Registry) ParamIndexByName(id, name string) (int, error) {
	e := r.entries[id]
	if e == nil {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	i, ok := e.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q has no param %q", ErrNotFound, id, name)
	}

	return i, nil
}

// Describe returns the descriptor for id.
func (r *Registry) Describe(id string) (Descriptor, error) {
	e := r.entries[id]
	if e == nil {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	return e.desc, nil
}

// List returns all descriptors in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].desc)
	}

	return out
}

const selfTestSampleRate = 48000.0

func selfTest(desc Descriptor, build Constructor) error {
	inst, err := build(selfTestSampleRate)
	if err != nil {
		return fmt.Errorf("effect: %s self-test construction: %w", desc.ID, err)
	}

	if inst.NumParams() != len(desc.Params) {
		return fmt.Errorf("effect: %s publishes %d params, descriptor declares %d",
			desc.ID, inst.NumParams(), len(desc.Params))
	}

	if inst.Latency() < 0 {
		return fmt.Errorf("effect: %s reports negative latency %d", desc.ID, inst.Latency())
	}

	out := inst.ProcessSample(1)
	if math.IsNaN(out) {
		return fmt.Errorf("effect: %s produced NaN from a unit impulse", desc.ID)
	}

	l, rr := inst.ProcessSampleStereo(0, 0)
	if math.IsNaN(l) || math.IsNaN(rr) {
		return fmt.Errorf("effect: %s produced NaN on the stereo path", desc.ID)
	}

	return nil
}
