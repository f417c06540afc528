// env.go — the two-tier variable environment.
//
// An Environment is an ordered pair (locals, globals) of frames. Lookup and
// assignment consult locals first, then globals; a name must have been
// declared (as a formal, a declared local, or a top-level global) before it
// can be read or written — there is no implicit declaration.
//
// Frames are functionally updated: once a frame has been placed inside an
// Environment it is never mutated, and every rebind yields a fresh frame.
// Evaluation order is therefore fully determined by the explicit chaining of
// returned environments; no evaluation step can observe a sibling's
// in-progress changes. Frames are insertion-ordered (declaration order), so
// Snapshot is deterministic for the REPL dump and for tests.
package lullabyte

import "github.com/emirpasic/gods/maps/linkedhashmap"

// frame is one name→Value mapping. The zero frame is invalid; build frames
// with newFrame. put is only legal while a frame is being constructed and
// has not yet been placed in an Environment; with is the functional update
// used everywhere else.
type frame struct {
	m *linkedhashmap.Map
}

func newFrame() frame {
	return frame{m: linkedhashmap.New()}
}

func (f frame) get(name string) (Value, bool) {
	v, ok := f.m.Get(name)
	if !ok {
		return Value{}, false
	}
	return v.(Value), true
}

func (f frame) has(name string) bool {
	_, ok := f.m.Get(name)
	return ok
}

func (f frame) size() int { return f.m.Size() }

// put binds name in place. Construction-time only.
func (f frame) put(name string, v Value) {
	f.m.Put(name, v)
}

// with returns a copy of f with name rebound, preserving insertion order.
func (f frame) with(name string, v Value) frame {
	out := newFrame()
	f.m.Each(func(k, old any) {
		if k.(string) == name {
			out.m.Put(k, v)
		} else {
			out.m.Put(k, old)
		}
	})
	return out
}

// each iterates bindings in insertion order.
func (f frame) each(fn func(name string, v Value)) {
	f.m.Each(func(k, v any) { fn(k.(string), v.(Value)) })
}

// Environment pairs the current call's locals with the program globals.
type Environment struct {
	locals  frame
	globals frame
}

// NewEnvironment builds an environment from two frames. Both frames are
// treated as frozen from this point on.
func NewEnvironment(locals, globals frame) Environment {
	return Environment{locals: locals, globals: globals}
}

// Lookup resolves name, checking locals before globals.
func (e Environment) Lookup(name string) (Value, error) {
	if v, ok := e.locals.get(name); ok {
		return v, nil
	}
	if v, ok := e.globals.get(name); ok {
		return v, nil
	}
	return Value{}, failf(ErrUndeclaredIdentifier, "undeclared identifier %q", name)
}

// Assign rebinds an already-declared name, shadowing in the same order as
// Lookup, and returns the updated environment. The receiver is unchanged.
func (e Environment) Assign(name string, v Value) (Environment, error) {
	if e.locals.has(name) {
		return Environment{locals: e.locals.with(name, v), globals: e.globals}, nil
	}
	if e.globals.has(name) {
		return Environment{locals: e.locals, globals: e.globals.with(name, v)}, nil
	}
	return Environment{}, failf(ErrUndeclaredIdentifier, "undeclared identifier %q", name)
}

// Binding is one entry of a Snapshot.
type Binding struct {
	Name  string
	Value Value
}

// Snapshot returns the visible bindings in declaration order, locals first.
// Shadowed globals are omitted.
func (e Environment) Snapshot() []Binding {
	out := make([]Binding, 0, e.locals.size()+e.globals.size())
	e.locals.each(func(name string, v Value) {
		out = append(out, Binding{Name: name, Value: v})
	})
	e.globals.each(func(name string, v Value) {
		if !e.locals.has(name) {
			out = append(out, Binding{Name: name, Value: v})
		}
	})
	return out
}
