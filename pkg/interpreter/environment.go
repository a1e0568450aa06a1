package interpreter

import (
	"sort"

	"github.com/golang/glog"

	"github.com/agenthands/nlox/pkg/core/value"
)

// binding is a declared variable. A variable declared without an
// initializer is unbound and reads as nil.
type binding struct {
	val   value.Value
	bound bool
}

type frame map[string]binding

// Environment is the scope chain, kept as a stack of frames. frames[0] is
// the global scope; the last frame is the current scope and its parent is
// the frame below it.
type Environment struct {
	frames []frame
}

// NewEnvironment creates an environment holding only the global scope.
func NewEnvironment() *Environment {
	return &Environment{frames: []frame{make(frame)}}
}

// Reset drops every binding and nested scope.
func (e *Environment) Reset() {
	for i := range e.frames {
		e.frames[i] = nil
	}
	e.frames = append(e.frames[:0], make(frame))
}

// Depth is the number of open scopes, including the global one.
func (e *Environment) Depth() int {
	return len(e.frames)
}

// NewScope opens a child of the current scope.
func (e *Environment) NewScope() {
	e.frames = append(e.frames, make(frame))
	if glog.V(7) {
		glog.V(7).Infof("environment: enter scope, depth=%d", len(e.frames))
	}
}

// EndScope closes the current scope and restores its parent.
func (e *Environment) EndScope() error {
	n := len(e.frames)
	if n <= 1 {
		return &RuntimeError{Kind: ErrNoParentScope}
	}
	e.frames[n-1] = nil
	e.frames = e.frames[:n-1]
	if glog.V(7) {
		glog.V(7).Infof("environment: leave scope, depth=%d", len(e.frames))
	}
	return nil
}

// Declare introduces name in the current scope. init may be nil for a
// declaration without initializer. Shadowing an outer scope is allowed;
// declaring twice in the same scope is not.
func (e *Environment) Declare(name string, init *value.Value) error {
	cur := e.frames[len(e.frames)-1]
	if _, ok := cur[name]; ok {
		return &RuntimeError{Kind: ErrDuplicateDeclaration, Name: name}
	}
	if init == nil {
		cur[name] = binding{}
	} else {
		cur[name] = binding{val: *init, bound: true}
	}
	return nil
}

// Assign overwrites the nearest binding of name. It never creates one.
func (e *Environment) Assign(name string, v value.Value) error {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if _, ok := e.frames[i][name]; ok {
			e.frames[i][name] = binding{val: v, bound: true}
			return nil
		}
	}
	return &RuntimeError{Kind: ErrAssignToUndeclared, Name: name}
}

// Lookup reads the nearest binding of name.
func (e *Environment) Lookup(name string) (value.Value, error) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if b, ok := e.frames[i][name]; ok {
			if !b.bound {
				return value.Null, nil
			}
			return b.val, nil
		}
	}
	return value.Null, &RuntimeError{Kind: ErrUndefinedVariable, Name: name}
}

// Snapshot returns the visible bindings; inner scopes shadow outer ones.
func (e *Environment) Snapshot() map[string]value.Value {
	out := make(map[string]value.Value)
	for _, f := range e.frames {
		for name, b := range f {
			out[name] = b.val
		}
	}
	return out
}

// Names returns the visible variable names in sorted order.
func (e *Environment) Names() []string {
	snap := e.Snapshot()
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
