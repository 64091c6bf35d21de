package blur

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned when the native binding failed to load at
	// startup. Every call degrades to this error afterwards.
	ErrNotLoaded = errors.New("native composition binding not loaded")
	// ErrEntryPointMissing is returned when the binding is loaded but an
	// expected entry point cannot be resolved at call time.
	ErrEntryPointMissing = errors.New("native entry point missing")
	// ErrWindowNotFound is returned when no top-level window carries the
	// marker title.
	ErrWindowNotFound = errors.New("no window with marker title")
)

// Binding performs the native lookup-by-title and composition call.
type Binding interface {
	ApplyEffect(title string, mode int) error
}

// HandleBinding is implemented by bindings that can skip the title lookup
// when the caller already knows the native handle.
type HandleBinding interface {
	ApplyEffectToHandle(handle uintptr, mode int) error
}

// Library is the result of the one-time native initialisation. The zero
// value is a library that was never loaded.
type Library struct {
	binding Binding
	loadErr error
}

// Loaded wraps a working binding.
func Loaded(b Binding) Library {
	if b == nil {
		return NotLoaded(errors.New("nil binding"))
	}
	return Library{binding: b}
}

// NotLoaded records why the binding could not be loaded.
func NotLoaded(err error) Library {
	if err == nil {
		err = ErrNotLoaded
	}
	return Library{loadErr: err}
}

func (l Library) IsLoaded() bool {
	return l.binding != nil
}

// Err returns nil for a loaded library and an error wrapping ErrNotLoaded
// otherwise.
func (l Library) Err() error {
	if l.binding != nil {
		return nil
	}
	if l.loadErr == nil || errors.Is(l.loadErr, ErrNotLoaded) {
		return ErrNotLoaded
	}
	return fmt.Errorf("%w: %v", ErrNotLoaded, l.loadErr)
}

func (l Library) applyEffect(title string, mode int) error {
	if err := l.Err(); err != nil {
		return err
	}
	return l.binding.ApplyEffect(title, mode)
}

func (l Library) handleBinding() (HandleBinding, bool) {
	if l.binding == nil {
		return nil, false
	}
	hb, ok := l.binding.(HandleBinding)
	return hb, ok
}
