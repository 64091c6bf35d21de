package wm

import (
	"fmt"

	"winblur/pkg/blur"
	"winblur/pkg/core"
	"winblur/pkg/effect"
)

// DefaultTintColor is the ABGR gradient colour passed with the accent
// policy. Acrylic needs a non-zero alpha to render.
const DefaultTintColor uint32 = 0x01000000

// Options configures the native backend.
type Options struct {
	TintColor uint32
}

// Manager resolves windows through the platform backend and implements
// blur.Binding and blur.HandleBinding.
type Manager struct {
	wm  WindowManager
	log core.Logger
}

// NewManager creates the platform backend for the running OS
func NewManager(opts Options, log core.Logger) (*Manager, error) {
	if opts.TintColor == 0 {
		opts.TintColor = DefaultTintColor
	}

	backend, err := newPlatform(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize window composition support: %w", err)
	}

	log.Info("Window manager initialized", "name", backend.Name())
	return newManager(backend, log), nil
}

func newManager(backend WindowManager, log core.Logger) *Manager {
	return &Manager{wm: backend, log: log}
}

// Load performs the one-time native initialisation. A failure is logged
// here once and carried in the returned Library.
func Load(opts Options, log core.Logger) blur.Library {
	m, err := NewManager(opts, log)
	if err != nil {
		log.Error("Unable to load native composition binding", err)
		return blur.NotLoaded(err)
	}
	return blur.Loaded(m)
}

// ApplyEffect finds the window titled title and applies mode to it.
func (m *Manager) ApplyEffect(title string, mode int) error {
	w, err := m.wm.FindWindow(title)
	if err != nil {
		return fmt.Errorf("find window %q: %w", title, err)
	}
	if w.Handle == 0 {
		return fmt.Errorf("%w: %q", blur.ErrWindowNotFound, title)
	}

	m.log.Debug("Found window by title", "title", title, "handle", fmt.Sprintf("%#x", w.Handle))
	return m.setAccent(w, mode)
}

// ApplyEffectToHandle applies mode to an already resolved native handle.
func (m *Manager) ApplyEffectToHandle(handle uintptr, mode int) error {
	if handle == 0 {
		return fmt.Errorf("%w: zero handle", blur.ErrWindowNotFound)
	}
	return m.setAccent(Window{Handle: handle}, mode)
}

// Name returns the backend name.
func (m *Manager) Name() string {
	return m.wm.Name()
}

func (m *Manager) setAccent(w Window, mode int) error {
	kind, _ := effect.KindForMode(mode)
	if err := m.wm.SetAccent(w, mode, kind.Decorated()); err != nil {
		return fmt.Errorf("set accent on %#x: %w", w.Handle, err)
	}
	m.log.Debug("Composition attribute applied", "handle", fmt.Sprintf("%#x", w.Handle), "mode", mode)
	return nil
}
