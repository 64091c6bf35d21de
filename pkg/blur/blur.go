// Package blur applies blur-behind and acrylic effects to native windows.
//
// The toolkit does not expose native handles, so the window is renamed to a
// short-lived marker title, the native layer finds it by that title and
// calls the composition API, and the original title is put back. Callers
// must serialise calls per window on the toolkit's UI thread: the rename is
// visible to anything else observing the title while the call runs.
package blur

import (
	"fmt"
	"time"

	"winblur/pkg/core"
	"winblur/pkg/effect"
	"winblur/pkg/logger"
)

// Window is the part of a toolkit window the applicator touches.
type Window interface {
	Title() string
	SetTitle(title string)
	Visible() bool
}

// HandleWindow is a Window that can report its native handle directly.
type HandleWindow interface {
	Window
	NativeHandle() (uintptr, bool)
}

// Resolve selects how the native window is located.
type Resolve int

const (
	// ResolveTitle swaps in a marker title and looks the window up by it.
	ResolveTitle Resolve = iota
	// ResolveHandle uses the window's native handle when both the window
	// and the binding support it, and falls back to ResolveTitle otherwise.
	ResolveHandle
)

func (r Resolve) String() string {
	switch r {
	case ResolveHandle:
		return "handle"
	default:
		return "title"
	}
}

// ParseResolve accepts "title" or "handle". Empty means title.
func ParseResolve(s string) (Resolve, error) {
	switch s {
	case "", "title":
		return ResolveTitle, nil
	case "handle":
		return ResolveHandle, nil
	}
	return ResolveTitle, fmt.Errorf("unknown resolve strategy %q", s)
}

type Applicator struct {
	lib     Library
	log     core.Logger
	prefix  string
	resolve Resolve
	now     func() time.Time
}

type Option func(*Applicator)

// WithLogger sets the logger used for warnings and swallowed failures.
func WithLogger(log core.Logger) Option {
	return func(a *Applicator) {
		if log != nil {
			a.log = log
		}
	}
}

// WithMarkerPrefix overrides DefaultMarkerPrefix.
func WithMarkerPrefix(prefix string) Option {
	return func(a *Applicator) {
		if prefix != "" {
			a.prefix = prefix
		}
	}
}

// WithResolve sets the window resolution strategy.
func WithResolve(r Resolve) Option {
	return func(a *Applicator) {
		a.resolve = r
	}
}

// WithClock replaces the wall clock used to build marker titles.
func WithClock(now func() time.Time) Option {
	return func(a *Applicator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewApplicator returns an applicator bound to lib. A library that failed
// to load is accepted; every call then fails with ErrNotLoaded.
func NewApplicator(lib Library, opts ...Option) *Applicator {
	a := &Applicator{
		lib:     lib,
		log:     logger.Nop(),
		prefix:  DefaultMarkerPrefix,
		resolve: ResolveTitle,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply requests kind on w. Failures are logged and never returned; the
// window title is always restored.
func (a *Applicator) Apply(w Window, kind effect.Kind) {
	if err := a.TryApply(w, kind); err != nil {
		a.log.Error("Unable to apply window effect", err,
			"effect", kind.String(),
			"mode", effect.ModeCodeFor(kind))
	}
}

// TryApply runs the same protocol as Apply and returns the failure instead
// of logging it. A panic inside the binding is converted to an error.
func (a *Applicator) TryApply(w Window, kind effect.Kind) error {
	if w == nil {
		return fmt.Errorf("nil window")
	}

	if !w.Visible() {
		a.log.Warn("Window effect requested on a hidden window",
			"effect", kind.String())
	}

	mode := effect.ModeCodeFor(kind)

	if a.resolve == ResolveHandle {
		if handled, err := a.tryHandle(w, mode); handled {
			return err
		}
		a.log.Debug("Native handle unavailable, falling back to title lookup")
	}

	return a.applyByTitle(w, mode)
}

func (a *Applicator) applyByTitle(w Window, mode int) (err error) {
	original := w.Title()
	marker := MarkerTitle(a.prefix, a.now())

	w.SetTitle(marker)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("native call panicked: %v", r)
		}
		w.SetTitle(original)
	}()

	a.log.Debug("Applying window effect", "marker", marker, "mode", mode)
	if err := a.lib.applyEffect(marker, mode); err != nil {
		return fmt.Errorf("apply effect to %q: %w", marker, err)
	}
	return nil
}

// tryHandle reports handled=false when the handle path cannot be used.
func (a *Applicator) tryHandle(w Window, mode int) (handled bool, err error) {
	hw, isHandleWindow := w.(HandleWindow)
	hb, isHandleBinding := a.lib.handleBinding()
	if !isHandleWindow || !isHandleBinding {
		return false, nil
	}
	handle, found := hw.NativeHandle()
	if !found || handle == 0 {
		return false, nil
	}

	defer func() {
		if r := recover(); r != nil {
			handled = true
			err = fmt.Errorf("native call panicked: %v", r)
		}
	}()

	a.log.Debug("Applying window effect by handle", "handle", handle, "mode", mode)
	if err := hb.ApplyEffectToHandle(handle, mode); err != nil {
		return true, fmt.Errorf("apply effect to handle %#x: %w", handle, err)
	}
	return true, nil
}
