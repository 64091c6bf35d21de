// Package fynewin adapts a fyne window to the blur.Window contract.
package fynewin

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

// Window wraps a fyne.Window and tracks whether it is showing, which fyne
// does not expose. Show, Hide and ShowAndRun must go through the wrapper
// for Visible to stay accurate. Closing is caught from fyne's closed hook,
// so a close from the window manager also clears it.
type Window struct {
	fyne.Window

	mu       sync.RWMutex
	showing  bool
	onClosed func()
}

func Wrap(w fyne.Window) *Window {
	wrapped := &Window{Window: w}
	w.SetOnClosed(wrapped.closed)
	return wrapped
}

// SetOnClosed registers a callback run after the window is closed.
func (w *Window) SetOnClosed(fn func()) {
	w.mu.Lock()
	w.onClosed = fn
	w.mu.Unlock()
}

func (w *Window) closed() {
	w.mu.Lock()
	w.showing = false
	fn := w.onClosed
	w.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (w *Window) Show() {
	w.setShowing(true)
	w.Window.Show()
}

func (w *Window) ShowAndRun() {
	w.setShowing(true)
	w.Window.ShowAndRun()
}

func (w *Window) Hide() {
	w.setShowing(false)
	w.Window.Hide()
}

func (w *Window) Close() {
	w.setShowing(false)
	w.Window.Close()
}

func (w *Window) Visible() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.showing
}

func (w *Window) setShowing(v bool) {
	w.mu.Lock()
	w.showing = v
	w.mu.Unlock()
}

// NativeHandle returns the Win32 HWND when the driver exposes one.
func (w *Window) NativeHandle() (uintptr, bool) {
	nw, ok := w.Window.(driver.NativeWindow)
	if !ok {
		return 0, false
	}

	var hwnd uintptr
	nw.RunNative(func(context any) {
		switch ctx := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = ctx.HWND
		case *driver.WindowsWindowContext:
			hwnd = ctx.HWND
		}
	})
	return hwnd, hwnd != 0
}
