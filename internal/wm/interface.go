package wm

// WindowManager is the native window-system backend used to resolve a window
// and change its composition attributes.
type WindowManager interface {
	// FindWindow looks for a top-level window whose title matches exactly.
	// A zero Window and nil error mean no window carries that title.
	FindWindow(title string) (Window, error)
	// SetAccent applies the composition mode and, when decorate is set,
	// extends the frame into the client area.
	SetAccent(w Window, mode int, decorate bool) error
	// Name returns the backend name for logging/display
	Name() string
}

type Window struct {
	Handle uintptr
	Title  string
}
