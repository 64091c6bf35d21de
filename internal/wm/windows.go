//go:build windows

package wm

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"

	"winblur/pkg/blur"
)

// WINDOWCOMPOSITIONATTRIB value for the accent policy.
const wcaAccentPolicy = 19

type accentPolicy struct {
	AccentState   uint32
	AccentFlags   uint32
	GradientColor uint32
	AnimationID   uint32
}

type windowCompositionAttribData struct {
	Attrib uint32
	Data   unsafe.Pointer
	Size   uintptr
}

type margins struct {
	Left, Right, Top, Bottom int32
}

type Win32 struct {
	tint uint32

	procFindWindow        *windows.LazyProc
	procSetComposition    *windows.LazyProc
	procExtendFrameIntoCA *windows.LazyProc
}

func newPlatform(opts Options) (WindowManager, error) {
	user32 := windows.NewLazySystemDLL("user32.dll")
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("failed to load user32.dll: %w", err)
	}
	w := &Win32{
		tint:                  opts.TintColor,
		procFindWindow:        user32.NewProc("FindWindowW"),
		procSetComposition:    user32.NewProc("SetWindowCompositionAttribute"),
		procExtendFrameIntoCA: windows.NewLazySystemDLL("dwmapi.dll").NewProc("DwmExtendFrameIntoClientArea"),
	}
	if err := w.procFindWindow.Find(); err != nil {
		return nil, fmt.Errorf("failed to resolve FindWindowW: %w", err)
	}
	return w, nil
}

func (w *Win32) Name() string {
	return "Win32"
}

func (w *Win32) FindWindow(title string) (Window, error) {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return Window{}, fmt.Errorf("invalid window title: %w", err)
	}

	hwnd, _, _ := w.procFindWindow.Call(0, uintptr(unsafe.Pointer(p)))
	if hwnd == 0 {
		return Window{}, nil
	}
	return Window{Handle: hwnd, Title: title}, nil
}

func (w *Win32) SetAccent(win Window, mode int, decorate bool) error {
	if err := w.procSetComposition.Find(); err != nil {
		return fmt.Errorf("%w: SetWindowCompositionAttribute: %v", blur.ErrEntryPointMissing, err)
	}

	policy := accentPolicy{
		AccentState:   uint32(mode),
		GradientColor: w.tint,
	}
	data := windowCompositionAttribData{
		Attrib: wcaAccentPolicy,
		Data:   unsafe.Pointer(&policy),
		Size:   unsafe.Sizeof(policy),
	}

	ok, _, callErr := w.procSetComposition.Call(win.Handle, uintptr(unsafe.Pointer(&data)))
	runtime.KeepAlive(&policy)
	if ok == 0 {
		return fmt.Errorf("SetWindowCompositionAttribute rejected window: %w", callErr)
	}

	return w.extendFrame(win, decorate)
}

// extendFrame is skipped silently when dwmapi is unavailable; the accent
// has already been applied at that point.
func (w *Win32) extendFrame(win Window, decorate bool) error {
	if err := w.procExtendFrameIntoCA.Find(); err != nil {
		return nil
	}

	m := margins{}
	if decorate {
		m = margins{Left: -1, Right: -1, Top: -1, Bottom: -1}
	}
	hr, _, _ := w.procExtendFrameIntoCA.Call(win.Handle, uintptr(unsafe.Pointer(&m)))
	if hr != 0 {
		return fmt.Errorf("DwmExtendFrameIntoClientArea failed: HRESULT %#x", uint32(hr))
	}
	return nil
}
