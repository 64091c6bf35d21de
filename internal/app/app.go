package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"winblur/internal/fynewin"
	"winblur/internal/ipc"
	"winblur/pkg/blur"
	"winblur/pkg/config"
	"winblur/pkg/effect"
	"winblur/pkg/logger"
)

const windowTitle = "winblur"

const (
	startupAttempts = 20
	startupInterval = 100 * time.Millisecond
)

// WinBlur is the demo application: one window carrying a blur effect that
// can be switched from its title bar or over the control socket.
type WinBlur struct {
	config     *config.Config
	log        *logger.Logger
	applicator *blur.Applicator

	fyneApp     fyne.App
	window      *fynewin.Window
	debugPanel  *DebugPanel
	debugWriter *DebugWriter

	current effect.Kind
	mu      sync.Mutex

	// startup retry policy; the native window appears some time after the
	// run loop starts
	attempts int
	interval time.Duration
}

// NewWinBlur wires the applicator from an already loaded native library.
// debugWriter may be nil.
func NewWinBlur(cfg *config.Config, log *logger.Logger, lib blur.Library, debugWriter *DebugWriter) *WinBlur {
	opts := append(cfg.ApplicatorOptions(), blur.WithLogger(log))

	return &WinBlur{
		config:      cfg,
		log:         log,
		applicator:  blur.NewApplicator(lib, opts...),
		debugWriter: debugWriter,
		current:     effect.None,
		attempts:    startupAttempts,
		interval:    startupInterval,
	}
}

// Run opens the window and blocks until it is closed. The configured effect
// is applied from the lifecycle's started hook.
func (w *WinBlur) Run() error {
	w.log.Info("Starting winblur demo")

	w.build(fyneapp.New())

	go func() {
		if err := ipc.StartSocketServer(w.config.GetSocketPath(), w); err != nil {
			w.log.Error("Control socket unavailable", err, "path", w.config.GetSocketPath())
		}
	}()

	w.fyneApp.Lifecycle().SetOnStarted(func() {
		go w.applyStartupEffect()
	})

	w.window.Show()
	w.fyneApp.Run()
	return nil
}

func (w *WinBlur) build(a fyne.App) {
	w.fyneApp = a
	w.window = fynewin.Wrap(a.NewWindow(windowTitle))

	if w.debugWriter != nil {
		w.debugPanel = NewDebugPanel(a, w.log)
		w.debugWriter.Attach(w.debugPanel)
	}

	content := container.NewBorder(w.titleBar(), nil, nil, nil, contentPane())
	w.window.SetContent(content)
	w.window.SetPadded(false)
	w.window.Resize(fyne.NewSize(640, 480))
}

// applyStartupEffect applies the configured effect once the native window
// can be found by title. Only ErrWindowNotFound is retried.
func (w *WinBlur) applyStartupEffect() error {
	kind := w.config.GetEffect()

	var err error
	for attempt := 1; attempt <= w.attempts; attempt++ {
		err = w.ApplyEffect(kind)
		if err == nil || !errors.Is(err, blur.ErrWindowNotFound) {
			return err
		}
		w.log.Debug("Native window not ready, retrying startup effect",
			"attempt", attempt, "effect", kind.String())
		time.Sleep(w.interval)
	}
	w.log.Error("Startup effect not applied", err, "effect", kind.String(), "attempts", w.attempts)
	return err
}

func (w *WinBlur) titleBar() fyne.CanvasObject {
	effects := make([]string, 0, len(effect.Kinds()))
	for _, k := range effect.Kinds() {
		effects = append(effects, k.String())
	}

	// Selected is set before OnChanged so building the UI applies nothing.
	picker := widget.NewSelect(effects, nil)
	picker.Selected = w.config.GetEffect().String()
	picker.OnChanged = func(name string) {
		kind, err := effect.ParseKind(name)
		if err != nil {
			w.log.Error("Invalid effect selected", err, "name", name)
			return
		}
		if err := w.ApplyEffect(kind); err != nil {
			w.log.Warn("Effect not applied", "effect", name, "reason", err.Error())
		}
	}

	maxBtn := widget.NewButtonWithIcon("", theme.ViewFullScreenIcon(), func() {
		w.window.SetFullScreen(!w.window.FullScreen())
	})
	closeBtn := widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
		w.window.Close()
	})

	controls := container.NewHBox(picker, maxBtn, closeBtn)
	if w.debugPanel != nil {
		controls.Add(widget.NewButton("Debug Logs", func() {
			w.debugPanel.Show()
		}))
	}

	return container.NewBorder(nil, nil, widget.NewLabel("winblur"), controls)
}

func contentPane() fyne.CanvasObject {
	text := canvas.NewText("Content", theme.ForegroundColor())
	text.TextSize = 72
	return container.NewCenter(text)
}

// ApplyEffect implements ipc.Controller. It runs on the caller's goroutine
// and holds mu for the whole title swap, so UI and socket requests never
// overlap on the window. The title is always restored; the error only
// reports whether the native call succeeded.
func (w *WinBlur) ApplyEffect(kind effect.Kind) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.window == nil {
		return fmt.Errorf("window not created")
	}

	if err := w.applicator.TryApply(w.window, kind); err != nil {
		w.log.Error("Unable to apply window effect", err, "effect", kind.String())
		return err
	}

	w.current = kind
	w.log.Info("Window effect applied", "effect", kind.String())
	return nil
}

// Status implements ipc.Controller.
func (w *WinBlur) Status() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	visible := w.window != nil && w.window.Visible()
	return fmt.Sprintf("effect=%s visible=%t", w.current, visible)
}
