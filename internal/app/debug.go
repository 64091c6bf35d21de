package app

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"winblur/pkg/core"
)

const maxDebugLines = 1000

// DebugPanel represents the debug window and its components
type DebugPanel struct {
	window    fyne.Window
	textArea  *widget.TextGrid
	logger    core.Logger
	mu        sync.Mutex
	content   []string
	isVisible bool
}

func NewDebugPanel(a fyne.App, log core.Logger) *DebugPanel {
	dp := &DebugPanel{
		logger:  log,
		content: make([]string, 0),
	}

	dp.window = a.NewWindow("winblur debug")
	dp.textArea = widget.NewTextGrid()

	testBtn := widget.NewButton("Test Log", func() {
		dp.logger.Debug("Test log entry from debug panel")
	})
	clearBtn := widget.NewButton("Clear", func() {
		dp.Clear()
	})

	content := container.NewBorder(
		container.NewHBox(testBtn, clearBtn), // top
		nil,                                  // bottom
		nil,                                  // left
		nil,                                  // right
		container.NewScroll(dp.textArea),
	)

	dp.window.SetContent(content)
	dp.window.Resize(fyne.NewSize(800, 600))

	// Closing only hides the panel
	dp.window.SetCloseIntercept(func() {
		dp.Hide()
	})

	dp.AddText("Debug Panel Initialized")
	return dp
}

func (dp *DebugPanel) AddText(text string) {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	dp.content = append(dp.content, text)
	if len(dp.content) > maxDebugLines {
		dp.content = dp.content[len(dp.content)-maxDebugLines:]
	}

	dp.textArea.SetText(strings.Join(dp.content, "\n"))
}

func (dp *DebugPanel) Lines() []string {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	return append([]string(nil), dp.content...)
}

func (dp *DebugPanel) Clear() {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	dp.content = make([]string, 0)
	dp.textArea.SetText("")
}

func (dp *DebugPanel) Show() {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.isVisible = true
	dp.window.Show()
}

func (dp *DebugPanel) Hide() {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.isVisible = false
	dp.window.Hide()
}

func (dp *DebugPanel) IsVisible() bool {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	return dp.isVisible
}

// DebugWriter implements io.Writer for logging. Lines written before a
// panel is attached are kept and flushed on Attach.
type DebugWriter struct {
	mu      sync.Mutex
	panel   *DebugPanel
	pending []string
}

func NewDebugWriter() *DebugWriter {
	return &DebugWriter{}
}

func (w *DebugWriter) Attach(panel *DebugPanel) {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.panel = panel
	w.mu.Unlock()

	for _, line := range pending {
		panel.AddText(line)
	}
}

func (w *DebugWriter) Write(p []byte) (n int, err error) {
	text := strings.TrimSpace(string(p))
	if text == "" {
		return len(p), nil
	}

	w.mu.Lock()
	panel := w.panel
	if panel == nil {
		w.pending = append(w.pending, text)
		if len(w.pending) > maxDebugLines {
			w.pending = w.pending[len(w.pending)-maxDebugLines:]
		}
	}
	w.mu.Unlock()

	if panel != nil {
		panel.AddText(text)
	}
	return len(p), nil
}
