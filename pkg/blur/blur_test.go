package blur

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winblur/pkg/effect"
)

type fakeWindow struct {
	title   string
	visible bool
	history []string
}

func (w *fakeWindow) Title() string { return w.title }
func (w *fakeWindow) SetTitle(title string) {
	w.title = title
	w.history = append(w.history, title)
}
func (w *fakeWindow) Visible() bool { return w.visible }

type handleWindow struct {
	fakeWindow
	handle uintptr
}

func (w *handleWindow) NativeHandle() (uintptr, bool) { return w.handle, w.handle != 0 }

type call struct {
	title     string
	mode      int
	seenTitle string
}

// recordingBinding captures what the window title was while the native call ran.
type recordingBinding struct {
	win   *fakeWindow
	calls []call
	err   error
	panic interface{}
}

func (b *recordingBinding) ApplyEffect(title string, mode int) error {
	c := call{title: title, mode: mode}
	if b.win != nil {
		c.seenTitle = b.win.title
	}
	b.calls = append(b.calls, c)
	if b.panic != nil {
		panic(b.panic)
	}
	return b.err
}

type handleBinding struct {
	recordingBinding
	handles []uintptr
}

func (b *handleBinding) ApplyEffectToHandle(handle uintptr, mode int) error {
	b.handles = append(b.handles, handle)
	return b.err
}

type logEntry struct {
	level string
	msg   string
	err   error
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, msg string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, err: err})
}

func (l *recordingLogger) Debug(msg string, _ ...interface{}) { l.add("debug", msg, nil) }
func (l *recordingLogger) Info(msg string, _ ...interface{})  { l.add("info", msg, nil) }
func (l *recordingLogger) Warn(msg string, _ ...interface{})  { l.add("warn", msg, nil) }
func (l *recordingLogger) Error(msg string, err error, _ ...interface{}) {
	l.add("error", msg, err)
}

func (l *recordingLogger) levels(level string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestApplyEditorAcrylicScenario(t *testing.T) {
	win := &fakeWindow{title: "Editor", visible: true}
	binding := &recordingBinding{win: win}
	log := &recordingLogger{}

	a := NewApplicator(Loaded(binding), WithLogger(log), WithMarkerPrefix("_TEST"))
	a.Apply(win, effect.Acrylic)

	require.Len(t, binding.calls, 1)
	c := binding.calls[0]
	assert.Regexp(t, `^_TEST\d{1,3}$`, c.title)
	assert.Equal(t, c.title, c.seenTitle, "window must carry the marker during the native call")
	assert.Equal(t, 4, c.mode)
	assert.Equal(t, "Editor", win.title)
	assert.Empty(t, log.levels("error"))
	assert.Empty(t, log.levels("warn"))
}

func TestApplyPassesModeForEveryKind(t *testing.T) {
	for _, kind := range effect.Kinds() {
		win := &fakeWindow{title: "w", visible: true}
		binding := &recordingBinding{}
		NewApplicator(Loaded(binding)).Apply(win, kind)

		require.Len(t, binding.calls, 1, kind.String())
		assert.Equal(t, effect.ModeCodeFor(kind), binding.calls[0].mode, kind.String())
	}
}

func TestTitleRestoredOnEveryOutcome(t *testing.T) {
	cases := []struct {
		name string
		lib  Library
	}{
		{"success", Loaded(&recordingBinding{})},
		{"native error", Loaded(&recordingBinding{err: errors.New("SetWindowCompositionAttribute failed")})},
		{"entry point missing", Loaded(&recordingBinding{err: ErrEntryPointMissing})},
		{"panic", Loaded(&recordingBinding{panic: "unresolved symbol"})},
		{"not loaded", NotLoaded(errors.New("user32.dll: not found"))},
		{"zero library", Library{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, kind := range effect.Kinds() {
				win := &fakeWindow{title: "Original Title", visible: true}
				assert.NotPanics(t, func() {
					NewApplicator(tc.lib).Apply(win, kind)
				})
				assert.Equal(t, "Original Title", win.title)
			}
		})
	}
}

func TestNativeFailureIsLoggedNotReturned(t *testing.T) {
	win := &fakeWindow{title: "Editor", visible: true}
	binding := &recordingBinding{err: ErrEntryPointMissing}
	log := &recordingLogger{}

	NewApplicator(Loaded(binding), WithLogger(log)).Apply(win, effect.BlurBehind)

	errs := log.levels("error")
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0].err, ErrEntryPointMissing)
	assert.Equal(t, "Editor", win.title)
}

func TestTryApplyReturnsWrappedErrors(t *testing.T) {
	win := &fakeWindow{title: "Editor", visible: true}

	err := NewApplicator(NotLoaded(errors.New("dll missing"))).TryApply(win, effect.Acrylic)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Contains(t, err.Error(), "dll missing")
	assert.Equal(t, "Editor", win.title)

	err = NewApplicator(Loaded(&recordingBinding{err: ErrWindowNotFound})).TryApply(win, effect.Acrylic)
	assert.ErrorIs(t, err, ErrWindowNotFound)

	err = NewApplicator(Loaded(&recordingBinding{panic: fmt.Errorf("boom")})).TryApply(win, effect.Acrylic)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
	assert.Equal(t, "Editor", win.title)
}

func TestHiddenWindowWarnsAndProceeds(t *testing.T) {
	win := &fakeWindow{title: "Editor", visible: false}
	binding := &recordingBinding{win: win}
	log := &recordingLogger{}

	NewApplicator(Loaded(binding), WithLogger(log)).Apply(win, effect.Acrylic)

	assert.Len(t, log.levels("warn"), 1)
	assert.Empty(t, log.levels("error"))
	require.Len(t, binding.calls, 1)
	assert.Equal(t, "Editor", win.title)
	require.Len(t, win.history, 2)
	assert.Equal(t, binding.calls[0].title, win.history[0])
	assert.Equal(t, "Editor", win.history[1])
}

func TestMarkerUsesClock(t *testing.T) {
	win := &fakeWindow{title: "Editor", visible: true}
	binding := &recordingBinding{}

	NewApplicator(Loaded(binding), WithClock(fixedClock(1700000000123))).Apply(win, effect.None)

	require.Len(t, binding.calls, 1)
	assert.Equal(t, DefaultMarkerPrefix+"123", binding.calls[0].title)
}

func TestMarkerFormat(t *testing.T) {
	re := regexp.MustCompile(`^_JFX(\d{1,3})$`)
	start := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 2000; i++ {
		marker := MarkerTitle("_JFX", start.Add(time.Duration(i)*time.Millisecond))
		require.Regexp(t, re, marker)
		seen[marker] = true
	}
	// 2000 consecutive milliseconds wrap the 1000 buckets twice.
	assert.Len(t, seen, 1000)
}

func TestMarkerValueRange(t *testing.T) {
	assert.Equal(t, "p0", MarkerTitle("p", time.UnixMilli(5000)))
	assert.Equal(t, "p999", MarkerTitle("p", time.UnixMilli(5999)))
	assert.Equal(t, "p999", MarkerTitle("p", time.UnixMilli(-1)))
}

func TestResolveHandleSkipsTitleSwap(t *testing.T) {
	win := &handleWindow{fakeWindow: fakeWindow{title: "Editor", visible: true}, handle: 0xbeef}
	binding := &handleBinding{}

	NewApplicator(Loaded(binding), WithResolve(ResolveHandle)).Apply(win, effect.Acrylic)

	assert.Equal(t, []uintptr{0xbeef}, binding.handles)
	assert.Empty(t, binding.calls)
	assert.Empty(t, win.history)
	assert.Equal(t, "Editor", win.title)
}

func TestResolveHandleFallsBackToTitle(t *testing.T) {
	t.Run("window without handle", func(t *testing.T) {
		win := &handleWindow{fakeWindow: fakeWindow{title: "Editor", visible: true}}
		binding := &handleBinding{}

		NewApplicator(Loaded(binding), WithResolve(ResolveHandle)).Apply(win, effect.BlurBehind)

		assert.Empty(t, binding.handles)
		require.Len(t, binding.calls, 1)
		assert.Equal(t, 3, binding.calls[0].mode)
		assert.Equal(t, "Editor", win.title)
	})

	t.Run("binding without handle support", func(t *testing.T) {
		win := &handleWindow{fakeWindow: fakeWindow{title: "Editor", visible: true}, handle: 1}
		binding := &recordingBinding{}

		NewApplicator(Loaded(binding), WithResolve(ResolveHandle)).Apply(win, effect.BlurBehind)

		require.Len(t, binding.calls, 1)
		assert.Equal(t, "Editor", win.title)
	})
}

func TestLibraryStates(t *testing.T) {
	assert.False(t, Library{}.IsLoaded())
	assert.ErrorIs(t, Library{}.Err(), ErrNotLoaded)
	assert.ErrorIs(t, NotLoaded(nil).Err(), ErrNotLoaded)
	assert.ErrorIs(t, Loaded(nil).Err(), ErrNotLoaded)

	lib := Loaded(&recordingBinding{})
	assert.True(t, lib.IsLoaded())
	assert.NoError(t, lib.Err())
}

func TestParseResolve(t *testing.T) {
	r, err := ParseResolve("")
	require.NoError(t, err)
	assert.Equal(t, ResolveTitle, r)

	r, err = ParseResolve("handle")
	require.NoError(t, err)
	assert.Equal(t, ResolveHandle, r)
	assert.Equal(t, "handle", r.String())

	_, err = ParseResolve("hwnd")
	assert.Error(t, err)
}
