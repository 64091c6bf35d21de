package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winblur/pkg/blur"
	"winblur/pkg/effect"
	"winblur/pkg/logger"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(logger.Nop())
	assert.Equal(t, effect.Acrylic, cfg.GetEffect())
	assert.Equal(t, blur.DefaultMarkerPrefix, cfg.GetMarkerPrefix())
	assert.Equal(t, blur.ResolveTitle, cfg.GetResolve())
	assert.Equal(t, uint32(DefaultTintColor), cfg.GetTintColor())
	assert.Equal(t, "winblur.sock", filepath.Base(cfg.GetSocketPath()))
	assert.Len(t, cfg.ApplicatorOptions(), 2)
}

func TestLoadJSONOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"effect":"blur-behind","marker_prefix":"_JFX","tint_color":"0x80ffffff"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := loadConfigFromPath(path, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, effect.BlurBehind, cfg.GetEffect())
	assert.Equal(t, "_JFX", cfg.GetMarkerPrefix())
	assert.Equal(t, uint32(0x80ffffff), cfg.GetTintColor())
	assert.Equal(t, blur.ResolveTitle, cfg.GetResolve())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "effect: none\nresolve: handle\nsocket_path: /tmp/x.sock\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := loadConfigFromPath(path, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, effect.None, cfg.GetEffect())
	assert.Equal(t, blur.ResolveHandle, cfg.GetResolve())
	assert.Equal(t, "/tmp/x.sock", cfg.GetSocketPath())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"effect":  `{"effect":"mica"}`,
		"resolve": `{"resolve":"hwnd"}`,
		"tint":    `{"tint_color":"purple"}`,
		"syntax":  `{"effect":`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(path, []byte(data), 0644))
			_, err := loadConfigFromPath(path, logger.Nop())
			assert.Error(t, err)
		})
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			src := filepath.Join(t.TempDir(), "in.json")
			require.NoError(t, os.WriteFile(src, []byte(`{"effect":"none","tint_color":"0x11223344"}`), 0644))
			cfg, err := loadConfigFromPath(src, logger.Nop())
			require.NoError(t, err)

			out := filepath.Join(t.TempDir(), name)
			require.NoError(t, cfg.WriteFile(out))

			back, err := loadConfigFromPath(out, logger.Nop())
			require.NoError(t, err)
			assert.Equal(t, effect.None, back.GetEffect())
			assert.Equal(t, uint32(0x11223344), back.GetTintColor())
			assert.Equal(t, cfg.GetSocketPath(), back.GetSocketPath())
		})
	}
}

func TestFindConfigCreatesDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "winblur")

	cfg, err := findConfigIn("", dir, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, effect.Acrylic, cfg.GetEffect())
	assert.FileExists(t, filepath.Join(dir, "config.json"))

	// A second lookup reads the file that was just written.
	again, err := findConfigIn("", dir, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, cfg.GetMarkerPrefix(), again.GetMarkerPrefix())
}

func TestFindConfigProvidedPathMustLoad(t *testing.T) {
	dir := t.TempDir()
	_, err := findConfigIn(filepath.Join(dir, "missing.json"), dir, logger.Nop())
	assert.Error(t, err)
}

func TestFindConfigBrokenDefaultFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("not json"), 0644))

	cfg, err := findConfigIn("", dir, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, effect.Acrylic, cfg.GetEffect())
}
