package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/tetristerm/pkg/event"
)

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, NewDefault(), cfg)
	assert.Equal(t, time.Second, cfg.DropInterval())
	assert.NoError(t, cfg.Validate())
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"drop_interval_ms": 500, "sound": false}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.DropInterval())
	assert.False(t, cfg.Sound)
	assert.Equal(t, DefaultPalette, cfg.Palette)
	assert.Equal(t, 2, cfg.BlockWidth)
	assert.Equal(t, []string{"Up", "k"}, cfg.Keybindings["rotate"])
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	for name, data := range map[string]string{
		"syntax":   `{"sound": tru`,
		"interval": `{"drop_interval_ms": 0}`,
		"palette":  `{"palette": ["", "#zzzzzz", "#3498db", "#9b59b6", "#f1c40f", "#e67e22", "#e74c3c", "#2ecc71"]}`,
		"width":    `{"block_width": 9}`,
		"action":   `{"keybindings": {"hard-drop": ["Up"]}}`,
	} {
		path := filepath.Join(dir, name+".json")
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		_, err := Load(path)
		assert.Error(t, err, name)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DirName, FileName)

	cfg := NewDefault()
	cfg.BlockWidth = 1
	cfg.Palette[4] = "#ffff00"
	cfg.Keybindings["soft-drop"] = []string{"Down", "s"}

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestActions(t *testing.T) {
	cfg := NewDefault()
	cfg.Keybindings["Move-Left"] = []string{"a"}

	actions := cfg.Actions()

	assert.Len(t, actions, 4)
	assert.ElementsMatch(t, []string{"Left", "h", "a"}, actions[event.ActionMoveLeft])
	assert.Equal(t, []string{"Down", "j"}, actions[event.ActionSoftDrop])
}

func TestNewDefaultCopiesKeybindings(t *testing.T) {
	cfg := NewDefault()
	cfg.Keybindings["rotate"][0] = "x"

	assert.Equal(t, "Up", DefaultKeybindings["rotate"][0])
}
