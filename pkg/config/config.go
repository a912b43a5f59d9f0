package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

const (
	DirName  = "tetristerm"
	FileName = "config.json"
)

// DefaultPalette holds one hex color per block, index 0 is the empty cell
// and is never drawn.
var DefaultPalette = [mino.BlockColors]string{
	"",
	"#1abc9c",
	"#3498db",
	"#9b59b6",
	"#f1c40f",
	"#e67e22",
	"#e74c3c",
	"#2ecc71",
}

// DefaultKeybindings maps action names to tcell key names. Single characters
// match runes.
var DefaultKeybindings = map[string][]string{
	event.ActionMoveLeft.String():  {"Left", "h"},
	event.ActionMoveRight.String(): {"Right", "l"},
	event.ActionRotate.String():    {"Up", "k"},
	event.ActionSoftDrop.String():  {"Down", "j"},
}

type Config struct {
	DropIntervalMS int                      `json:"drop_interval_ms"`
	Palette        [mino.BlockColors]string `json:"palette"`
	BlockWidth     int                      `json:"block_width"`
	Keybindings    map[string][]string      `json:"keybindings"`
	Sound          bool                     `json:"sound"`
}

func NewDefault() *Config {
	keybindings := make(map[string][]string, len(DefaultKeybindings))
	for action, keys := range DefaultKeybindings {
		keybindings[action] = append([]string(nil), keys...)
	}

	return &Config{
		DropIntervalMS: int(time.Second / time.Millisecond),
		Palette:        DefaultPalette,
		BlockWidth:     2,
		Keybindings:    keybindings,
		Sound:          true,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tetristerm/config.json or the platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}

	return filepath.Join(dir, DirName, FileName)
}

func (c *Config) DropInterval() time.Duration {
	return time.Duration(c.DropIntervalMS) * time.Millisecond
}

// Actions resolves the keybinding table into game actions, skipping action
// names that are not recognized.
func (c *Config) Actions() map[event.GameAction][]string {
	actions := make(map[event.GameAction][]string, len(c.Keybindings))
	for name, keys := range c.Keybindings {
		a := event.ParseGameAction(name)
		if a == event.ActionUnknown {
			continue
		}

		actions[a] = append(actions[a], keys...)
	}

	return actions
}

func (c *Config) Validate() error {
	if c.DropIntervalMS <= 0 {
		return fmt.Errorf("drop_interval_ms must be positive, got %d", c.DropIntervalMS)
	}
	if c.BlockWidth < 1 || c.BlockWidth > 3 {
		return fmt.Errorf("block_width must be between 1 and 3, got %d", c.BlockWidth)
	}

	for i, hex := range c.Palette {
		if i == int(mino.BlockNone) {
			continue
		}

		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("palette entry %d: %w", i, err)
		}
	}

	for name := range c.Keybindings {
		if event.ParseGameAction(name) == event.ActionUnknown {
			return fmt.Errorf("keybindings: unknown action %q", name)
		}
	}

	return nil
}

// Load reads the config at path. A missing file yields the defaults. Fields
// left out of the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := NewDefault()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
