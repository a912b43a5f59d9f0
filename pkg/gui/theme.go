package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/qnkhuat/tetristerm/pkg/config"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

// Theme is used for dynamically coloring the UI
type Theme struct {
	Blocks [mino.BlockColors]tcell.Color
	Border tcell.Color
	Text   tcell.Color
	Score  tcell.Color
}

// ThemeHex is the config file form of a Theme
type ThemeHex struct {
	Blocks [mino.BlockColors]string `json:"blocks"`
	Border string                   `json:"border"`
	Text   string                   `json:"text"`
	Score  string                   `json:"score"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex.
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// parseColor reads a hex color, keeping "#0" and "" as the terminal default.
func parseColor(hex string) (tcell.Color, error) {
	if hex == "" || hex == "#0" {
		return tcell.ColorDefault, nil
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("theme: bad color %q: %w", hex, err)
	}

	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	var h ThemeHex
	for i, c := range t.Blocks {
		h.Blocks[i] = fmtHex(c.Hex())
	}
	h.Border = fmtHex(t.Border.Hex())
	h.Text = fmtHex(t.Text.Hex())
	h.Score = fmtHex(t.Score.Hex())

	return h
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() (Theme, error) {
	var (
		theme Theme
		err   error
	)
	for i, hex := range t.Blocks {
		if theme.Blocks[i], err = parseColor(hex); err != nil {
			return Theme{}, err
		}
	}
	if theme.Border, err = parseColor(t.Border); err != nil {
		return Theme{}, err
	}
	if theme.Text, err = parseColor(t.Text); err != nil {
		return Theme{}, err
	}
	if theme.Score, err = parseColor(t.Score); err != nil {
		return Theme{}, err
	}

	return theme, nil
}

// ThemeFromPalette builds the basic theme with the block colors replaced by
// a config palette.
func ThemeFromPalette(palette [mino.BlockColors]string) (Theme, error) {
	h := ThemeBasic.Hex()
	h.Blocks = palette

	return h.Theme()
}

// BlockMarkup returns the tview color tag for a block.
func (t Theme) BlockMarkup(b mino.Block) string {
	if b.Empty() || int(b) >= len(t.Blocks) {
		return ""
	}

	return colorTag(t.Blocks[b])
}

// colorTag returns the tview color tag for c.
func colorTag(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return "[-]"
	}

	return fmt.Sprintf("[%s]", fmtHex(c.Hex()))
}

// ThemeBasic is the default theme
var ThemeBasic = mustTheme(ThemeHex{
	Blocks: config.DefaultPalette,
	Border: "#0",
	Text:   "#0",
	Score:  "#f1c40f",
})

func mustTheme(h ThemeHex) Theme {
	t, err := h.Theme()
	if err != nil {
		panic(err)
	}

	return t
}
