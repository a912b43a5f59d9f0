package gui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/qnkhuat/tetristerm/pkg/mino"
)

var ansiBlocks = map[mino.Block]*color.Color{
	mino.BlockTurquoise: color.New(color.FgHiCyan),
	mino.BlockBlue:      color.New(color.FgBlue),
	mino.BlockPurple:    color.New(color.FgMagenta),
	mino.BlockYellow:    color.New(color.FgHiYellow),
	mino.BlockOrange:    color.New(color.FgYellow),
	mino.BlockRed:       color.New(color.FgRed),
	mino.BlockGreen:     color.New(color.FgGreen),
}

// PrintBoard writes a plain terminal picture of rows, used once the
// application has released the screen.
func PrintBoard(w io.Writer, rows [][]mino.Block, score int) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}

	border := strings.Repeat("─", width*2)
	fmt.Fprintf(w, "┌%s┐\n", border)
	for _, row := range rows {
		fmt.Fprint(w, "│")
		for _, b := range row {
			c, ok := ansiBlocks[b]
			if !ok {
				fmt.Fprint(w, "  ")
				continue
			}

			c.Fprint(w, "██")
		}
		fmt.Fprintln(w, "│")
	}
	fmt.Fprintf(w, "└%s┘\n", border)

	color.New(color.Bold).Fprintf(w, "Score: %d\n", score)
}
