package gui

import (
	"bytes"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/tetristerm/pkg/mino"
)

const (
	previewSize = 6
	blockRune   = '█'
)

// The preview piece is drawn one cell in from the corner of its panel.
var previewOffset = mino.Point{X: 1, Y: 1}

var (
	renderHLine    = string(tcell.RuneHLine)
	renderVLine    = string(tcell.RuneVLine)
	renderULCorner = string(tcell.RuneULCorner)
	renderURCorner = string(tcell.RuneURCorner)
	renderLLCorner = string(tcell.RuneLLCorner)
	renderLRCorner = string(tcell.RuneLRCorner)
)

// renderBlock writes one cell, bs columns wide.
func renderBlock(buf *bytes.Buffer, b mino.Block, bs int, t Theme) {
	if b.Empty() {
		for k := 0; k < bs; k++ {
			buf.WriteRune(' ')
		}
		return
	}

	buf.WriteString(t.BlockMarkup(b))
	for k := 0; k < bs; k++ {
		buf.WriteRune(blockRune)
	}
	buf.WriteString("[-]")
}

// renderMatrix draws rows as tview markup. Bordered matrices get a box
// drawn around them.
func renderMatrix(buf *bytes.Buffer, rows [][]mino.Block, bs int, border bool, t Theme) {
	buf.Reset()

	if len(rows) == 0 {
		return
	}
	w := len(rows[0])

	if border {
		buf.WriteString(renderULCorner)
		for x := 0; x < w*bs; x++ {
			buf.WriteString(renderHLine)
		}
		buf.WriteString(renderURCorner)
		buf.WriteRune('\n')
	}

	for y, row := range rows {
		if border {
			buf.WriteString(renderVLine)
		}
		for _, b := range row {
			renderBlock(buf, b, bs, t)
		}
		if border {
			buf.WriteString(renderVLine)
		}

		if border || y != len(rows)-1 {
			buf.WriteRune('\n')
		}
	}

	if !border {
		return
	}

	buf.WriteString(renderLLCorner)
	for x := 0; x < w*bs; x++ {
		buf.WriteString(renderHLine)
	}
	buf.WriteString(renderLRCorner)
}

// previewRows places p at previewOffset on an empty panel.
func previewRows(p *mino.Piece) [][]mino.Block {
	preview := mino.NewBoard(previewSize, previewSize)
	if p == nil {
		return preview.Rows()
	}

	p.Cells(previewOffset, func(x int, y int) {
		if x < previewSize && y < previewSize {
			preview.SetCell(x, y, p.Color)
		}
	})

	return preview.Rows()
}

func renderSide(buf *bytes.Buffer, score int, lines int, t Theme) {
	buf.Reset()

	fmt.Fprintf(buf, "\n Score\n\n %s%d[-]\n\n Lines\n\n %d", colorTag(t.Score), score, lines)
}
