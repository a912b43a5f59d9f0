package mino

import (
	"strings"
)

const (
	BoardWidth  = 10
	BoardHeight = 20
)

// KickOffsets are the horizontal offsets tried, in order, when a rotated piece
// collides.
var KickOffsets = []int{0, 1, -1}

// Board is the grid of locked blocks. Row 0 is the top of the board.
type Board struct {
	W int // Width
	H int // Height

	M []Block // Matrix
}

func I(x int, y int, w int) int {
	return (y * w) + x
}

func NewBoard(w int, h int) *Board {
	return &Board{W: w, H: h, M: make([]Block, w*h)}
}

func (b *Board) Cell(x int, y int) Block {
	return b.M[I(x, y, b.W)]
}

func (b *Board) SetCell(x int, y int, block Block) {
	b.M[I(x, y, b.W)] = block
}

func (b *Board) Empty(x int, y int) bool {
	return b.M[I(x, y, b.W)] == BlockNone
}

func (b *Board) RowFull(y int) bool {
	for x := 0; x < b.W; x++ {
		if b.Empty(x, y) {
			return false
		}
	}

	return true
}

// ClearFullRows removes every full row in a single top-to-bottom pass. The rows
// above a removed row shift down by one and an empty row is inserted at the
// top.
func (b *Board) ClearFullRows() int {
	cleared := 0

	for y := 0; y < b.H; y++ {
		if !b.RowFull(y) {
			continue
		}

		copy(b.M[b.W:I(0, y+1, b.W)], b.M[0:I(0, y, b.W)])
		for x := 0; x < b.W; x++ {
			b.M[x] = BlockNone
		}

		cleared++
	}

	return cleared
}

// Collides reports whether the piece overlaps a wall, the floor or a locked
// block at its current location.
func (b *Board) Collides(p *Piece) bool {
	return b.CollidesAt(p, p.Point)
}

// CollidesAt reports whether the piece would collide at loc. Cells above the
// top row are only checked against the side walls.
func (b *Board) CollidesAt(p *Piece, loc Point) bool {
	var (
		x, y int
	)

	for dy := range p.Shape {
		for dx, block := range p.Shape[dy] {
			if block == BlockNone {
				continue
			}

			x = loc.X + dx
			y = loc.Y + dy

			if x < 0 || x >= b.W || y >= b.H {
				return true
			}

			if y >= 0 && !b.Empty(x, y) {
				return true
			}
		}
	}

	return false
}

// Merge locks the piece into the board. Cells above the top row are dropped.
func (b *Board) Merge(p *Piece) {
	p.Cells(p.Point, func(x int, y int) {
		if x < 0 || y < 0 || x >= b.W || y >= b.H {
			return
		}

		b.SetCell(x, y, p.Color)
	})
}

// RotatePiece turns the piece clockwise, nudging it sideways when the rotated
// shape collides. The piece is left unchanged when no offset fits.
func (b *Board) RotatePiece(p *Piece) bool {
	original := p.Shape

	p.Shape = p.Shape.Rotated()

	for _, offset := range KickOffsets {
		loc := Point{p.X + offset, p.Y}
		if !b.CollidesAt(p, loc) {
			p.Point = loc
			return true
		}
	}

	p.Shape = original
	return false
}

func (b *Board) Reset() {
	for i := range b.M {
		b.M[i] = BlockNone
	}
}

// Rows returns a copy of the board indexed [row][column].
func (b *Board) Rows() [][]Block {
	rows := make([][]Block, b.H)
	for y := 0; y < b.H; y++ {
		rows[y] = make([]Block, b.W)
		copy(rows[y], b.M[I(0, y, b.W):I(0, y+1, b.W)])
	}

	return rows
}

// RowsWith returns Rows with the cells of p drawn on top. Cells outside the
// board are dropped.
func (b *Board) RowsWith(p *Piece) [][]Block {
	rows := b.Rows()
	if p == nil {
		return rows
	}

	p.Cells(p.Point, func(x int, y int) {
		if x < 0 || x >= b.W || y < 0 || y >= b.H {
			return
		}

		rows[y][x] = p.Color
	})

	return rows
}

func (b *Board) Render() string {
	var s strings.Builder

	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			s.WriteRune(b.Cell(x, y).Rune())
		}

		if y == b.H-1 {
			break
		}

		s.WriteRune('\n')
	}

	return s.String()
}
