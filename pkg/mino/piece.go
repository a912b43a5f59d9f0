package mino

import (
	"fmt"
)

// Piece is the falling piece. Point is the board location of the top-left
// corner of Shape.
type Piece struct {
	Point
	Shape
	Name  string
	Color Block
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s@%s", p.Name, p.Point)
}

// NewPiece returns a piece holding its own copy of the template shape.
func NewPiece(t Template, loc Point) *Piece {
	return &Piece{Point: loc, Shape: t.Shape.Copy(), Name: t.Name, Color: t.Color()}
}

func (p *Piece) Translate(dx int, dy int) {
	p.X += dx
	p.Y += dy
}

func (p *Piece) SetLocation(x int, y int) {
	p.X = x
	p.Y = y
}

// Cells calls fn with the board location of every occupied cell.
func (p *Piece) Cells(loc Point, fn func(x int, y int)) {
	for dy := range p.Shape {
		for dx, b := range p.Shape[dy] {
			if b == BlockNone {
				continue
			}

			fn(loc.X+dx, loc.Y+dy)
		}
	}
}
