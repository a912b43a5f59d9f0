package mino

import (
	"strings"
)

// Shape is a square matrix of blocks indexed [row][column]. A nonzero cell is
// occupied and holds the color of the piece.
type Shape [][]Block

// Size returns N for an N x N shape.
func (s Shape) Size() int {
	return len(s)
}

func (s Shape) Copy() Shape {
	c := make(Shape, len(s))
	for y := range s {
		c[y] = make([]Block, len(s[y]))
		copy(c[y], s[y])
	}

	return c
}

func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}

	for y := range s {
		if len(s[y]) != len(other[y]) {
			return false
		}

		for x := range s[y] {
			if s[y][x] != other[y][x] {
				return false
			}
		}
	}

	return true
}

// Color returns the first occupied cell value, or BlockNone for an empty shape.
func (s Shape) Color() Block {
	for y := range s {
		for _, b := range s[y] {
			if b != BlockNone {
				return b
			}
		}
	}

	return BlockNone
}

// Rotated returns a copy of the shape turned a quarter turn clockwise.
func (s Shape) Rotated() Shape {
	n := len(s)

	r := make(Shape, n)
	for i := 0; i < n; i++ {
		r[i] = make([]Block, n)
		for j := 0; j < n; j++ {
			r[i][j] = s[n-1-j][i]
		}
	}

	return r
}

func (s Shape) Render() string {
	var b strings.Builder

	for y := range s {
		for _, c := range s[y] {
			if c == BlockNone {
				b.WriteRune('.')
			} else {
				b.WriteRune('X')
			}
		}

		b.WriteRune('\n')
	}

	return b.String()
}

type Template struct {
	Name  string
	Shape Shape
}

func (t Template) Color() Block {
	return t.Shape.Color()
}

func (t Template) Size() int {
	return t.Shape.Size()
}

func newTemplate(name string, b Block, rows ...string) Template {
	shape := make(Shape, len(rows))
	for y, row := range rows {
		shape[y] = make([]Block, len(row))
		for x, c := range row {
			if c == 'X' {
				shape[y][x] = b
			}
		}
	}

	return Template{Name: name, Shape: shape}
}

var (
	TemplateI = newTemplate("I", BlockTurquoise,
		".X..",
		".X..",
		".X..",
		".X..")

	TemplateL = newTemplate("L", BlockBlue,
		".X.",
		".X.",
		"XX.")

	TemplateJ = newTemplate("J", BlockPurple,
		".X.",
		".X.",
		".XX")

	TemplateO = newTemplate("O", BlockYellow,
		"XX",
		"XX")

	TemplateS = newTemplate("S", BlockOrange,
		".XX",
		"XX.",
		"...")

	TemplateZ = newTemplate("Z", BlockRed,
		"XX.",
		".XX",
		"...")

	TemplateT = newTemplate("T", BlockGreen,
		".X.",
		"XXX",
		"...")
)

// Templates is the fixed piece catalog. Template colors follow catalog order.
var Templates = []Template{TemplateI, TemplateL, TemplateJ, TemplateO, TemplateS, TemplateZ, TemplateT}
