package mino

type Block int

func (b Block) String() string {
	return string(b.Rune())
}

func (b Block) Rune() rune {
	switch b {
	case BlockNone:
		return ' '
	case BlockTurquoise, BlockBlue, BlockPurple, BlockYellow, BlockOrange, BlockRed, BlockGreen:
		return '█'
	default:
		return '?'
	}
}

// Empty reports whether the block is an unoccupied cell.
func (b Block) Empty() bool {
	return b == BlockNone
}

// The order of these constants must be preserved, the value of each block is
// the color id stored in piece templates and on the board.
const (
	BlockNone Block = iota
	BlockTurquoise
	BlockBlue
	BlockPurple
	BlockYellow
	BlockOrange
	BlockRed
	BlockGreen
)

// BlockColors is the number of palette entries, including the unused BlockNone.
const BlockColors = 8
