package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

type recorder struct {
	events []interface{}
}

func (r *recorder) handle(e interface{}) {
	if _, ok := e.(event.DrawObject); ok {
		return
	}

	r.events = append(r.events, e)
}

func (r *recorder) scores() []int {
	var scores []int
	for _, e := range r.events {
		if ev, ok := e.(*event.ScoreEvent); ok {
			scores = append(scores, ev.Score)
		}
	}

	return scores
}

func (r *recorder) gameOver() *event.GameOverEvent {
	for _, e := range r.events {
		if ev, ok := e.(*event.GameOverEvent); ok {
			return ev
		}
	}

	return nil
}

func newTestGame(t *testing.T, templates ...mino.Template) (*Game, *recorder) {
	t.Helper()

	if len(templates) == 0 {
		templates = mino.Templates
	}

	r := &recorder{}
	g := NewGame(t.Name(), mino.NewSpawner(1, templates, mino.BoardWidth), r.handle, nil)

	return g, r
}

func fillRow(b *mino.Board, y int, skip ...int) {
	for x := 0; x < b.W; x++ {
		filled := true
		for _, s := range skip {
			if x == s {
				filled = false
			}
		}

		if filled {
			b.SetCell(x, y, mino.BlockRed)
		}
	}
}

func occupied(b *mino.Board) int {
	n := 0
	for _, block := range b.M {
		if block != mino.BlockNone {
			n++
		}
	}

	return n
}

func TestGameStart(t *testing.T) {
	g, r := newTestGame(t)

	assert.Equal(t, StatusIdle, g.Status)
	assert.Nil(t, g.Piece)

	g.Board.SetCell(0, 19, mino.BlockRed)
	g.Score = 300

	g.Start()

	assert.Equal(t, StatusPlaying, g.Status)
	assert.Equal(t, 0, g.Score)
	assert.Equal(t, 0, occupied(g.Board))
	require.NotNil(t, g.Piece)
	require.NotNil(t, g.Next)
	assert.Equal(t, mino.SpawnPoint(mino.BoardWidth, g.Piece.Size()), g.Piece.Point)
	assert.Equal(t, []int{0}, r.scores())
	assert.IsType(t, &event.StartEvent{}, r.events[0])
}

func TestGameIdleIgnoresInput(t *testing.T) {
	g, r := newTestGame(t, mino.TemplateT)

	g.MoveLeft()
	g.MoveRight()
	g.SoftDrop()
	assert.False(t, g.Rotate())
	assert.False(t, g.Advance(time.Hour))
	g.ProcessAction(event.ActionSoftDrop)

	assert.Nil(t, g.Piece)
	assert.Equal(t, 0, occupied(g.Board))
	assert.Empty(t, r.events)
}

func TestGameMove(t *testing.T) {
	g, _ := newTestGame(t, mino.TemplateO)
	g.Start()

	start := g.Piece.Point

	g.MoveLeft()
	assert.Equal(t, start.X-1, g.Piece.X)

	g.ProcessAction(event.ActionMoveRight)
	g.ProcessAction(event.ActionMoveRight)
	assert.Equal(t, start.X+1, g.Piece.X)
	assert.Equal(t, start.Y, g.Piece.Y)
}

func TestGameMoveLeftAtWall(t *testing.T) {
	for _, tmpl := range mino.Templates {
		g, _ := newTestGame(t, tmpl)
		g.Start()

		// Push against the wall until the move is refused.
		for i := 0; i < mino.BoardWidth; i++ {
			g.MoveLeft()
		}

		loc := g.Piece.Point
		shape := g.Piece.Shape.Copy()

		assert.False(t, g.MovePiece(-1, 0), tmpl.Name)
		g.MoveLeft()

		assert.Equal(t, loc, g.Piece.Point, tmpl.Name)
		assert.True(t, g.Piece.Shape.Equal(shape), tmpl.Name)
	}

	g, _ := newTestGame(t, mino.TemplateO)
	g.Start()
	g.Piece.SetLocation(0, 5)

	g.MoveLeft()
	assert.Equal(t, mino.Point{X: 0, Y: 5}, g.Piece.Point)
}

func TestGameMoveBlocked(t *testing.T) {
	g, _ := newTestGame(t, mino.TemplateO)
	g.Start()

	g.Piece.SetLocation(4, 10)
	g.Board.SetCell(6, 11, mino.BlockRed)

	g.MoveRight()
	assert.Equal(t, mino.Point{X: 4, Y: 10}, g.Piece.Point)
}

func TestGameRotate(t *testing.T) {
	g, _ := newTestGame(t, mino.TemplateT)
	g.Start()

	g.Piece.SetLocation(4, 8)
	original := g.Piece.Shape.Copy()

	for i := 0; i < 4; i++ {
		g.ProcessAction(event.ActionRotate)
		assert.Equal(t, mino.Point{X: 4, Y: 8}, g.Piece.Point)
	}

	assert.True(t, g.Piece.Shape.Equal(original))
	assert.Equal(t, mino.BlockGreen, g.Piece.Color)
}

func TestGameSoftDrop(t *testing.T) {
	g, _ := newTestGame(t, mino.TemplateO)
	g.Start()

	y := g.Piece.Y
	g.SoftDrop()
	assert.Equal(t, y+1, g.Piece.Y)
	assert.Equal(t, 0, occupied(g.Board))
}

func TestGameAdvance(t *testing.T) {
	g, _ := newTestGame(t, mino.TemplateO)
	g.Start()

	assert.False(t, g.Advance(500*time.Millisecond))
	assert.False(t, g.Advance(500*time.Millisecond))
	assert.Equal(t, 0, g.Piece.Y)

	assert.True(t, g.Advance(16*time.Millisecond))
	assert.Equal(t, 1, g.Piece.Y)

	assert.False(t, g.Advance(16*time.Millisecond))
	assert.Equal(t, 1, g.Piece.Y)
}

func TestGameLock(t *testing.T) {
	g, r := newTestGame(t, mino.TemplateO)
	g.Start()

	g.Board.SetCell(0, 19, mino.BlockRed)
	g.Board.SetCell(9, 18, mino.BlockBlue)

	piece := g.Piece
	next := g.Next

	piece.SetLocation(4, 18)
	g.SoftDrop()

	assert.Equal(t, StatusPlaying, g.Status)
	assert.Equal(t, mino.BlockRed, g.Board.Cell(0, 19))
	assert.Equal(t, mino.BlockBlue, g.Board.Cell(9, 18))
	for _, p := range []mino.Point{{X: 4, Y: 18}, {X: 5, Y: 18}, {X: 4, Y: 19}, {X: 5, Y: 19}} {
		assert.Equal(t, piece.Color, g.Board.Cell(p.X, p.Y), "piece cell %s", p)
	}
	assert.Equal(t, 6, occupied(g.Board))

	assert.Same(t, next, g.Piece)
	assert.Equal(t, mino.SpawnPoint(mino.BoardWidth, next.Size()), g.Piece.Point)
	assert.NotSame(t, next, g.Next)
	assert.NotNil(t, g.Next)

	assert.Equal(t, 0, g.Score)
	assert.Equal(t, []int{0}, r.scores())
	assert.Nil(t, r.gameOver())
}

func TestGameLockPromotesNextFromPreview(t *testing.T) {
	g, _ := newTestGame(t, mino.TemplateI)
	g.Start()

	// The next piece may have been moved by a preview, it is placed at the
	// spawn point when promoted.
	g.Next.SetLocation(1, 1)
	g.Piece.SetLocation(3, 16)
	g.SoftDrop()

	assert.Equal(t, mino.Point{X: 3, Y: 0}, g.Piece.Point)
}

func TestGameLineClear(t *testing.T) {
	g, r := newTestGame(t, mino.TemplateO)
	g.Start()

	fillRow(g.Board, 19, 4, 5)
	g.Board.SetCell(0, 17, mino.BlockBlue)

	g.Piece.SetLocation(4, 18)
	g.SoftDrop()

	assert.Equal(t, 100, g.Score)
	assert.Equal(t, 1, g.LinesCleared)
	assert.Equal(t, []int{0, 100}, r.scores())

	assert.Equal(t, mino.BlockBlue, g.Board.Cell(0, 18))
	assert.Equal(t, mino.BlockYellow, g.Board.Cell(4, 19))
	assert.Equal(t, mino.BlockYellow, g.Board.Cell(5, 19))
	assert.Equal(t, 3, occupied(g.Board))
}

func TestGameDoubleLineClear(t *testing.T) {
	g, r := newTestGame(t, mino.TemplateO)
	g.Start()

	fillRow(g.Board, 18, 4, 5)
	fillRow(g.Board, 19, 4, 5)

	g.Piece.SetLocation(4, 17)
	g.SoftDrop()
	g.SoftDrop()

	assert.Equal(t, 200, g.Score)
	assert.Equal(t, 0, occupied(g.Board))

	var cleared *event.LinesClearedEvent
	for _, e := range r.events {
		if ev, ok := e.(*event.LinesClearedEvent); ok {
			cleared = ev
		}
	}
	require.NotNil(t, cleared)
	assert.Equal(t, 2, cleared.Lines)
	assert.Equal(t, 200, cleared.Score)
}

func TestGameFourOScenario(t *testing.T) {
	g, _ := newTestGame(t, mino.TemplateO)
	g.Start()

	// Columns 8 and 9 of the bottom two rows are already locked, four O pieces
	// dropped into columns 0-7 fill row 19 and row 18.
	g.Board.SetCell(8, 19, mino.BlockRed)
	g.Board.SetCell(9, 19, mino.BlockRed)

	for _, x := range []int{0, 2, 4, 6} {
		g.Piece.SetLocation(x, 17)
		g.SoftDrop()
		require.True(t, g.Playing())
		g.SoftDrop()
	}

	assert.Equal(t, 100, g.Score)
	for x := 0; x < 8; x++ {
		assert.Equal(t, mino.BlockYellow, g.Board.Cell(x, 19))
	}
	assert.True(t, g.Board.Empty(8, 19))
	assert.True(t, g.Board.Empty(9, 19))
	for x := 0; x < mino.BoardWidth; x++ {
		assert.True(t, g.Board.Empty(x, 0))
		assert.True(t, g.Board.Empty(x, 18))
	}
}

func TestGameOver(t *testing.T) {
	g, r := newTestGame(t, mino.TemplateO)
	g.Start()

	fillRow(g.Board, 19, 4, 5)
	g.Piece.SetLocation(4, 18)
	g.SoftDrop()
	require.Equal(t, 100, g.Score)

	// Fill the column under the spawn point so the next piece locks at row 1.
	for y := 3; y < mino.BoardHeight; y++ {
		g.Board.SetCell(4, y, mino.BlockRed)
	}

	piece := g.Piece
	next := g.Next

	g.SoftDrop()
	require.Equal(t, 1, piece.Y)
	g.SoftDrop()

	assert.Equal(t, StatusIdle, g.Status)
	assert.Same(t, piece, g.Piece, "no piece is spawned after game over")
	assert.Same(t, next, g.Next)

	over := r.gameOver()
	require.NotNil(t, over)
	assert.Equal(t, 100, over.Score)
	assert.Equal(t, piece.Color, over.Rows[1][4])
	assert.Equal(t, piece.Color, over.Rows[2][5])

	assert.Equal(t, 0, g.Score)
	assert.Equal(t, 0, occupied(g.Board))
	assert.Equal(t, []int{0, 100, 0}, r.scores())

	g.SoftDrop()
	g.MoveLeft()
	assert.Same(t, piece, g.Piece)

	g.Start()
	assert.True(t, g.Playing())
	assert.NotSame(t, piece, g.Piece)
}

func TestGameOverAtSpawn(t *testing.T) {
	g, r := newTestGame(t, mino.TemplateI)
	g.Start()

	g.Board.SetCell(4, 4, mino.BlockRed)

	g.SoftDrop()

	assert.Equal(t, StatusIdle, g.Status)
	require.NotNil(t, r.gameOver())
	assert.Equal(t, 0, r.gameOver().Score)
}
