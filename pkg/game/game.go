package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

// LineScore is awarded for every cleared row.
const LineScore = 100

// GameOverRow is the lowest row a piece may lock at before the game ends.
const GameOverRow = 1

type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusPlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// Game owns the board, the falling piece and the score of a single player.
// Games hold no goroutines or timers: the host serializes every call and
// supplies elapsed time through Advance.
type Game struct {
	Name string

	Board *mino.Board
	Piece *mino.Piece
	Next  *mino.Piece

	Score        int
	LinesCleared int
	Status       Status

	Clock *Clock

	spawner *mino.Spawner
	out     event.Handler
	logger  *zap.Logger
}

// NewGame returns an idle game. Events and draw requests are passed to out.
func NewGame(name string, spawner *mino.Spawner, out event.Handler, logger *zap.Logger) *Game {
	if out == nil {
		out = func(e interface{}) {
			// Do nothing
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Game{
		Name:    name,
		Board:   mino.NewBoard(mino.BoardWidth, mino.BoardHeight),
		Clock:   NewClock(DropInterval),
		spawner: spawner,
		out:     out,
		logger:  logger.With(zap.String("game", name)),
	}
}

func (g *Game) Playing() bool {
	return g.Status == StatusPlaying
}

// Start begins a new game with an empty board, whatever the current status.
func (g *Game) Start() {
	g.Board.Reset()
	g.Score = 0
	g.LinesCleared = 0
	g.Clock.Reset()

	g.Piece = g.spawner.Spawn()
	g.Next = g.spawner.Spawn()

	g.Status = StatusPlaying

	g.logger.Info("game started", zap.Stringer("piece", g.Piece), zap.Stringer("next", g.Next))

	g.out(&event.StartEvent{})
	g.out(&event.ScoreEvent{Score: g.Score})
	g.out(event.DrawAll)
}

// Advance adds elapsed time to the drop clock and lowers the piece once the
// drop interval has passed. It reports whether the piece was lowered.
func (g *Game) Advance(delta time.Duration) bool {
	if !g.Playing() {
		return false
	}

	if !g.Clock.Tick(delta) {
		return false
	}

	g.SoftDrop()
	return true
}

// SoftDrop lowers the piece by one row, locking it when it can not fall.
func (g *Game) SoftDrop() {
	if !g.Playing() {
		return
	}

	if !g.movePiece(0, 1) {
		g.landPiece()
	}

	g.out(event.DrawPlayerMatrix)
}

func (g *Game) MoveLeft() {
	g.MovePiece(-1, 0)
}

func (g *Game) MoveRight() {
	g.MovePiece(1, 0)
}

// MovePiece translates the piece, leaving it in place when the move collides.
func (g *Game) MovePiece(x int, y int) bool {
	if !g.Playing() || (x == 0 && y == 0) {
		return false
	}

	if !g.movePiece(x, y) {
		return false
	}

	g.out(event.DrawPlayerMatrix)
	return true
}

func (g *Game) movePiece(x int, y int) bool {
	g.Piece.Translate(x, y)
	if g.Board.Collides(g.Piece) {
		g.Piece.Translate(-x, -y)
		return false
	}

	return true
}

// Rotate turns the piece clockwise, nudging it one column right or left when
// needed.
func (g *Game) Rotate() bool {
	if !g.Playing() {
		return false
	}

	if !g.Board.RotatePiece(g.Piece) {
		return false
	}

	g.out(event.DrawPlayerMatrix)
	return true
}

func (g *Game) ProcessAction(a event.GameAction) {
	switch a {
	case event.ActionMoveLeft:
		g.MoveLeft()
	case event.ActionMoveRight:
		g.MoveRight()
	case event.ActionRotate:
		g.Rotate()
	case event.ActionSoftDrop:
		g.SoftDrop()
	}
}

func (g *Game) landPiece() {
	g.Board.Merge(g.Piece)

	cleared := g.Board.ClearFullRows()
	if cleared > 0 {
		g.LinesCleared += cleared
		g.Score += cleared * LineScore

		g.logger.Debug("cleared lines", zap.Int("lines", cleared), zap.Int("score", g.Score))

		g.out(&event.LinesClearedEvent{Lines: cleared, Score: g.Score})
		g.out(&event.ScoreEvent{Score: g.Score})
	}

	if g.Piece.Y <= GameOverRow {
		g.setGameOver()
		return
	}

	g.logger.Debug("landed piece", zap.Stringer("piece", g.Piece))

	g.Piece = g.Next
	g.Piece.Point = mino.SpawnPoint(g.Board.W, g.Piece.Size())
	g.Next = g.spawner.Spawn()
}

func (g *Game) setGameOver() {
	score := g.Score

	g.Status = StatusIdle

	g.logger.Info("game over", zap.Int("score", score), zap.Int("lines", g.LinesCleared), zap.Stringer("piece", g.Piece))

	g.out(&event.GameOverEvent{Score: score, Rows: g.Board.Rows()})

	g.Board.Reset()
	g.Score = 0
	g.out(&event.ScoreEvent{Score: g.Score})
	g.out(event.DrawAll)
}
