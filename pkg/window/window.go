package window

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

const (
	BlockSize  = 30
	drawnSize  = BlockSize - 1
	panelCells = 6

	ScreenWidth  = (mino.BoardWidth + panelCells) * BlockSize
	ScreenHeight = mino.BoardHeight * BlockSize

	// Held movement keys repeat after repeatDelay ticks, every repeatEvery.
	repeatDelay = 15
	repeatEvery = 4
)

var (
	background = color.RGBA{0x20, 0x20, 0x20, 0xff}
	panel      = color.RGBA{0x2c, 0x2c, 0x2c, 0xff}
)

type binding struct {
	keys   []ebiten.Key
	action event.GameAction
	repeat bool
}

var bindings = []binding{
	{keys: []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyH}, action: event.ActionMoveLeft, repeat: true},
	{keys: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyL}, action: event.ActionMoveRight, repeat: true},
	{keys: []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyK}, action: event.ActionRotate},
	{keys: []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyJ}, action: event.ActionSoftDrop, repeat: true},
}

// Window is an ebiten.Game drawing a single game in a desktop window.
type Window struct {
	Game *game.Game

	palette [mino.BlockColors]color.Color
	logger  *zap.Logger

	lastScore int
	over      bool
}

// New returns a window for a new game. Events, when not nil, also receives
// every game event.
func New(spawner *mino.Spawner, dropInterval time.Duration, palette [mino.BlockColors]string, events event.Handler, logger *zap.Logger) (*Window, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Window{logger: logger}
	for i, hex := range palette {
		if i == int(mino.BlockNone) {
			w.palette[i] = background
			continue
		}

		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i, err)
		}
		w.palette[i] = c
	}

	w.Game = game.NewGame("window", spawner, event.Handlers(w.handleEvent, events), logger)
	w.Game.Clock = game.NewClock(dropInterval)

	return w, nil
}

func (w *Window) handleEvent(e interface{}) {
	switch ev := e.(type) {
	case *event.GameOverEvent:
		w.over = true
		w.lastScore = ev.Score
	case *event.StartEvent:
		w.over = false
	}
}

func pressed(keys []ebiten.Key, repeat bool) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}

		if !repeat {
			continue
		}

		d := inpututil.KeyPressDuration(k)
		if d >= repeatDelay && (d-repeatDelay)%repeatEvery == 0 {
			return true
		}
	}

	return false
}

func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if !w.Game.Playing() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			w.Game.Start()
		}
		return nil
	}

	for _, b := range bindings {
		if pressed(b.keys, b.repeat) {
			w.Game.ProcessAction(b.action)
		}
	}

	w.Game.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (w *Window) drawCell(screen *ebiten.Image, x int, y int, b mino.Block) {
	if b.Empty() || int(b) >= len(w.palette) {
		return
	}

	vector.DrawFilledRect(screen, float32(x*BlockSize), float32(y*BlockSize), drawnSize, drawnSize, w.palette[b], false)
}

func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	var rows [][]mino.Block
	if w.Game.Playing() {
		rows = w.Game.Board.RowsWith(w.Game.Piece)
	} else {
		rows = w.Game.Board.Rows()
	}
	for y, row := range rows {
		for x, b := range row {
			w.drawCell(screen, x, y, b)
		}
	}

	panelX := mino.BoardWidth * BlockSize
	vector.DrawFilledRect(screen, float32(panelX), 0, panelCells*BlockSize, ScreenHeight, panel, false)

	if w.Game.Playing() && w.Game.Next != nil {
		w.Game.Next.Cells(mino.Point{X: mino.BoardWidth + 1, Y: 1}, func(x int, y int) {
			w.drawCell(screen, x, y, w.Game.Next.Color)
		})
	}

	textX := panelX + BlockSize/2
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score %d", w.Game.Score), textX, 6*BlockSize)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Lines %d", w.Game.LinesCleared), textX, 6*BlockSize+20)

	if w.Game.Playing() {
		return
	}

	msg := "Press Enter to start"
	if w.over {
		msg = fmt.Sprintf("Game over\nScore %d\n\nPress Enter to play again", w.lastScore)
	}
	ebitenutil.DebugPrintAt(screen, msg, BlockSize, ScreenHeight/2-BlockSize)
}

func (w *Window) Layout(outsideWidth int, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
