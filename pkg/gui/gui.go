package gui

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/game"
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

// TickInterval is how often elapsed time is fed to the game.
const TickInterval = 50 * time.Millisecond

const (
	pageGame     = "game"
	pageTitle    = "title"
	pageGameOver = "gameover"

	labelStart     = "Start"
	labelPlayAgain = "Play again"
	labelQuit      = "Quit"
)

// Options configures a GUI. Events, when set, receives every game event after
// the GUI has handled it.
type Options struct {
	Name        string
	Theme       Theme
	BlockWidth  int
	Keybindings []*Keybinding
	Events      event.Handler
	Logger      *zap.Logger
}

// GUI is the terminal front end of a single game. Everything except Run is
// called from the tview event loop.
type GUI struct {
	App  *tview.Application
	Game *game.Game

	pages       *tview.Pages
	mtx         *tview.TextView
	previewView *tview.TextView
	side        *tview.TextView
	status      *tview.TextView
	title       *tview.Modal
	gameOver    *tview.Modal

	buffer bytes.Buffer

	theme       Theme
	blockWidth  int
	keybindings []*Keybinding
	logger      *zap.Logger

	overlay  bool
	lastOver *event.GameOverEvent
}

func New(spawner *mino.Spawner, dropInterval time.Duration, opts Options) *GUI {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.BlockWidth < 1 {
		opts.BlockWidth = 2
	}

	g := &GUI{
		App:         tview.NewApplication(),
		theme:       opts.Theme,
		blockWidth:  opts.BlockWidth,
		keybindings: opts.Keybindings,
		logger:      opts.Logger,
	}

	g.Game = game.NewGame(opts.Name, spawner, event.Handlers(g.handleEvent, opts.Events), opts.Logger)
	g.Game.Clock = game.NewClock(dropInterval)

	g.initLayout()

	return g
}

func newMatrixView() *tview.TextView {
	tv := tview.NewTextView().
		SetScrollable(false).
		SetTextAlign(tview.AlignLeft).
		SetWrap(false).
		SetWordWrap(false)

	tv.SetDynamicColors(true)
	return tv
}

func (g *GUI) initLayout() {
	g.mtx = newMatrixView()
	g.side = newMatrixView()
	g.status = newMatrixView().SetText(HelpText(g.keybindings) + "  quit: Esc")

	g.previewView = newMatrixView()

	leftBtn := tview.NewButton("◀").SetSelectedFunc(g.Game.MoveLeft)
	rightBtn := tview.NewButton("▶").SetSelectedFunc(g.Game.MoveRight)
	rotateBtn := tview.NewButton("⟳").SetSelectedFunc(func() { g.Game.Rotate() })
	dropBtn := tview.NewButton("▼").SetSelectedFunc(g.Game.SoftDrop)

	buttons := tview.NewGrid().
		SetColumns(5, 1, 5, 1, 5, 1, 5).
		SetRows(1).
		AddItem(leftBtn, 0, 0, 1, 1, 0, 0, false).
		AddItem(rightBtn, 0, 2, 1, 1, 0, 0, false).
		AddItem(rotateBtn, 0, 4, 1, 1, 0, 0, false).
		AddItem(dropBtn, 0, 6, 1, 1, 0, 0, false)

	boardW := 2 + mino.BoardWidth*g.blockWidth
	boardH := 2 + mino.BoardHeight

	sidePanel := tview.NewGrid().
		SetRows(previewSize, -1).
		SetColumns(-1).
		AddItem(g.previewView, 0, 0, 1, 1, 0, 0, false).
		AddItem(g.side, 1, 0, 1, 1, 0, 0, false)

	gameGrid := tview.NewGrid().
		SetRows(-1, boardH, 1, 1, -1).
		SetColumns(-1, boardW, 1, previewSize*g.blockWidth+2, -1).
		AddItem(tview.NewBox(), 0, 0, 1, 5, 0, 0, false).
		AddItem(tview.NewBox(), 1, 0, 3, 1, 0, 0, false).
		AddItem(g.mtx, 1, 1, 1, 1, 0, 0, false).
		AddItem(sidePanel, 1, 3, 1, 1, 0, 0, false).
		AddItem(buttons, 2, 1, 1, 3, 0, 0, false).
		AddItem(g.status, 3, 1, 1, 3, 0, 0, false).
		AddItem(tview.NewBox(), 1, 4, 3, 1, 0, 0, false).
		AddItem(tview.NewBox(), 4, 0, 1, 5, 0, 0, false)

	g.title = tview.NewModal().
		SetText("tetristerm\n\n" + HelpText(g.keybindings)).
		AddButtons([]string{labelStart, labelQuit}).
		SetDoneFunc(g.handleModal)

	g.gameOver = tview.NewModal().
		AddButtons([]string{labelPlayAgain, labelQuit}).
		SetDoneFunc(g.handleModal)

	g.pages = tview.NewPages().
		AddPage(pageGame, gameGrid, true, true).
		AddPage(pageTitle, g.title, false, false).
		AddPage(pageGameOver, g.gameOver, false, false)

	g.App.SetRoot(g.pages, true).
		EnableMouse(true).
		SetInputCapture(g.handleKeypress)

	g.drawAll()
	g.showModal(pageTitle, g.title)
}

func (g *GUI) showModal(page string, modal *tview.Modal) {
	g.overlay = true
	g.pages.ShowPage(page)
	g.App.SetFocus(modal)
}

func (g *GUI) hideModals() {
	g.overlay = false
	g.pages.HidePage(pageTitle)
	g.pages.HidePage(pageGameOver)
	g.App.SetFocus(g.mtx)
}

func (g *GUI) handleModal(_ int, label string) {
	switch label {
	case labelStart, labelPlayAgain:
		g.hideModals()
		g.Game.Start()
	case labelQuit:
		g.App.Stop()
	}
}

func (g *GUI) handleKeypress(ev *tcell.EventKey) *tcell.EventKey {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		g.App.Stop()
		return nil
	}

	if g.overlay {
		return ev
	}

	a := actionFor(g.keybindings, ev)
	if a == event.ActionUnknown {
		return ev
	}

	g.Game.ProcessAction(a)
	return nil
}

func (g *GUI) handleEvent(e interface{}) {
	switch ev := e.(type) {
	case event.DrawObject:
		switch ev {
		case event.DrawPlayerMatrix:
			g.drawPlayerMatrix()
		default:
			g.drawAll()
		}
	case *event.ScoreEvent:
		g.drawSide()
	case *event.GameOverEvent:
		g.lastOver = ev

		g.gameOver.SetText(fmt.Sprintf("Game over\n\nScore: %d", ev.Score))
		g.showModal(pageGameOver, g.gameOver)
	case *event.StartEvent:
		g.lastOver = nil
		g.logger.Debug("new game")
	}
}

func (g *GUI) drawPlayerMatrix() {
	var rows [][]mino.Block
	if g.Game.Playing() {
		rows = g.Game.Board.RowsWith(g.Game.Piece)
	} else {
		rows = g.Game.Board.Rows()
	}

	renderMatrix(&g.buffer, rows, g.blockWidth, true, g.theme)
	g.mtx.Clear()
	g.mtx.Write(g.buffer.Bytes())

	var next *mino.Piece
	if g.Game.Playing() {
		next = g.Game.Next
	}

	renderMatrix(&g.buffer, previewRows(next), g.blockWidth, false, g.theme)
	g.previewView.Clear()
	g.previewView.Write(g.buffer.Bytes())
}

func (g *GUI) drawSide() {
	renderSide(&g.buffer, g.Game.Score, g.Game.LinesCleared, g.theme)
	g.side.Clear()
	g.side.Write(g.buffer.Bytes())
}

func (g *GUI) drawAll() {
	g.drawPlayerMatrix()
	g.drawSide()
}

// Run drives the drop clock until ctx is done or the application stops.
// It blocks while the application is running.
func (g *GUI) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go g.tick(ctx)

	go func() {
		<-ctx.Done()
		g.App.Stop()
	}()

	if err := g.App.Run(); err != nil {
		return fmt.Errorf("failed to run application: %w", err)
	}

	return nil
}

func (g *GUI) tick(ctx context.Context) {
	t := time.NewTicker(TickInterval)
	defer t.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			delta := now.Sub(last)
			last = now

			g.App.QueueUpdateDraw(func() {
				g.Game.Advance(delta)
			})
		}
	}
}

// Snapshot returns the board of the last finished game, or the current one
// when no game has ended since the last start.
func (g *GUI) Snapshot() ([][]mino.Block, int) {
	if g.lastOver != nil {
		return g.lastOver.Rows, g.lastOver.Score
	}

	return g.Game.Board.RowsWith(g.Game.Piece), g.Game.Score
}
