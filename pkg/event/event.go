package event

import (
	"github.com/qnkhuat/tetristerm/pkg/mino"
)

type Event struct {
	Message string
}

// ScoreEvent carries the score after every change, including resets.
type ScoreEvent struct {
	Event
	Score int
}

type LinesClearedEvent struct {
	Event
	Lines int
	Score int
}

type StartEvent struct {
	Event
}

// GameOverEvent is sent once when a game ends, with the score the game
// reached and a copy of the board as it was when the last piece locked.
type GameOverEvent struct {
	Event
	Score int
	Rows  [][]mino.Block
}

type DrawObject int

const (
	DrawPlayerMatrix DrawObject = iota
	DrawAll
)

// Handler receives events and draw requests.
type Handler func(e interface{})

// Handlers returns a Handler that passes every event to each non-nil handler
// in order.
func Handlers(handlers ...Handler) Handler {
	return func(e interface{}) {
		for _, h := range handlers {
			if h != nil {
				h(e)
			}
		}
	}
}
