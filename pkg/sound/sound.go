package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/qnkhuat/tetristerm/pkg/event"
)

const sampleRate = beep.SampleRate(44100)

const (
	noteLength     = 80 * time.Millisecond
	gameOverLength = 400 * time.Millisecond
	volume         = -1.5
)

type note struct {
	freq     float64
	duration time.Duration
}

// lineClearNotes climbs one step per cleared row.
func lineClearNotes(lines int) []note {
	scale := []float64{523.25, 659.25, 783.99, 1046.50}

	if lines < 1 {
		return nil
	}
	if lines > len(scale) {
		lines = len(scale)
	}

	notes := make([]note, lines)
	for i := range notes {
		notes[i] = note{freq: scale[i], duration: noteLength}
	}

	return notes
}

func gameOverNotes() []note {
	return []note{
		{freq: 392.00, duration: gameOverLength / 2},
		{freq: 261.63, duration: gameOverLength},
	}
}

// streamer plays notes back to back.
func streamer(sr beep.SampleRate, notes []note) (beep.Streamer, error) {
	var streamers []beep.Streamer
	for _, n := range notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.2fHz: %w", n.freq, err)
		}

		streamers = append(streamers, beep.Take(sr.N(n.duration), tone))
	}

	return &effects.Volume{Streamer: beep.Seq(streamers...), Base: 2, Volume: volume}, nil
}

// Player plays short tones for game events. A Player that failed to open the
// audio device stays silent.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	ready  bool
	logger *zap.Logger
}

func NewPlayer(logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Player{mixer: &beep.Mixer{}, logger: logger}
}

// Init opens the speaker. Errors leave the player silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

func (p *Player) play(notes []note) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || len(notes) == 0 {
		return
	}

	s, err := streamer(sampleRate, notes)
	if err != nil {
		p.logger.Warn("failed to build sound", zap.Error(err))
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *Player) LinesCleared(lines int) {
	p.play(lineClearNotes(lines))
}

func (p *Player) GameOver() {
	p.play(gameOverNotes())
}

// Handle plays the tone of line clear and game over events.
func (p *Player) Handle(e interface{}) {
	switch ev := e.(type) {
	case *event.LinesClearedEvent:
		p.LinesCleared(ev.Lines)
	case *event.GameOverEvent:
		p.GameOver()
	}
}

func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	p.ready = false
}
