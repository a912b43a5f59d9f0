package mino

import (
	"math/rand"
	"sync"
)

// Spawner draws templates uniformly at random. Spawners created with the same
// seed produce the same sequence of pieces.
type Spawner struct {
	Templates []Template

	randomizer *rand.Rand

	width int
	*sync.Mutex
}

func NewSpawner(seed int64, templates []Template, width int) *Spawner {
	return &Spawner{Templates: templates, randomizer: rand.New(rand.NewSource(seed)), width: width, Mutex: new(sync.Mutex)}
}

// Spawn returns a new piece at the spawn point.
func (s *Spawner) Spawn() *Piece {
	s.Lock()
	t := s.Templates[s.randomizer.Intn(len(s.Templates))]
	s.Unlock()

	return NewPiece(t, SpawnPoint(s.width, t.Size()))
}

// SpawnPoint centers a shape of the given size on the top row.
func SpawnPoint(width int, size int) Point {
	return Point{(width / 2) - (size / 2), 0}
}
