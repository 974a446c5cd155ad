// Package deck orders a batch of due cards for presentation.
package deck

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/leitner/internal/model"
)

// Shuffler reorders due batches.
type Shuffler struct {
	rnd *rand.Rand
}

// New returns a Shuffler seeded with the current time.
func New() *Shuffler {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Shuffler with a fixed seed.
func NewSeeded(seed int64) *Shuffler {
	return &Shuffler{rnd: rand.New(rand.NewSource(seed))}
}

// Shuffle returns a shuffled copy of cards; the input is left untouched.
func (s *Shuffler) Shuffle(cards []model.Card) []model.Card {
	out := make([]model.Card, len(cards))
	copy(out, cards)
	s.rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
