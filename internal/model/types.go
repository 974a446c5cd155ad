// Package model defines shared data structures.
package model

const (
	// FirstBox is the box every new or forgotten card lands in.
	FirstBox = 1
	// SecondPhaseLimit is the first box the SECOND phase leaves out.
	SecondPhaseLimit = 3
	// MasteredBox is the box at which a card leaves the active set.
	MasteredBox = 4
)

// Card is a single question/answer flashcard and its current box.
type Card struct {
	ID       int64  `db:"id"`
	Question string `db:"question" validate:"required"`
	Answer   string `db:"answer" validate:"required"`
	Box      int    `db:"box" validate:"min=1,max=4"`
}

// Config defines practice settings.
type Config struct {
	DBPath  string `validate:"required"`
	Shuffle bool
	Width   int    `validate:"gte=0"`
	Color   string `validate:"oneof=auto always never"`
}
