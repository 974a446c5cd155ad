package model

import "fmt"

// Phase is the review round that decides which boxes are due.
type Phase int

const (
	PhaseFirst  Phase = iota + 1 // box 1 only
	PhaseSecond                  // boxes 1 and 2
	PhaseThird                   // every active box
)

var phaseNames = [...]string{PhaseFirst: "FIRST", PhaseSecond: "SECOND", PhaseThird: "THIRD"}

func (p Phase) valid() bool {
	return p >= PhaseFirst && p <= PhaseThird
}

// String returns FIRST, SECOND or THIRD; invalid values render as Phase(n).
func (p Phase) String() string {
	if p.valid() {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Next returns the cyclic successor. THIRD wraps to FIRST, and so does any
// invalid value.
func (p Phase) Next() Phase {
	switch p {
	case PhaseFirst:
		return PhaseSecond
	case PhaseSecond:
		return PhaseThird
	default:
		return PhaseFirst
	}
}

// Due reports whether a card in the given box is reviewed in this phase.
func (p Phase) Due(box int) bool {
	switch p {
	case PhaseFirst:
		return box == FirstBox
	case PhaseSecond:
		return box < SecondPhaseLimit
	case PhaseThird:
		return box < MasteredBox
	default:
		return false
	}
}
