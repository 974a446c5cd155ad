// Package menu drives the interactive text menus of the trainer.
package menu

import "github.com/verte-zerg/leitner/internal/scheduler"

// State is a node of the top-level menu graph.
type State int

const (
	Main State = iota + 1
	Sub
	Get
	Add
	Exit
)

func (s State) String() string {
	switch s {
	case Main:
		return "MAIN"
	case Sub:
		return "SUB"
	case Get:
		return "GET"
	case Add:
		return "ADD"
	case Exit:
		return "EXIT"
	default:
		return "State(?)"
	}
}

// Next returns the state reached from s on input. The bool is false when
// the input is not one of the options of s; the state is then unchanged.
// GET and ADD ignore input and always move on.
func Next(s State, input string) (State, bool) {
	switch s {
	case Main:
		switch input {
		case "1":
			return Sub, true
		case "2":
			return Get, true
		case "3":
			return Exit, true
		}
	case Sub:
		switch input {
		case "1":
			return Add, true
		case "2":
			return Main, true
		}
	case Get:
		return Main, true
	case Add:
		return Sub, true
	case Exit:
		return Exit, true
	}
	return s, false
}

type practiceAction int

const (
	showAnswer practiceAction = iota + 1
	skipCard
	updateCard
)

func parsePractice(input string) (practiceAction, bool) {
	switch input {
	case "y":
		return showAnswer, true
	case "n":
		return skipCard, true
	case "u":
		return updateCard, true
	}
	return 0, false
}

func parseLearning(input string) (scheduler.Outcome, bool) {
	switch input {
	case "y":
		return scheduler.Correct{}, true
	case "n":
		return scheduler.Wrong{}, true
	}
	return nil, false
}

type updateAction int

const (
	deleteCard updateAction = iota + 1
	editCard
)

func parseUpdate(input string) (updateAction, bool) {
	switch input {
	case "d":
		return deleteCard, true
	case "e":
		return editCard, true
	}
	return 0, false
}
