package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/leitner/internal/model"
	"github.com/verte-zerg/leitner/internal/scheduler"
)

// MaxLineBytes caps one line of input. Longer lines are drained and rejected.
const MaxLineBytes = 1 << 20

var (
	mainOptions = []string{"Add flashcards", "Practice flashcards", "Exit"}
	subOptions  = []string{"Add a new flashcard", "Exit"}

	errLineTooLong = errors.New("input line too long")
)

// Scheduler is what the menus need from the review scheduler.
type Scheduler interface {
	NextBatch(ctx context.Context) ([]model.Card, error)
	AddCard(ctx context.Context, question, answer string) (model.Card, error)
	ApplyOutcome(ctx context.Context, card model.Card, outcome scheduler.Outcome) error
}

// Options tunes the runner output.
type Options struct {
	// Width wraps card text; zero uses the terminal width, if any.
	Width int
	// Color is auto, always or never.
	Color string
}

// Runner reads menu choices line by line and prints prompts.
type Runner struct {
	in      *bufio.Reader
	out     io.Writer
	sched   Scheduler
	styles  styles
	width   int
	maxLine int
}

// NewRunner constructs a menu runner.
func NewRunner(in io.Reader, out io.Writer, sched Scheduler, opts Options) *Runner {
	return &Runner{
		in:      bufio.NewReader(in),
		out:     out,
		sched:   sched,
		styles:  newStyles(out, opts.Color),
		width:   outputWidth(out, opts.Width),
		maxLine: MaxLineBytes,
	}
}

// Run loops over the menus until the user exits or input ends. Only store
// and scheduler failures are returned.
func (r *Runner) Run(ctx context.Context) error {
	state := Main
	for state != Exit {
		var err error
		switch state {
		case Main:
			state, err = r.chooseMenu(Main, mainOptions)
		case Sub:
			state, err = r.chooseMenu(Sub, subOptions)
			r.println()
		case Get:
			err = r.practice(ctx)
			state, _ = Next(Get, "")
		case Add:
			err = r.addCard(ctx)
			state, _ = Next(Add, "")
		default:
			return fmt.Errorf("menu: unknown state %s", state)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}
	r.println()
	r.println("Bye!")
	return nil
}

func (r *Runner) chooseMenu(state State, options []string) (State, error) {
	show := func() {
		for i, option := range options {
			r.printf("%d. %s\n", i+1, r.styles.option.Render(option))
		}
	}
	return prompt(r, show, func(input string) (State, bool) {
		return Next(state, input)
	})
}

func (r *Runner) practice(ctx context.Context) error {
	cards, err := r.sched.NextBatch(ctx)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		r.println()
		r.println(r.styles.notice.Render("There is no flashcard to practice!"))
		r.println()
		return nil
	}
	for _, card := range cards {
		if err := r.review(ctx, card); err != nil {
			return err
		}
	}
	r.println()
	return nil
}

func (r *Runner) review(ctx context.Context, card model.Card) error {
	r.println()
	r.field("Question:", card.Question)
	action, err := prompt(r, r.showPractice, parsePractice)
	if err != nil {
		return err
	}
	switch action {
	case showAnswer:
		r.println()
		r.field("Answer:", card.Answer)
		outcome, err := prompt(r, r.showLearning, parseLearning)
		if err != nil {
			return err
		}
		return r.sched.ApplyOutcome(ctx, card, outcome)
	case updateCard:
		r.println()
		choice, err := prompt(r, r.showUpdate, parseUpdate)
		if err != nil {
			return err
		}
		if choice == deleteCard {
			return r.sched.ApplyOutcome(ctx, card, scheduler.Delete{})
		}
		return r.edit(ctx, card)
	}
	return nil
}

func (r *Runner) edit(ctx context.Context, card model.Card) error {
	for {
		r.println()
		r.field("current question:", card.Question)
		r.println("please write a new question:")
		question, err := r.readLine()
		if r.rejectLong(err) {
			continue
		}
		if err != nil {
			return err
		}
		r.println()
		r.field("current answer:", card.Answer)
		r.println("please write a new answer:")
		answer, err := r.readLine()
		if r.rejectLong(err) {
			continue
		}
		if err != nil {
			return err
		}
		err = r.sched.ApplyOutcome(ctx, card, scheduler.Edit{Question: question, Answer: answer})
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			r.println(r.styles.warning.Render(verr.Error()))
			continue
		}
		return err
	}
}

func (r *Runner) addCard(ctx context.Context) error {
	for {
		question, err := r.readNonBlank("Question")
		if err != nil {
			return err
		}
		answer, err := r.readNonBlank("Answer")
		if err != nil {
			return err
		}
		_, err = r.sched.AddCard(ctx, question, answer)
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			r.println(r.styles.warning.Render(verr.Error()))
			continue
		}
		return err
	}
}

// readNonBlank asks for a value until a non-blank line arrives.
func (r *Runner) readNonBlank(name string) (string, error) {
	for {
		r.println(r.styles.label.Render(name + ":"))
		line, err := r.readLine()
		if r.rejectLong(err) {
			continue
		}
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
	}
}

func (r *Runner) showPractice() {
	r.println(`press "y" to see the answer:`)
	r.println(`press "n" to skip:`)
	r.println(`press "u" to update:`)
}

func (r *Runner) showLearning() {
	r.println(`press "y" if your answer is correct:`)
	r.println(`press "n" if your answer is wrong:`)
}

func (r *Runner) showUpdate() {
	r.println(`press "d" to delete the flashcard:`)
	r.println(`press "e" to edit the flashcard:`)
}

// prompt shows a menu and reads lines until parse accepts one. Unknown input
// re-displays the same menu.
func prompt[T any](r *Runner, show func(), parse func(string) (T, bool)) (T, error) {
	for {
		show()
		line, err := r.readLine()
		if r.rejectLong(err) {
			continue
		}
		if err != nil {
			var zero T
			return zero, err
		}
		if v, ok := parse(line); ok {
			return v, nil
		}
		r.println()
		r.println(r.styles.warning.Render(line + " is not an option"))
		r.println()
	}
}

// readLine returns the next trimmed line. A line over maxLine bytes is
// consumed whole and reported as errLineTooLong.
func (r *Runner) readLine() (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := r.in.ReadLine()
		if err != nil {
			if len(buf) == 0 && !tooLong {
				return "", err
			}
			break
		}
		if !tooLong {
			if len(buf)+len(chunk) > r.maxLine {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", errLineTooLong
	}
	return strings.TrimSpace(string(buf)), nil
}

// rejectLong reports an overlong line and tells the caller to ask again.
func (r *Runner) rejectLong(err error) bool {
	if !errors.Is(err, errLineTooLong) {
		return false
	}
	r.println()
	r.println(r.styles.warning.Render(fmt.Sprintf("input is longer than %d bytes", r.maxLine)))
	r.println()
	return true
}

// field prints a labelled value, wrapping the value with a hanging indent.
func (r *Runner) field(label, value string) {
	indent := runewidth.StringWidth(label) + 1
	width := 0
	if r.width > 0 {
		width = r.width - indent
		if width < 10 {
			width = 10
		}
	}
	lines := wrapText(value, width)
	r.printf("%s %s\n", r.styles.label.Render(label), r.styles.answer.Render(lines[0]))
	pad := strings.Repeat(" ", indent)
	for _, line := range lines[1:] {
		r.printf("%s%s\n", pad, r.styles.answer.Render(line))
	}
}

func (r *Runner) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(r.out, format, args...); err != nil {
		// Best-effort output.
		_ = err
	}
}

func (r *Runner) println(args ...any) {
	if _, err := fmt.Fprintln(r.out, args...); err != nil {
		// Best-effort output.
		_ = err
	}
}
