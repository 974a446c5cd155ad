package menu

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/leitner/internal/model"
	"github.com/verte-zerg/leitner/internal/scheduler"
	"github.com/verte-zerg/leitner/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "leitner.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func runScript(t *testing.T, st *store.Store, script string) string {
	t.Helper()
	var out bytes.Buffer
	r := NewRunner(strings.NewReader(script), &out, scheduler.New(st), Options{Color: "never"})
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func listCards(t *testing.T, st *store.Store) []model.Card {
	t.Helper()
	cards, err := st.ListCards(context.Background())
	if err != nil {
		t.Fatalf("list cards: %v", err)
	}
	return cards
}

func TestRunAddAndPractice(t *testing.T) {
	st := openTestStore(t)
	out := runScript(t, st, "1\n1\nWhat is Go?\nA language\n2\n2\ny\ny\n3\n")

	cards := listCards(t, st)
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %+v", cards)
	}
	if cards[0].Question != "What is Go?" || cards[0].Answer != "A language" || cards[0].Box != 2 {
		t.Fatalf("unexpected card: %+v", cards[0])
	}
	for _, want := range []string{
		"1. Add flashcards",
		"1. Add a new flashcard",
		"Question: What is Go?",
		`press "u" to update:`,
		"Answer: A language",
		`press "y" if your answer is correct:`,
		"Bye!",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunInvalidChoiceReprompts(t *testing.T) {
	st := openTestStore(t)
	out := runScript(t, st, "x\n1\nzz\n2\n3\n")

	if !strings.Contains(out, "x is not an option") || !strings.Contains(out, "zz is not an option") {
		t.Fatalf("expected invalid choices to be reported:\n%s", out)
	}
	if got := strings.Count(out, "1. Add flashcards"); got != 3 {
		t.Fatalf("expected main menu shown 3 times, got %d:\n%s", got, out)
	}
	if got := strings.Count(out, "1. Add a new flashcard"); got != 2 {
		t.Fatalf("expected sub menu shown 2 times, got %d:\n%s", got, out)
	}
}

func TestRunPracticeWithoutCards(t *testing.T) {
	st := openTestStore(t)
	out := runScript(t, st, "2\n3\n")
	if !strings.Contains(out, "There is no flashcard to practice!") {
		t.Fatalf("expected empty notice:\n%s", out)
	}
}

func TestRunAddRepromptsBlankInput(t *testing.T) {
	st := openTestStore(t)
	out := runScript(t, st, "1\n1\n\n   \nQ\n\nA\n2\n3\n")

	cards := listCards(t, st)
	if len(cards) != 1 || cards[0].Question != "Q" || cards[0].Answer != "A" {
		t.Fatalf("unexpected cards: %+v", cards)
	}
	if got := strings.Count(out, "Question:"); got != 3 {
		t.Fatalf("expected 3 question prompts, got %d:\n%s", got, out)
	}
	if got := strings.Count(out, "Answer:"); got != 2 {
		t.Fatalf("expected 2 answer prompts, got %d:\n%s", got, out)
	}
}

func TestRunWrongAnswerAndSkip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	first, err := st.CreateCard(ctx, "first", "1")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	if _, err := st.CreateCard(ctx, "second", "2"); err != nil {
		t.Fatalf("create card: %v", err)
	}

	// Wrong answer on the first card, skip the second.
	runScript(t, st, "2\ny\nn\nn\n3\n")

	cards := listCards(t, st)
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %+v", cards)
	}
	for _, card := range cards {
		if card.Box != 1 {
			t.Fatalf("expected card %d to stay in box 1, got %d", card.ID, card.Box)
		}
	}
	if cards[0].ID != first.ID {
		t.Fatalf("unexpected order: %+v", cards)
	}
}

func TestRunEditKeepsBlankQuestion(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if _, err := st.CreateCard(ctx, "question", "old"); err != nil {
		t.Fatalf("create card: %v", err)
	}

	out := runScript(t, st, "2\nu\nq\ne\n\nnew answer\n3\n")

	cards := listCards(t, st)
	if len(cards) != 1 || cards[0].Question != "question" || cards[0].Answer != "new answer" {
		t.Fatalf("unexpected card after edit: %+v", cards)
	}
	if !strings.Contains(out, "q is not an option") {
		t.Fatalf("expected invalid update choice to be reported:\n%s", out)
	}
	if !strings.Contains(out, "current question: question") || !strings.Contains(out, "please write a new answer:") {
		t.Fatalf("expected edit prompts:\n%s", out)
	}
}

func TestRunDeleteCard(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.CreateCard(context.Background(), "q", "a"); err != nil {
		t.Fatalf("create card: %v", err)
	}

	runScript(t, st, "2\nu\nd\n3\n")

	if cards := listCards(t, st); len(cards) != 0 {
		t.Fatalf("expected card to be deleted, got %+v", cards)
	}
}

func TestRunMasteredCardIsPruned(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	card, err := st.CreateCard(ctx, "q", "a")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	if err := st.SetBox(ctx, card.ID, 3); err != nil {
		t.Fatalf("set box: %v", err)
	}

	// FIRST and SECOND have nothing due, so the first batch comes from THIRD.
	runScript(t, st, "2\ny\ny\n3\n")

	if cards := listCards(t, st); len(cards) != 0 {
		t.Fatalf("expected mastered card to be pruned, got %+v", cards)
	}
}

func TestRunEndOfInputExits(t *testing.T) {
	st := openTestStore(t)
	out := runScript(t, st, "1\n")
	if !strings.Contains(out, "Bye!") {
		t.Fatalf("expected farewell on end of input:\n%s", out)
	}
}

func TestFieldWrapsWithHangingIndent(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(strings.NewReader(""), &out, nil, Options{Width: 22, Color: "never"})
	r.field("Question:", "what is the capital of France")

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", lines)
	}
	if lines[0] != "Question: what is the" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "          ") {
		t.Fatalf("expected hanging indent: %q", lines[1])
	}
}

func TestRunLongLineReprompts(t *testing.T) {
	st := openTestStore(t)
	out := runScript(t, st, strings.Repeat("x", 70*1024)+"\n3\n")

	if !strings.Contains(out, "is not an option") {
		t.Fatalf("expected long choice to be rejected")
	}
	if !strings.Contains(out, "Bye!") {
		t.Fatalf("expected session to continue to exit")
	}
}

func TestRunOverlongLineIsDrained(t *testing.T) {
	st := openTestStore(t)
	var out bytes.Buffer
	script := "1\n1\n" + strings.Repeat("q", 40) + "\nshort q\nshort a\n2\n" + strings.Repeat("9", 40) + "\n3\n"
	r := NewRunner(strings.NewReader(script), &out, scheduler.New(st), Options{Color: "never"})
	r.maxLine = 16
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := strings.Count(out.String(), "input is longer than 16 bytes"); got != 2 {
		t.Fatalf("expected 2 overlong warnings, got %d:\n%s", got, out.String())
	}
	cards := listCards(t, st)
	if len(cards) != 1 || cards[0].Question != "short q" || cards[0].Answer != "short a" {
		t.Fatalf("unexpected cards: %+v", cards)
	}
	if !strings.Contains(out.String(), "Bye!") {
		t.Fatalf("expected farewell:\n%s", out.String())
	}
}

func TestReadLineWithoutTrailingNewline(t *testing.T) {
	r := NewRunner(strings.NewReader("  last  "), &bytes.Buffer{}, nil, Options{Color: "never"})
	line, err := r.readLine()
	if err != nil || line != "last" {
		t.Fatalf("expected %q, got %q (err=%v)", "last", line, err)
	}
	if _, err := r.readLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
