package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/leitner/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "leitner.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestCreateAndListCards(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	cards, err := st.ListCards(ctx)
	if err != nil {
		t.Fatalf("list cards: %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("expected empty store, got %d cards", len(cards))
	}

	created, err := st.CreateCard(ctx, "capital of France?", "Paris")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	if created.ID <= 0 || created.Box != 1 {
		t.Fatalf("unexpected created card: %+v", created)
	}

	cards, err = st.ListCards(ctx)
	if err != nil {
		t.Fatalf("list cards: %v", err)
	}
	if len(cards) != 1 || cards[0] != created {
		t.Fatalf("expected %+v, got %+v", created, cards)
	}
}

func TestBoxFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	ids := make([]int64, 0, 3)
	for box := 1; box <= 3; box++ {
		card, err := st.CreateCard(ctx, "q", "a")
		if err != nil {
			t.Fatalf("create card: %v", err)
		}
		if err := st.SetBox(ctx, card.ID, box); err != nil {
			t.Fatalf("set box: %v", err)
		}
		ids = append(ids, card.ID)
	}

	inFirst, err := st.CardsInBox(ctx, 1)
	if err != nil {
		t.Fatalf("cards in box: %v", err)
	}
	if len(inFirst) != 1 || inFirst[0].ID != ids[0] {
		t.Fatalf("unexpected box 1 cards: %+v", inFirst)
	}

	below, err := st.CardsBelowBox(ctx, 3)
	if err != nil {
		t.Fatalf("cards below box: %v", err)
	}
	if len(below) != 2 || below[0].ID != ids[0] || below[1].ID != ids[1] {
		t.Fatalf("unexpected cards below box 3: %+v", below)
	}
}

func TestUpdateContentKeepsBlankFields(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	card, err := st.CreateCard(ctx, "old question", "old answer")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	if err := st.SetBox(ctx, card.ID, 2); err != nil {
		t.Fatalf("set box: %v", err)
	}
	if err := st.UpdateContent(ctx, card.ID, "", "new answer"); err != nil {
		t.Fatalf("update content: %v", err)
	}
	got, err := st.GetCard(ctx, card.ID)
	if err != nil {
		t.Fatalf("get card: %v", err)
	}
	if got.Question != "old question" || got.Answer != "new answer" || got.Box != 2 {
		t.Fatalf("unexpected card after update: %+v", got)
	}

	if err := st.UpdateContent(ctx, card.ID, "new question", ""); err != nil {
		t.Fatalf("update content: %v", err)
	}
	got, err = st.GetCard(ctx, card.ID)
	if err != nil {
		t.Fatalf("get card: %v", err)
	}
	if got.Question != "new question" || got.Answer != "new answer" {
		t.Fatalf("unexpected card after second update: %+v", got)
	}
}

func TestMissingCard(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.GetCard(ctx, 42); !errors.Is(err, model.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound from GetCard, got %v", err)
	}
	if err := st.SetBox(ctx, 42, 2); !errors.Is(err, model.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound from SetBox, got %v", err)
	}
	if err := st.UpdateContent(ctx, 42, "q", "a"); !errors.Is(err, model.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound from UpdateContent, got %v", err)
	}
	if err := st.DeleteCard(ctx, 42); err != nil {
		t.Fatalf("expected delete of missing card to succeed, got %v", err)
	}
}

func TestSetBoxRejectsOutOfRange(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	card, err := st.CreateCard(ctx, "q", "a")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	err = st.SetBox(ctx, card.ID, 5)
	var storeErr *model.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError for box 5, got %v", err)
	}
}

func TestDeleteCardsInBoxIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	keep, err := st.CreateCard(ctx, "keep", "a")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	mastered, err := st.CreateCard(ctx, "mastered", "a")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	if err := st.SetBox(ctx, mastered.ID, 4); err != nil {
		t.Fatalf("set box: %v", err)
	}

	n, err := st.DeleteCardsInBox(ctx, 4)
	if err != nil {
		t.Fatalf("delete cards in box: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 pruned card, got %d", n)
	}
	n, err = st.DeleteCardsInBox(ctx, 4)
	if err != nil {
		t.Fatalf("delete cards in box: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected second prune to remove nothing, got %d", n)
	}

	cards, err := st.ListCards(ctx)
	if err != nil {
		t.Fatalf("list cards: %v", err)
	}
	if len(cards) != 1 || cards[0].ID != keep.ID {
		t.Fatalf("unexpected cards after prune: %+v", cards)
	}
}

func TestDeleteCard(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	card, err := st.CreateCard(ctx, "q", "a")
	if err != nil {
		t.Fatalf("create card: %v", err)
	}
	if err := st.DeleteCard(ctx, card.ID); err != nil {
		t.Fatalf("delete card: %v", err)
	}
	cards, err := st.ListCards(ctx)
	if err != nil {
		t.Fatalf("list cards: %v", err)
	}
	if len(cards) != 0 {
		t.Fatalf("expected no cards, got %+v", cards)
	}
}
