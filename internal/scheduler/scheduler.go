// Package scheduler implements Leitner box scheduling: which cards are due in
// a review phase and how a review outcome moves a card between boxes.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/leitner/internal/model"
)

// ErrNoDuePhase is returned when cards exist but none of the three phases
// selects any of them. With a consistent store THIRD always matches.
var ErrNoDuePhase = errors.New("scheduler: no phase selected any card")

// CardStore is the persistence the scheduler needs.
type CardStore interface {
	CreateCard(ctx context.Context, question, answer string) (model.Card, error)
	GetCard(ctx context.Context, id int64) (model.Card, error)
	ListCards(ctx context.Context) ([]model.Card, error)
	CardsInBox(ctx context.Context, box int) ([]model.Card, error)
	CardsBelowBox(ctx context.Context, box int) ([]model.Card, error)
	UpdateContent(ctx context.Context, id int64, question, answer string) error
	SetBox(ctx context.Context, id int64, box int) error
	DeleteCard(ctx context.Context, id int64) error
	DeleteCardsInBox(ctx context.Context, box int) (int64, error)
}

// Orderer reorders a due batch before it is handed out.
type Orderer interface {
	Shuffle(cards []model.Card) []model.Card
}

// Scheduler owns the current review phase and is the only place that
// mutates card boxes.
type Scheduler struct {
	store    CardStore
	phase    model.Phase
	order    Orderer
	validate *validator.Validate
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithOrderer shuffles every due batch with o.
func WithOrderer(o Orderer) Option {
	return func(s *Scheduler) {
		s.order = o
	}
}

// New returns a Scheduler starting in the FIRST phase.
func New(store CardStore, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:    store,
		phase:    model.PhaseFirst,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Phase returns the phase the next batch will be drawn from.
func (s *Scheduler) Phase() model.Phase {
	return s.phase
}

// NextBatch draws the due batch for the current phase and moves the
// scheduler to the phase returned by DueBatch.
func (s *Scheduler) NextBatch(ctx context.Context) ([]model.Card, error) {
	cards, next, err := s.DueBatch(ctx, s.phase)
	if err != nil {
		return nil, err
	}
	s.phase = next
	return cards, nil
}

// DueBatch returns the cards due in phase and the phase that follows it.
// An empty store yields no cards and FIRST. A phase with nothing due is
// skipped in favour of the next one; at most three phases are tried.
func (s *Scheduler) DueBatch(ctx context.Context, phase model.Phase) ([]model.Card, model.Phase, error) {
	all, err := s.store.ListCards(ctx)
	if err != nil {
		return nil, phase, err
	}
	if len(all) == 0 {
		return nil, model.PhaseFirst, nil
	}
	for i := 0; i < 3; i++ {
		due, err := s.dueCards(ctx, phase)
		if err != nil {
			return nil, phase, err
		}
		if len(due) > 0 {
			if s.order != nil {
				due = s.order.Shuffle(due)
			}
			return due, phase.Next(), nil
		}
		phase = phase.Next()
	}
	return nil, phase, ErrNoDuePhase
}

// dueCards runs the store query matching phase.Due.
func (s *Scheduler) dueCards(ctx context.Context, phase model.Phase) ([]model.Card, error) {
	switch phase {
	case model.PhaseFirst:
		return s.store.CardsInBox(ctx, model.FirstBox)
	case model.PhaseSecond:
		return s.store.CardsBelowBox(ctx, model.SecondPhaseLimit)
	case model.PhaseThird:
		return s.store.CardsBelowBox(ctx, model.MasteredBox)
	default:
		return nil, fmt.Errorf("scheduler: unknown phase %s", phase)
	}
}

// AddCard validates and stores a new card in box 1.
func (s *Scheduler) AddCard(ctx context.Context, question, answer string) (model.Card, error) {
	card := model.Card{
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
		Box:      model.FirstBox,
	}
	if err := s.validateCard(card); err != nil {
		return model.Card{}, err
	}
	return s.store.CreateCard(ctx, card.Question, card.Answer)
}

// ApplyOutcome applies a review outcome to card. Correct and Wrong are
// followed by exactly one prune of the mastered box.
func (s *Scheduler) ApplyOutcome(ctx context.Context, card model.Card, outcome Outcome) error {
	switch o := outcome.(type) {
	case Correct:
		current, err := s.store.GetCard(ctx, card.ID)
		if err != nil {
			return err
		}
		if err := s.store.SetBox(ctx, card.ID, current.Box+1); err != nil {
			return err
		}
		return s.prune(ctx)
	case Wrong:
		if err := s.store.SetBox(ctx, card.ID, model.FirstBox); err != nil {
			return err
		}
		return s.prune(ctx)
	case Edit:
		return s.edit(ctx, card.ID, o)
	case Delete:
		return s.store.DeleteCard(ctx, card.ID)
	default:
		return fmt.Errorf("scheduler: unknown outcome %T", outcome)
	}
}

func (s *Scheduler) edit(ctx context.Context, id int64, e Edit) error {
	question := strings.TrimSpace(e.Question)
	answer := strings.TrimSpace(e.Answer)
	merged, err := s.store.GetCard(ctx, id)
	if err != nil {
		return err
	}
	if question != "" {
		merged.Question = question
	}
	if answer != "" {
		merged.Answer = answer
	}
	if err := s.validateCard(merged); err != nil {
		return err
	}
	return s.store.UpdateContent(ctx, id, question, answer)
}

func (s *Scheduler) prune(ctx context.Context) error {
	_, err := s.store.DeleteCardsInBox(ctx, model.MasteredBox)
	return err
}

func (s *Scheduler) validateCard(card model.Card) error {
	err := s.validate.Struct(card)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &model.ValidationError{Field: strings.ToLower(verrs[0].Field()), Rule: verrs[0].Tag()}
	}
	return err
}
