// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/verte-zerg/leitner/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for flashcards.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &model.StoreError{Op: "create db dir", Err: err}
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, &model.StoreError{Op: "open", Err: err}
	}
	// Single session; one connection keeps every read behind the last write.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, &model.StoreError{Op: "ping", Err: err}
	}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, &model.StoreError{Op: "migrate", Err: err}
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cards (
			id INTEGER PRIMARY KEY,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			box INTEGER NOT NULL DEFAULT 1 CHECK (box BETWEEN 1 AND 4)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_cards_box ON cards(box);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// CreateCard inserts a new card into box 1.
func (s *Store) CreateCard(ctx context.Context, question, answer string) (model.Card, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO cards (question, answer, box) VALUES (?, ?, ?)`,
		question, answer, model.FirstBox)
	if err != nil {
		return model.Card{}, &model.StoreError{Op: "insert card", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Card{}, &model.StoreError{Op: "insert card", Err: err}
	}
	return model.Card{ID: id, Question: question, Answer: answer, Box: model.FirstBox}, nil
}

// GetCard returns the card with the given id.
func (s *Store) GetCard(ctx context.Context, id int64) (model.Card, error) {
	var card model.Card
	err := s.db.GetContext(ctx, &card, `SELECT id, question, answer, box FROM cards WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Card{}, model.ErrCardNotFound
	}
	if err != nil {
		return model.Card{}, &model.StoreError{Op: "get card", Err: err}
	}
	return card, nil
}

// ListCards returns every card ordered by id.
func (s *Store) ListCards(ctx context.Context) ([]model.Card, error) {
	return s.selectCards(ctx, "list cards", `SELECT id, question, answer, box FROM cards ORDER BY id`)
}

// CardsInBox returns the cards whose box equals box.
func (s *Store) CardsInBox(ctx context.Context, box int) ([]model.Card, error) {
	return s.selectCards(ctx, "cards in box",
		`SELECT id, question, answer, box FROM cards WHERE box = ? ORDER BY id`, box)
}

// CardsBelowBox returns the cards whose box is strictly lower than box.
func (s *Store) CardsBelowBox(ctx context.Context, box int) ([]model.Card, error) {
	return s.selectCards(ctx, "cards below box",
		`SELECT id, question, answer, box FROM cards WHERE box < ? ORDER BY id`, box)
}

func (s *Store) selectCards(ctx context.Context, op, query string, args ...any) ([]model.Card, error) {
	var cards []model.Card
	if err := s.db.SelectContext(ctx, &cards, query, args...); err != nil {
		return nil, &model.StoreError{Op: op, Err: err}
	}
	return cards, nil
}

// UpdateContent replaces the question and answer of a card. An empty value
// keeps the stored one.
func (s *Store) UpdateContent(ctx context.Context, id int64, question, answer string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cards
		 SET question = COALESCE(NULLIF(?, ''), question),
		     answer = COALESCE(NULLIF(?, ''), answer)
		 WHERE id = ?`,
		question, answer, id)
	if err != nil {
		return &model.StoreError{Op: "update card", Err: err}
	}
	return requireRow(res, "update card")
}

// SetBox overwrites the box of a card.
func (s *Store) SetBox(ctx context.Context, id int64, box int) error {
	res, err := s.db.ExecContext(ctx, `UPDATE cards SET box = ? WHERE id = ?`, box, id)
	if err != nil {
		return &model.StoreError{Op: "set box", Err: err}
	}
	return requireRow(res, "set box")
}

// DeleteCard removes a card. Deleting a missing id is not an error.
func (s *Store) DeleteCard(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id); err != nil {
		return &model.StoreError{Op: "delete card", Err: err}
	}
	return nil
}

// DeleteCardsInBox removes every card in box and returns how many were removed.
func (s *Store) DeleteCardsInBox(ctx context.Context, box int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE box = ?`, box)
	if err != nil {
		return 0, &model.StoreError{Op: "delete cards in box", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &model.StoreError{Op: "delete cards in box", Err: err}
	}
	return n, nil
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return &model.StoreError{Op: op, Err: err}
	}
	if n == 0 {
		return model.ErrCardNotFound
	}
	return nil
}
