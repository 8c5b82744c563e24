package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/email-triage/internal/model"
)

const emailColumns = `
	id, message_id, subject, sender, content, date,
	classification, is_important, is_read, created_at`

// ListEmails returns every stored document in insertion order.
func (s *SQLiteStore) ListEmails(ctx context.Context) ([]model.EmailDocument, error) {
	var docs []model.EmailDocument
	err := s.db.SelectContext(ctx, &docs,
		"SELECT"+emailColumns+" FROM emails ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("listing emails: %w", err)
	}
	return docs, nil
}

// GetEmail returns one document, or ErrNotFound.
func (s *SQLiteStore) GetEmail(ctx context.Context, id string) (*model.EmailDocument, error) {
	var doc model.EmailDocument
	err := s.db.GetContext(ctx, &doc,
		"SELECT"+emailColumns+" FROM emails WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("email %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting email %s: %w", id, err)
	}
	return &doc, nil
}

// CountEmails returns the number of stored documents.
func (s *SQLiteStore) CountEmails(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM emails"); err != nil {
		return 0, fmt.Errorf("counting emails: %w", err)
	}
	return n, nil
}

// InsertEmails writes docs in one transaction. Documents without an ID get a
// fresh UUID; documents whose message id already exists are skipped.
func (s *SQLiteStore) InsertEmails(ctx context.Context, docs []model.EmailDocument) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT OR IGNORE INTO emails (
			id, message_id, subject, sender, content, date,
			classification, is_important, is_read, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	inserted := 0
	for _, d := range docs {
		if d.ID == "" {
			d.ID = uuid.New().String()
		}
		var date *time.Time
		if d.Date != nil {
			date = model.TimePtr(d.Date.UTC())
		}
		res, err := stmt.ExecContext(ctx,
			d.ID, d.MessageID, d.Subject, d.Sender, d.Content, date,
			d.Classification, d.IsImportant, d.IsRead, now,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting email %s: %w", d.ID, err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing emails: %w", err)
	}
	return inserted, nil
}

// UpdateImportance sets the importance flag and, when given, the
// classification of one email.
func (s *SQLiteStore) UpdateImportance(
	ctx context.Context,
	id string,
	isImportant bool,
	classification *string,
) error {
	var (
		result sql.Result
		err    error
	)
	if classification != nil {
		result, err = s.db.ExecContext(ctx,
			"UPDATE emails SET is_important = ?, classification = ? WHERE id = ?",
			boolToInt(isImportant), *classification, id)
	} else {
		result, err = s.db.ExecContext(ctx,
			"UPDATE emails SET is_important = ? WHERE id = ?",
			boolToInt(isImportant), id)
	}
	if err != nil {
		return fmt.Errorf("updating importance of email %s: %w", id, err)
	}
	return expectOne(result, id)
}

// UpdateRead sets the read flag of one email.
func (s *SQLiteStore) UpdateRead(ctx context.Context, id string, isRead bool) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE emails SET is_read = ? WHERE id = ?", boolToInt(isRead), id)
	if err != nil {
		return fmt.Errorf("updating read state of email %s: %w", id, err)
	}
	return expectOne(result, id)
}

// DeleteEmail removes one email.
func (s *SQLiteStore) DeleteEmail(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM emails WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting email %s: %w", id, err)
	}
	return expectOne(result, id)
}

func expectOne(result sql.Result, id string) error {
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("email %s: %w", id, ErrNotFound)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
