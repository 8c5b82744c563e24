package store

import (
	"context"
	"errors"

	"github.com/nhle/email-triage/internal/model"
)

// ErrNotFound is returned when an update or delete matches no email.
var ErrNotFound = errors.New("not found")

// EmailStore defines the persistence interface for email documents.
// Documents are written by ingestion with any subset of fields present;
// readers normalise them.
type EmailStore interface {
	ListEmails(ctx context.Context) ([]model.EmailDocument, error)
	GetEmail(ctx context.Context, id string) (*model.EmailDocument, error)
	CountEmails(ctx context.Context) (int, error)

	// InsertEmails stores new documents, skipping any whose message id is
	// already present, and reports how many were written.
	InsertEmails(ctx context.Context, docs []model.EmailDocument) (int, error)

	// UpdateImportance sets is_important and, when classification is
	// non-nil, the classification column.
	UpdateImportance(ctx context.Context, id string, isImportant bool, classification *string) error
	UpdateRead(ctx context.Context, id string, isRead bool) error
	DeleteEmail(ctx context.Context, id string) error

	Close() error
}
