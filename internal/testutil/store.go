package testutil

import (
	"context"
	"testing"

	"github.com/nhle/email-triage/internal/model"
	"github.com/nhle/email-triage/internal/store"
)

// NewTestStore opens an in-memory email store with migrations applied,
// optionally seeded with docs. The store is closed when the test ends.
func NewTestStore(t *testing.T, docs ...model.EmailDocument) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	if len(docs) > 0 {
		SeedEmails(t, s, docs...)
	}
	return s
}

// SeedEmails inserts docs and fails the test unless every one of them is
// new.
func SeedEmails(t *testing.T, s store.EmailStore, docs ...model.EmailDocument) {
	t.Helper()

	n, err := s.InsertEmails(context.Background(), docs)
	if err != nil {
		t.Fatalf("seeding emails: %v", err)
	}
	if n != len(docs) {
		t.Fatalf("seeding emails: inserted %d of %d", n, len(docs))
	}
}

// Ptr returns a pointer to v, for the optional fields of a stored email.
func Ptr[T any](v T) *T {
	return &v
}
