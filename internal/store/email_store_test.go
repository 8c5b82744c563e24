package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/email-triage/internal/model"
	"github.com/nhle/email-triage/internal/store"
	"github.com/nhle/email-triage/internal/testutil"
)

func TestMigrationsApplied(t *testing.T) {
	s := testutil.NewTestStore(t)

	v, err := s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestInsertAndListKeepsAbsentFields(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	n, err := s.InsertEmails(ctx, []model.EmailDocument{
		{
			ID:             "full",
			Subject:        model.StringPtr("Quarterly report"),
			Sender:         model.StringPtr("cfo@example.com"),
			Content:        model.StringPtr("Numbers attached"),
			Date:           model.TimePtr(date),
			Classification: model.StringPtr("IMPORTANT"),
			IsImportant:    model.BoolPtr(true),
			IsRead:         model.BoolPtr(false),
		},
		{ID: "bare"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	docs, err := s.ListEmails(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	full := docs[0]
	assert.Equal(t, "full", full.ID)
	require.NotNil(t, full.Subject)
	assert.Equal(t, "Quarterly report", *full.Subject)
	require.NotNil(t, full.Date)
	assert.True(t, date.Equal(*full.Date))
	require.NotNil(t, full.IsImportant)
	assert.True(t, *full.IsImportant)
	require.NotNil(t, full.IsRead)
	assert.False(t, *full.IsRead)

	bare := docs[1]
	assert.Nil(t, bare.Subject)
	assert.Nil(t, bare.Sender)
	assert.Nil(t, bare.Date)
	assert.Nil(t, bare.Classification)
	assert.Nil(t, bare.IsImportant)
	assert.Nil(t, bare.IsRead)
}

func TestInsertSkipsDuplicateMessageIDs(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	doc := model.EmailDocument{MessageID: model.StringPtr("<a@mail>")}
	n, err := s.InsertEmails(ctx, []model.EmailDocument{doc})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.InsertEmails(ctx, []model.EmailDocument{doc, {MessageID: model.StringPtr("<b@mail>")}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	count, err := s.CountEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInsertGeneratesIDs(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.InsertEmails(ctx, []model.EmailDocument{{}, {}})
	require.NoError(t, err)

	docs, err := s.ListEmails(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.NotEmpty(t, docs[0].ID)
	assert.NotEqual(t, docs[0].ID, docs[1].ID)
}

func TestUpdateImportance(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	_, err := s.InsertEmails(ctx, []model.EmailDocument{
		{ID: "e1", Classification: model.StringPtr("IMPORTANT")},
	})
	require.NoError(t, err)

	t.Run("flag only leaves classification", func(t *testing.T) {
		require.NoError(t, s.UpdateImportance(ctx, "e1", false, nil))

		doc, err := s.GetEmail(ctx, "e1")
		require.NoError(t, err)
		require.NotNil(t, doc.IsImportant)
		assert.False(t, *doc.IsImportant)
		assert.Equal(t, "IMPORTANT", *doc.Classification)
	})

	t.Run("both fields", func(t *testing.T) {
		require.NoError(t, s.UpdateImportance(ctx, "e1", false, model.StringPtr("NOT_IMPORTANT")))

		doc, err := s.GetEmail(ctx, "e1")
		require.NoError(t, err)
		assert.Equal(t, "NOT_IMPORTANT", *doc.Classification)
	})

	t.Run("unchanged values still match", func(t *testing.T) {
		assert.NoError(t, s.UpdateImportance(ctx, "e1", false, nil))
	})

	t.Run("missing id", func(t *testing.T) {
		err := s.UpdateImportance(ctx, "nope", true, nil)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUpdateRead(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	_, err := s.InsertEmails(ctx, []model.EmailDocument{{ID: "e1"}})
	require.NoError(t, err)

	require.NoError(t, s.UpdateRead(ctx, "e1", true))
	doc, err := s.GetEmail(ctx, "e1")
	require.NoError(t, err)
	require.NotNil(t, doc.IsRead)
	assert.True(t, *doc.IsRead)

	assert.ErrorIs(t, s.UpdateRead(ctx, "nope", true), store.ErrNotFound)
}

func TestDeleteEmail(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	_, err := s.InsertEmails(ctx, []model.EmailDocument{{ID: "e1"}, {ID: "e2"}})
	require.NoError(t, err)

	require.NoError(t, s.DeleteEmail(ctx, "e1"))
	assert.ErrorIs(t, s.DeleteEmail(ctx, "e1"), store.ErrNotFound)

	_, err = s.GetEmail(ctx, "e1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	docs, err := s.ListEmails(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "e2", docs[0].ID)
}
