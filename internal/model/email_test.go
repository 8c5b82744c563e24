package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	rec := EmailDocument{ID: "x"}.Normalize(now)

	assert.Equal(t, EmailRecord{
		ID:             "x",
		Subject:        DefaultSubject,
		Sender:         DefaultSender,
		Content:        DefaultContent,
		Date:           now,
		Classification: ClassificationNotImportant,
	}, rec)
}

func TestNormalizeKeepsStoredValues(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	date := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	rec := EmailDocument{
		ID:             "y",
		Subject:        StringPtr("Quarterly report"),
		Sender:         StringPtr("alice@example.com"),
		Content:        StringPtr("numbers"),
		Date:           &date,
		Classification: StringPtr("important"),
		IsRead:         BoolPtr(true),
	}.Normalize(now)

	assert.Equal(t, "Quarterly report", rec.Subject)
	assert.Equal(t, "alice@example.com", rec.Sender)
	assert.Equal(t, date, rec.Date)
	assert.Equal(t, "important", rec.Classification)
	assert.True(t, rec.IsImportant, "classification alone marks the record important")
	assert.True(t, rec.IsRead)
}

func TestNormalizeFlagWithoutClassification(t *testing.T) {
	rec := EmailDocument{ID: "z", IsImportant: BoolPtr(true)}.Normalize(time.Now())

	assert.True(t, rec.IsImportant)
	assert.Equal(t, ClassificationNotImportant, rec.Classification)
	assert.True(t, IsImportant(rec))
}

func TestNormalizeEmptyStringsUseDefaults(t *testing.T) {
	rec := EmailDocument{ID: "e", Subject: StringPtr(""), Sender: StringPtr("")}.Normalize(time.Now())

	assert.Equal(t, DefaultSubject, rec.Subject)
	assert.Equal(t, DefaultSender, rec.Sender)
}
