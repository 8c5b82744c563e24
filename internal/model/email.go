package model

import (
	"strings"
	"time"
)

// Defaults applied when a stored document lacks a field.
const (
	DefaultSubject = "No Subject"
	DefaultSender  = "Unknown Sender"
	DefaultContent = "No content available"
)

// EmailRecord is one email as served by the API and held by the dashboard.
type EmailRecord struct {
	ID             string    `json:"id"`
	Subject        string    `json:"subject"`
	Sender         string    `json:"sender"`
	Content        string    `json:"content"`
	Date           time.Time `json:"date"`
	Classification string    `json:"classification,omitempty"`
	IsImportant    bool      `json:"isImportant"`
	IsRead         bool      `json:"isRead"`
}

// EmailDocument is the stored shape of an email. Every field except ID may
// be absent, since documents are written by an external ingestion process.
type EmailDocument struct {
	ID             string     `db:"id"`
	MessageID      *string    `db:"message_id"`
	Subject        *string    `db:"subject"`
	Sender         *string    `db:"sender"`
	Content        *string    `db:"content"`
	Date           *time.Time `db:"date"`
	Classification *string    `db:"classification"`
	IsImportant    *bool      `db:"is_important"`
	IsRead         *bool      `db:"is_read"`
	CreatedAt      time.Time  `db:"created_at"`
}

// Normalize fills absent fields with their defaults. now is used as the
// date of documents that carry none.
func (d EmailDocument) Normalize(now time.Time) EmailRecord {
	rec := EmailRecord{
		ID:             d.ID,
		Subject:        orDefault(d.Subject, DefaultSubject),
		Sender:         orDefault(d.Sender, DefaultSender),
		Content:        orDefault(d.Content, DefaultContent),
		Date:           now,
		Classification: orDefault(d.Classification, ClassificationNotImportant),
	}
	if d.Date != nil && !d.Date.IsZero() {
		rec.Date = *d.Date
	}
	flagged := d.IsImportant != nil && *d.IsImportant
	rec.IsImportant = flagged ||
		(d.Classification != nil && strings.EqualFold(*d.Classification, ClassificationImportant))
	rec.IsRead = d.IsRead != nil && *d.IsRead
	return rec
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string { return &s }

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }

// TimePtr returns a pointer to t.
func TimePtr(t time.Time) *time.Time { return &t }
