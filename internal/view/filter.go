// Package view narrows the full set of emails to what one bucket shows.
package view

import (
	"slices"
	"strings"

	"github.com/nhle/email-triage/internal/model"
)

// Filter returns the records of bucket matching query, newest first.
// Records with equal dates keep their input order. The input is not
// modified and the result never aliases it.
func Filter(records []model.EmailRecord, bucket model.Bucket, query string) []model.EmailRecord {
	needle := strings.ToLower(query)

	out := make([]model.EmailRecord, 0, len(records))
	for _, rec := range records {
		if !bucket.Contains(rec) {
			continue
		}
		if needle != "" && !Matches(rec, needle) {
			continue
		}
		out = append(out, rec)
	}

	slices.SortStableFunc(out, func(a, b model.EmailRecord) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// Matches reports whether any searchable field of rec contains needle.
// needle must already be lower-cased.
func Matches(rec model.EmailRecord, needle string) bool {
	for _, field := range []string{rec.Subject, rec.Sender, rec.Content, rec.Classification} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Counts holds the badge numbers shown next to each bucket.
type Counts struct {
	Important int
	Regular   int
}

// For returns the count of bucket b.
func (c Counts) For(b model.Bucket) int {
	if b == model.BucketImportant {
		return c.Important
	}
	return c.Regular
}

// CountBuckets counts records per bucket. Search text is deliberately not
// an input: badges always reflect the whole set.
func CountBuckets(records []model.EmailRecord) Counts {
	var c Counts
	for _, rec := range records {
		if model.IsImportant(rec) {
			c.Important++
		} else {
			c.Regular++
		}
	}
	return c
}
