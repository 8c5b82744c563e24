package model

import "strings"

// Classification values written by the dashboard.
const (
	ClassificationImportant    = "IMPORTANT"
	ClassificationNotImportant = "NOT_IMPORTANT"
)

// Bucket is one of the two mutually exclusive partitions of the inbox.
type Bucket string

const (
	BucketImportant Bucket = "important"
	BucketRegular   Bucket = "regular"
)

// Title returns the heading shown above the bucket's list.
func (b Bucket) Title() string {
	if b == BucketImportant {
		return "Important Emails"
	}
	return "Regular Emails"
}

// Contains reports whether rec belongs to the bucket.
func (b Bucket) Contains(rec EmailRecord) bool {
	if b == BucketImportant {
		return IsImportant(rec)
	}
	return IsRegular(rec)
}

// ParseBucket accepts "important" and "regular" (also "not-important").
func ParseBucket(s string) (Bucket, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "important":
		return BucketImportant, true
	case "regular", "not-important":
		return BucketRegular, true
	}
	return "", false
}

// IsImportant ORs both importance fields. Historical records may carry only
// one of them, so neither is trusted alone.
func IsImportant(rec EmailRecord) bool {
	return strings.ToUpper(rec.Classification) == ClassificationImportant || rec.IsImportant
}

// IsRegular is the complement of IsImportant.
func IsRegular(rec EmailRecord) bool {
	return !IsImportant(rec)
}

// ImportancePatch is the pair of fields written when importance changes.
type ImportancePatch struct {
	IsImportant    bool   `json:"isImportant"`
	Classification string `json:"classification,omitempty"`
}

// NewImportancePatch builds a patch that keeps both fields in lockstep.
func NewImportancePatch(important bool) ImportancePatch {
	if important {
		return ImportancePatch{IsImportant: true, Classification: ClassificationImportant}
	}
	return ImportancePatch{IsImportant: false, Classification: ClassificationNotImportant}
}

// ToggleImportance returns the patch that flips rec's importance.
func ToggleImportance(rec EmailRecord) ImportancePatch {
	return NewImportancePatch(!IsImportant(rec))
}

// Apply writes the patch onto rec.
func (p ImportancePatch) Apply(rec EmailRecord) EmailRecord {
	rec.IsImportant = p.IsImportant
	if p.Classification != "" {
		rec.Classification = p.Classification
	}
	return rec
}
