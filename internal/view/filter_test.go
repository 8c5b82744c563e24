package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/email-triage/internal/model"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func ids(records []model.EmailRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestFilterImportantScenario(t *testing.T) {
	records := []model.EmailRecord{
		{ID: "1", Classification: "IMPORTANT", Date: day(2)},
		{ID: "2", IsImportant: false, Classification: "NOT_IMPORTANT", Date: day(3)},
	}

	got := Filter(records, model.BucketImportant, "")

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilterEmptyInput(t *testing.T) {
	assert.Empty(t, Filter(nil, model.BucketImportant, ""))
	assert.Empty(t, Filter([]model.EmailRecord{}, model.BucketRegular, "anything"))
}

func TestFilterSortsNewestFirstAndIsStable(t *testing.T) {
	records := []model.EmailRecord{
		{ID: "a", Date: day(1)},
		{ID: "b", Date: day(5)},
		{ID: "c", Date: day(3)},
		{ID: "d", Date: day(5)},
		{ID: "e", Date: day(3)},
	}

	got := Filter(records, model.BucketRegular, "")

	assert.Equal(t, []string{"b", "d", "c", "e", "a"}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Date.After(got[i-1].Date), "dates must be non-increasing")
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	records := []model.EmailRecord{
		{ID: "a", Date: day(1)},
		{ID: "b", Date: day(2)},
	}
	orig := append([]model.EmailRecord(nil), records...)

	got := Filter(records, model.BucketRegular, "")
	got[0].Subject = "changed"

	assert.Equal(t, orig, records)
}

func TestFilterIsIdempotent(t *testing.T) {
	records := []model.EmailRecord{
		{ID: "a", Subject: "Invoice", Date: day(1)},
		{ID: "b", Subject: "invoice reminder", Date: day(4)},
		{ID: "c", Subject: "Lunch", Date: day(2)},
	}

	first := Filter(records, model.BucketRegular, "invoice")
	second := Filter(records, model.BucketRegular, "invoice")

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"b", "a"}, ids(first))
}

func TestFilterSearchFields(t *testing.T) {
	records := []model.EmailRecord{
		{ID: "subject", Subject: "Budget Review", Date: day(1)},
		{ID: "sender", Sender: "BOSS@corp.example", Date: day(2)},
		{ID: "content", Content: "see the attached budget", Date: day(3)},
		{ID: "none", Subject: "hello", Sender: "x", Content: "y", Date: day(4)},
	}

	assert.ElementsMatch(t, []string{"subject", "content"}, ids(Filter(records, model.BucketRegular, "BUDGET")))
	assert.Equal(t, []string{"sender"}, ids(Filter(records, model.BucketRegular, "boss@")))
	assert.Empty(t, Filter(records, model.BucketRegular, "nothing matches this"))
}

func TestFilterSearchMatchesClassification(t *testing.T) {
	records := []model.EmailRecord{
		{ID: "1", Classification: "IMPORTANT", Date: day(1)},
		{ID: "2", IsImportant: true, Date: day(2)},
	}

	assert.Equal(t, []string{"1"}, ids(Filter(records, model.BucketImportant, "imp")))
}

func TestCountBucketsIgnoresSearch(t *testing.T) {
	records := []model.EmailRecord{
		{ID: "1", Classification: "IMPORTANT"},
		{ID: "2", IsImportant: true},
		{ID: "3"},
	}

	c := CountBuckets(records)

	assert.Equal(t, Counts{Important: 2, Regular: 1}, c)
	assert.Equal(t, 2, c.For(model.BucketImportant))
	assert.Equal(t, 1, c.For(model.BucketRegular))
	assert.Equal(t, len(records), c.Important+c.Regular)
}
