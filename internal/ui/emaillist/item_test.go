package emaillist

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short"))
	assert.Equal(t, "line one line two", Preview("line one\n\nline two"))

	long := strings.Repeat("a", 41)
	assert.Equal(t, strings.Repeat("a", 40)+"...", Preview(long))

	exact := strings.Repeat("é", 40)
	assert.Equal(t, exact, Preview(exact), "counts characters, not bytes")
}

func TestFormatDate(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "09:30", FormatDate(time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC), now))
	assert.Equal(t, "Jun 9", FormatDate(time.Date(2024, 6, 9, 9, 30, 0, 0, time.UTC), now))
	assert.Equal(t, "2023-12-31", FormatDate(time.Date(2023, 12, 31, 9, 30, 0, 0, time.UTC), now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "…", truncate("abcdef", 1))
	assert.Equal(t, "", truncate("abcdef", 0))
}
