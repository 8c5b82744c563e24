package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crlf(s string) []byte {
	return []byte(strings.ReplaceAll(s, "\n", "\r\n"))
}

const multipartMessage = `From: Ana <ana@example.com>
Subject: Status
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary="b1"

--b1
Content-Type: text/plain; charset=utf-8

Plain body here.
--b1
Content-Type: text/html; charset=utf-8

<p>HTML body</p>
--b1--
`

const htmlOnlyMessage = `From: ana@example.com
Subject: Promo
MIME-Version: 1.0
Content-Type: text/html; charset=utf-8

<html><body><h1>Sale</h1><p>Everything must go</p></body></html>
`

func TestBodyTextPrefersPlain(t *testing.T) {
	assert.Equal(t, "Plain body here.", bodyText(crlf(multipartMessage)))
}

func TestBodyTextFallsBackToHTML(t *testing.T) {
	assert.Equal(t, "Sale\nEverything must go", bodyText(crlf(htmlOnlyMessage)))
}

func TestBodyTextEmpty(t *testing.T) {
	assert.Empty(t, bodyText(nil))
}

func TestMessageDocument(t *testing.T) {
	date := time.Date(2024, 2, 3, 4, 5, 6, 0, time.FixedZone("CET", 3600))
	doc := message{
		MessageID: "<1@example.com>",
		Subject:   "Status",
		From:      "Ana",
		Date:      date,
		Flags:     []imap.Flag{imap.FlagSeen, imap.FlagFlagged},
		Body:      crlf(multipartMessage),
	}.document()

	require.NotNil(t, doc.MessageID)
	assert.Equal(t, "<1@example.com>", *doc.MessageID)
	assert.Equal(t, "Status", *doc.Subject)
	assert.Equal(t, "Ana", *doc.Sender)
	assert.Equal(t, "Plain body here.", *doc.Content)
	assert.True(t, date.Equal(*doc.Date))
	assert.True(t, *doc.IsImportant)
	assert.True(t, *doc.IsRead)
	assert.Nil(t, doc.Classification, "ingestion never writes a classification")
}

func TestMessageDocumentLeavesBlanksAbsent(t *testing.T) {
	doc := message{}.document()

	assert.Nil(t, doc.MessageID)
	assert.Nil(t, doc.Subject)
	assert.Nil(t, doc.Sender)
	assert.Nil(t, doc.Content)
	assert.Nil(t, doc.Date)
	assert.False(t, *doc.IsImportant)
	assert.False(t, *doc.IsRead)
}
