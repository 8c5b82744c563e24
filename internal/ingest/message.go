package ingest

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-message/mail"

	"github.com/nhle/email-triage/internal/model"
)

// message is the slice of an IMAP fetch result that ingestion needs.
type message struct {
	MessageID string
	Subject   string
	From      string
	Date      time.Time
	Flags     []imap.Flag
	Body      []byte
}

// document maps a fetched message onto a stored document. Only the
// importance flag is written, never the classification.
func (m message) document() model.EmailDocument {
	doc := model.EmailDocument{
		IsImportant: model.BoolPtr(slices.Contains(m.Flags, imap.FlagFlagged)),
		IsRead:      model.BoolPtr(slices.Contains(m.Flags, imap.FlagSeen)),
	}
	if m.MessageID != "" {
		doc.MessageID = model.StringPtr(m.MessageID)
	}
	if m.Subject != "" {
		doc.Subject = model.StringPtr(m.Subject)
	}
	if m.From != "" {
		doc.Sender = model.StringPtr(m.From)
	}
	if !m.Date.IsZero() {
		doc.Date = model.TimePtr(m.Date.UTC())
	}
	if content := bodyText(m.Body); content != "" {
		doc.Content = model.StringPtr(content)
	}
	return doc
}

// bodyText returns the text/plain part of a raw RFC 5322 message, or the
// text/html part flattened to text when there is no plain part.
func bodyText(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(string(raw))
	}
	defer mr.Close()

	var textBody, htmlBody string
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}
		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := h.ContentType()
		body, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		switch {
		case strings.HasPrefix(contentType, "text/plain") && textBody == "":
			textBody = string(body)
		case strings.HasPrefix(contentType, "text/html") && htmlBody == "":
			htmlBody = string(body)
		}
	}

	if s := strings.TrimSpace(textBody); s != "" {
		return s
	}
	if htmlBody != "" {
		if s, err := HTMLToText(htmlBody); err == nil {
			return s
		}
	}
	return ""
}
