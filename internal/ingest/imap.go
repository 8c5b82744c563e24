// Package ingest pulls new mail from an IMAP mailbox into the email store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/nhle/email-triage/internal/model"
)

// ErrAuth is returned when the mailbox rejects the login.
var ErrAuth = errors.New("imap authentication failed")

// IMAPConfig locates and authenticates against one mailbox.
type IMAPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	TLS      bool

	// LookbackDays bounds the search window; Limit caps the number of
	// messages taken, most recent first.
	LookbackDays int
	Limit        int
}

// IMAPFetcher reads recent INBOX messages.
type IMAPFetcher struct {
	cfg IMAPConfig
	now func() time.Time
}

// NewIMAPFetcher creates a fetcher for cfg.
func NewIMAPFetcher(cfg IMAPConfig) *IMAPFetcher {
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 7
	}
	return &IMAPFetcher{cfg: cfg, now: time.Now}
}

func (f *IMAPFetcher) connect() (*imapclient.Client, error) {
	addr := net.JoinHostPort(f.cfg.Host, strconv.Itoa(f.cfg.Port))

	var (
		client *imapclient.Client
		err    error
	)
	if f.cfg.TLS {
		client, err = imapclient.DialTLS(addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(f.cfg.Username, f.cfg.Password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("%w for %s: %v", ErrAuth, f.cfg.Username, err)
	}

	return client, nil
}

// Fetch returns the INBOX messages received within the lookback window as
// documents ready for insertion. Bodies are fetched with PEEK so the
// mailbox read state is left alone.
func (f *IMAPFetcher) Fetch(ctx context.Context) ([]model.EmailDocument, error) {
	client, err := f.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Logout().Wait() }()

	// Closing the connection unblocks any pending command.
	stop := context.AfterFunc(ctx, func() { _ = client.Close() })
	defer stop()

	if _, err := client.Select("INBOX", &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		return nil, fmt.Errorf("selecting INBOX: %w", err)
	}

	since := f.now().AddDate(0, 0, -f.cfg.LookbackDays)
	searchData, err := client.UIDSearch(&imap.SearchCriteria{Since: since}, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("searching messages: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}
	if f.cfg.Limit > 0 && len(uids) > f.cfg.Limit {
		uids = uids[len(uids)-f.cfg.Limit:]
	}

	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchCmd := client.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		Envelope:    true,
		Flags:       true,
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	})
	defer fetchCmd.Close()

	var docs []model.EmailDocument
	for {
		msg := fetchCmd.Next()
		if msg == nil {
			break
		}
		buf, err := msg.Collect()
		if err != nil {
			continue
		}
		docs = append(docs, messageFromBuffer(buf, bodySection).document())
	}

	if err := fetchCmd.Close(); err != nil {
		return docs, fmt.Errorf("fetching messages: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return docs, err
	}
	return docs, nil
}

func messageFromBuffer(buf *imapclient.FetchMessageBuffer, section *imap.FetchItemBodySection) message {
	m := message{
		Flags: buf.Flags,
		Body:  buf.FindBodySection(section),
	}
	if env := buf.Envelope; env != nil {
		m.MessageID = env.MessageID
		m.Subject = env.Subject
		m.Date = env.Date
		if len(env.From) > 0 {
			from := env.From[0]
			if from.Name != "" {
				m.From = from.Name
			} else {
				m.From = from.Addr()
			}
		}
	}
	if m.Date.IsZero() {
		m.Date = buf.InternalDate
	}
	return m
}
