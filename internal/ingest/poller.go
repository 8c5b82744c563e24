package ingest

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nhle/email-triage/internal/model"
	"github.com/nhle/email-triage/internal/store"
)

// Fetcher produces documents to ingest.
type Fetcher interface {
	Fetch(ctx context.Context) ([]model.EmailDocument, error)
}

// fetchTimeout bounds a single fetch-and-insert run.
const fetchTimeout = 2 * time.Minute

// Status describes the most recent run.
type Status struct {
	Running  bool
	LastRun  time.Time
	Inserted int
	Err      error
}

// Poller runs a Fetcher on an interval and inserts what it returns.
type Poller struct {
	fetcher  Fetcher
	store    store.EmailStore
	interval time.Duration
	logger   *slog.Logger

	triggerCh chan struct{}
	stopCh    chan struct{}
	done      chan struct{}

	mu      sync.Mutex
	status  Status
	started bool
}

// NewPoller creates a poller. A nil logger discards output.
func NewPoller(f Fetcher, s store.EmailStore, interval time.Duration, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Poller{
		fetcher:   f,
		store:     s,
		interval:  interval,
		logger:    logger,
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the polling goroutine, which runs once immediately and
// then every interval until Stop is called or ctx ends. Calling Start
// twice is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go p.loop(ctx)
}

// Stop halts polling and waits for an in-flight run to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	started := p.started
	select {
	case <-p.stopCh:
	default:
		close(p.stopCh)
	}
	p.mu.Unlock()

	if started {
		<-p.done
	}
}

// RefreshNow asks for an immediate run. Requests made while one is
// already queued are coalesced.
func (p *Poller) RefreshNow() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
}

// Status returns the outcome of the most recent run.
func (p *Poller) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.RunOnce(ctx)
		case <-p.triggerCh:
			p.RunOnce(ctx)
		}
	}
}

// RunOnce fetches and inserts a single batch. Failures are logged and
// recorded in Status.
func (p *Poller) RunOnce(ctx context.Context) (int, error) {
	p.setRunning()

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	docs, err := p.fetcher.Fetch(ctx)
	if err != nil {
		p.logger.Error("fetching mail", "error", err)
		p.finish(0, err)
		return 0, err
	}

	n, err := p.store.InsertEmails(ctx, docs)
	if err != nil {
		p.logger.Error("storing fetched mail", "count", len(docs), "error", err)
		p.finish(0, err)
		return 0, err
	}

	p.logger.Info("ingested mail", "fetched", len(docs), "inserted", n)
	p.finish(n, nil)
	return n, nil
}

func (p *Poller) setRunning() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.Running = true
}

func (p *Poller) finish(inserted int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = Status{LastRun: time.Now(), Inserted: inserted, Err: err}
}
