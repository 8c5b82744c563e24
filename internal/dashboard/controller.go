// Package dashboard owns the view state of one dashboard session:
// selection, active bucket, search text, split ratio, layout and theme.
//
// The controller is driven from a single goroutine. Mutations are applied
// to local state immediately and hand back a Pending effect; the caller runs
// it wherever it likes and feeds the Result back through Apply. Results may
// arrive in any order relative to later transitions.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"slices"

	"github.com/nhle/email-triage/internal/model"
	"github.com/nhle/email-triage/internal/view"
)

// Split ratio bounds, in percent of the container width given to the list.
const (
	MinSplitRatio     = 30.0
	MaxSplitRatio     = 70.0
	DefaultSplitRatio = 50.0
)

// DefaultMobileBreakpoint is the viewport width below which the single-pane
// layout is used.
const DefaultMobileBreakpoint = 768

// Banner messages surfaced to the user.
const (
	BannerFetchFailed  = "Failed to fetch emails"
	BannerNetwork      = "Network error"
	BannerToggleFailed = "Failed to update email importance"
	BannerDeleteFailed = "Failed to delete email"
)

// Backend is the remote email store as seen by the dashboard.
type Backend interface {
	ListEmails(ctx context.Context) ([]model.EmailRecord, error)
	SetImportance(ctx context.Context, id string, patch model.ImportancePatch) error
	SetRead(ctx context.Context, id string, read bool) error
	DeleteEmail(ctx context.Context, id string) error
}

// PreferenceStore persists the theme choice outside the session.
type PreferenceStore interface {
	DarkTheme() bool
	SetDarkTheme(dark bool) error
}

// State is a snapshot of the view state.
type State struct {
	SelectedID string
	Bucket     model.Bucket
	SearchText string
	SplitRatio float64
	Mobile     bool
	DarkTheme  bool
	Loading    bool
	Resizing   bool
	Banner     string
}

// Option configures a Controller.
type Option func(*Controller)

// WithMobileBreakpoint overrides the width threshold for the mobile layout.
func WithMobileBreakpoint(width int) Option {
	return func(c *Controller) {
		if width > 0 {
			c.breakpoint = width
		}
	}
}

// WithLogger sets the logger used for failures that are not surfaced.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller is the dashboard state machine.
type Controller struct {
	backend    Backend
	prefs      PreferenceStore
	logger     *slog.Logger
	breakpoint int

	records []model.EmailRecord
	state   State
	resize  *ResizeSession
}

// New creates a controller for a viewport of the given width. The theme is
// read from prefs, which may be nil.
func New(backend Backend, prefs PreferenceStore, width int, opts ...Option) *Controller {
	c := &Controller{
		backend:    backend,
		prefs:      prefs,
		logger:     slog.New(slog.DiscardHandler),
		breakpoint: DefaultMobileBreakpoint,
		state: State{
			Bucket:     model.BucketImportant,
			SplitRatio: DefaultSplitRatio,
			Loading:    true,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state.Mobile = width < c.breakpoint
	if prefs != nil {
		c.state.DarkTheme = prefs.DarkTheme()
	}
	return c
}

// State returns a snapshot of the current view state.
func (c *Controller) State() State {
	return c.state
}

// Records returns a copy of every record currently held.
func (c *Controller) Records() []model.EmailRecord {
	return slices.Clone(c.records)
}

// Visible returns the ordered records of the active bucket that match the
// search text.
func (c *Controller) Visible() []model.EmailRecord {
	return view.Filter(c.records, c.state.Bucket, c.state.SearchText)
}

// Counts returns the bucket badge numbers over the unsearched set.
func (c *Controller) Counts() view.Counts {
	return view.CountBuckets(c.records)
}

// Selected returns the selected record, if any.
func (c *Controller) Selected() (model.EmailRecord, bool) {
	if c.state.SelectedID == "" {
		return model.EmailRecord{}, false
	}
	i := c.indexOf(c.state.SelectedID)
	if i < 0 {
		return model.EmailRecord{}, false
	}
	return c.records[i], true
}

// Fetch returns the effect that loads the full list.
func (c *Controller) Fetch() *Pending {
	b := c.backend
	return &Pending{op: OpFetch, run: func(ctx context.Context) ([]model.EmailRecord, error) {
		return b.ListEmails(ctx)
	}}
}

// Select makes id the current selection. Selecting an unread record marks
// it read locally and returns the effect persisting that; otherwise nil.
// Unknown ids are ignored.
func (c *Controller) Select(id string) *Pending {
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}
	c.state.SelectedID = id
	if c.records[i].IsRead {
		return nil
	}

	c.records[i].IsRead = true
	b := c.backend
	return &Pending{op: OpMarkRead, id: id, run: func(ctx context.Context) ([]model.EmailRecord, error) {
		return nil, b.SetRead(ctx, id, true)
	}}
}

// ClearSelection deselects the current record.
func (c *Controller) ClearSelection() {
	c.state.SelectedID = ""
	c.ReleaseResize()
}

// SwitchBucket changes the active bucket. The selection is kept even when
// the selected record is not part of the new bucket.
func (c *Controller) SwitchBucket(b model.Bucket) {
	c.state.Bucket = b
}

// ToggleImportance flips the importance of id, writing both fields, and
// returns the effect persisting it. The selection is cleared when it is id
// and the active bucket no longer contains it.
func (c *Controller) ToggleImportance(id string) *Pending {
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}

	patch := model.ToggleImportance(c.records[i])
	c.records[i] = patch.Apply(c.records[i])
	if c.state.SelectedID == id && !c.state.Bucket.Contains(c.records[i]) {
		c.ClearSelection()
	}

	b := c.backend
	return &Pending{op: OpToggleImportance, id: id, run: func(ctx context.Context) ([]model.EmailRecord, error) {
		return nil, b.SetImportance(ctx, id, patch)
	}}
}

// Delete removes id locally and returns the effect deleting it remotely.
func (c *Controller) Delete(id string) *Pending {
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}

	c.records = slices.Delete(c.records, i, i+1)
	if c.state.SelectedID == id {
		c.ClearSelection()
	}

	b := c.backend
	return &Pending{op: OpDelete, id: id, run: func(ctx context.Context) ([]model.EmailRecord, error) {
		return nil, b.DeleteEmail(ctx, id)
	}}
}

// Search replaces the search text.
func (c *Controller) Search(text string) {
	c.state.SearchText = text
}

// SetViewport recomputes the layout for a new viewport width and re-clamps
// the split ratio.
func (c *Controller) SetViewport(width int) {
	c.state.Mobile = width < c.breakpoint
	c.state.SplitRatio = ClampSplit(c.state.SplitRatio)
	if c.state.Mobile {
		c.ReleaseResize()
	}
}

// NudgeSplit moves the split by delta percent, clamped.
func (c *Controller) NudgeSplit(delta float64) {
	c.state.SplitRatio = ClampSplit(c.state.SplitRatio + delta)
}

// ToggleTheme flips the theme and persists it. The flip stands even when
// persisting fails; the error is returned for logging.
func (c *Controller) ToggleTheme() error {
	c.state.DarkTheme = !c.state.DarkTheme
	if c.prefs == nil {
		return nil
	}
	if err := c.prefs.SetDarkTheme(c.state.DarkTheme); err != nil {
		c.logger.Warn("persisting theme preference", "error", err)
		return err
	}
	return nil
}

// DismissBanner clears the transient error message.
func (c *Controller) DismissBanner() {
	c.state.Banner = ""
}

// Apply folds the outcome of an effect back into the state. Successful
// mutations change nothing, since their effect was applied up front.
// Failed mutations are never rolled back.
func (c *Controller) Apply(r Result) {
	switch r.Op {
	case OpFetch:
		c.state.Loading = false
		if r.Err != nil {
			c.state.Banner = fetchBanner(r.Err)
			c.logger.Error("fetching emails", "error", r.Err)
			return
		}
		c.records = slices.Clone(r.Records)
		if c.state.SelectedID != "" && c.indexOf(c.state.SelectedID) < 0 {
			c.ClearSelection()
		}

	case OpToggleImportance:
		if r.Err != nil {
			c.state.Banner = BannerToggleFailed
			c.logger.Error("updating email importance", "id", r.ID, "error", r.Err)
		}

	case OpDelete:
		if r.Err != nil {
			c.state.Banner = BannerDeleteFailed
			c.logger.Error("deleting email", "id", r.ID, "error", r.Err)
		}

	case OpMarkRead:
		if r.Err != nil {
			c.logger.Warn("marking email read", "id", r.ID, "error", r.Err)
		}
	}
}

func (c *Controller) indexOf(id string) int {
	return slices.IndexFunc(c.records, func(r model.EmailRecord) bool {
		return r.ID == id
	})
}

// fetchBanner distinguishes transport failures from server errors.
func fetchBanner(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return BannerNetwork
	}
	return BannerFetchFailed
}

// ClampSplit bounds a split ratio to [MinSplitRatio, MaxSplitRatio].
func ClampSplit(v float64) float64 {
	return min(MaxSplitRatio, max(MinSplitRatio, v))
}
