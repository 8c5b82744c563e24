package ingest

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/email-triage/internal/model"
	"github.com/nhle/email-triage/internal/testutil"
)

type fakeFetcher struct {
	docs  []model.EmailDocument
	err   error
	calls atomic.Int32
	ran   chan struct{}
}

func (f *fakeFetcher) Fetch(context.Context) ([]model.EmailDocument, error) {
	f.calls.Add(1)
	if f.ran != nil {
		f.ran <- struct{}{}
	}
	return f.docs, f.err
}

func msgDoc(id string) model.EmailDocument {
	return model.EmailDocument{
		MessageID:   model.StringPtr(id),
		IsImportant: model.BoolPtr(true),
	}
}

func TestRunOnceInsertsAndDeduplicates(t *testing.T) {
	st := testutil.NewTestStore(t)
	f := &fakeFetcher{docs: []model.EmailDocument{msgDoc("<1>"), msgDoc("<2>")}}
	p := NewPoller(f, st, time.Hour, nil)
	ctx := context.Background()

	n, err := p.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = p.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "same message ids are skipped")

	count, err := st.CountEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	s := p.Status()
	assert.False(t, s.Running)
	assert.NoError(t, s.Err)
	assert.False(t, s.LastRun.IsZero())
}

func TestRunOnceRecordsFailure(t *testing.T) {
	st := testutil.NewTestStore(t)
	f := &fakeFetcher{err: errors.New("connection reset")}
	p := NewPoller(f, st, time.Hour, nil)

	_, err := p.RunOnce(context.Background())
	assert.Error(t, err)
	assert.EqualError(t, p.Status().Err, "connection reset")
}

func TestStartRunsImmediatelyAndOnRefresh(t *testing.T) {
	st := testutil.NewTestStore(t)
	f := &fakeFetcher{ran: make(chan struct{}, 4)}
	p := NewPoller(f, st, time.Hour, nil)

	p.Start(context.Background())
	p.Start(context.Background())
	waitRun(t, f.ran)

	p.RefreshNow()
	waitRun(t, f.ran)

	p.Stop()
	p.Stop()
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestStopWithoutStart(t *testing.T) {
	p := NewPoller(&fakeFetcher{}, testutil.NewTestStore(t), time.Hour, nil)
	p.Stop()
}

func waitRun(t *testing.T, ran <-chan struct{}) {
	t.Helper()
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("fetcher did not run")
	}
}
