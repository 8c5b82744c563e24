package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginResizeRequiresSelectionAndDesktop(t *testing.T) {
	c := loaded(t, newFakeBackend(sampleRecords()...))

	_, ok := c.BeginResize()
	assert.False(t, ok, "no selection")

	c.Select("1")
	c.SetViewport(500)
	_, ok = c.BeginResize()
	assert.False(t, ok, "mobile layout has no divider")

	c.SetViewport(1024)
	s, ok := c.BeginResize()
	require.True(t, ok)
	assert.True(t, c.State().Resizing)

	_, ok = c.BeginResize()
	assert.False(t, ok, "only one drag at a time")

	s.End()
	assert.False(t, c.State().Resizing)
}

func TestResizeMoveClamps(t *testing.T) {
	c := loaded(t, newFakeBackend(sampleRecords()...))
	c.Select("1")
	s, ok := c.BeginResize()
	require.True(t, ok)
	defer s.End()

	s.Move(15, 0, 100)
	assert.Equal(t, 30.0, c.State().SplitRatio)

	s.Move(95, 0, 100)
	assert.Equal(t, 70.0, c.State().SplitRatio)

	s.Move(300, 100, 400)
	assert.Equal(t, 50.0, c.State().SplitRatio)

	s.Move(10, 0, 0)
	assert.Equal(t, 50.0, c.State().SplitRatio, "zero-width container is ignored")
}

func TestResizeEndReleasesAndIgnoresLateMoves(t *testing.T) {
	c := loaded(t, newFakeBackend(sampleRecords()...))
	c.Select("1")
	s, _ := c.BeginResize()

	s.End()
	s.End()
	assert.False(t, s.Active())

	s.Move(65, 0, 100)
	assert.Equal(t, DefaultSplitRatio, c.State().SplitRatio)

	_, ok := c.BeginResize()
	assert.True(t, ok, "a new drag can start once the old one ended")
}

func TestResizeReleasedWhenSelectionOrLayoutGoes(t *testing.T) {
	c := loaded(t, newFakeBackend(sampleRecords()...))
	c.Select("1")

	s, _ := c.BeginResize()
	c.ClearSelection()
	assert.False(t, s.Active())
	assert.False(t, c.State().Resizing)

	c.Select("1")
	s, _ = c.BeginResize()
	c.SetViewport(400)
	assert.False(t, s.Active())

	c.SetViewport(1024)
	s, _ = c.BeginResize()
	c.ReleaseResize()
	assert.False(t, s.Active())
}
