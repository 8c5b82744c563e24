package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWidths(t *testing.T) {
	l := NewLayout(101, 30)

	list, reader := l.SplitWidths(50)
	assert.Equal(t, 51, list)
	assert.Equal(t, 49, reader)

	list, reader = l.SplitWidths(30)
	assert.Equal(t, 30, list)
	assert.Equal(t, 70, reader)

	list, reader = NewLayout(10, 5).SplitWidths(200)
	assert.Equal(t, 10, list)
	assert.Equal(t, 0, reader)
}

func TestContentHeight(t *testing.T) {
	assert.Equal(t, 22, NewLayout(80, 24).ContentHeight())
	assert.Equal(t, 0, NewLayout(80, 1).ContentHeight())
}

func TestOnDivider(t *testing.T) {
	l := NewLayout(100, 24)

	assert.True(t, l.OnDivider(50, 5, 50))
	assert.True(t, l.OnDivider(49, 5, 50))
	assert.True(t, l.OnDivider(51, 5, 50))
	assert.False(t, l.OnDivider(53, 5, 50))
	assert.False(t, l.OnDivider(50, 0, 50), "header row")
	assert.False(t, l.OnDivider(50, 23, 50), "status row")
}
