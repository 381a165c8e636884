package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lectern/internal/document"
)

func snapshotWithPages(n int) document.Document {
	s := document.New()
	for i := 1; i < n; i++ {
		s.AddPage()
	}
	return s.Snapshot()
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(10)
	one, two, three := snapshotWithPages(1), snapshotWithPages(2), snapshotWithPages(3)

	_, ok := h.Undo(one)
	assert.False(t, ok)

	h.Record(one)
	h.Record(two)

	got, ok := h.Undo(three)
	require.True(t, ok)
	assert.Len(t, got.Pages, 2)
	assert.True(t, h.CanRedo())

	got, ok = h.Undo(two)
	require.True(t, ok)
	assert.Len(t, got.Pages, 1)
	assert.False(t, h.CanUndo())

	got, ok = h.Redo(one)
	require.True(t, ok)
	assert.Len(t, got.Pages, 2)

	got, ok = h.Redo(two)
	require.True(t, ok)
	assert.Len(t, got.Pages, 3)
	assert.False(t, h.CanRedo())
}

func TestHistoryRecordClearsRedo(t *testing.T) {
	h := NewHistory(10)
	h.Record(snapshotWithPages(1))
	_, ok := h.Undo(snapshotWithPages(2))
	require.True(t, ok)
	require.True(t, h.CanRedo())

	h.Record(snapshotWithPages(1))
	assert.False(t, h.CanRedo())
}

func TestHistoryDepth(t *testing.T) {
	h := NewHistory(2)
	for i := 1; i <= 4; i++ {
		h.Record(snapshotWithPages(i))
	}

	got, _ := h.Undo(snapshotWithPages(5))
	assert.Len(t, got.Pages, 4)
	got, _ = h.Undo(got)
	assert.Len(t, got.Pages, 3)
	_, ok := h.Undo(got)
	assert.False(t, ok)
}

func TestNewHistoryDefaultDepth(t *testing.T) {
	assert.Equal(t, defaultUndoDepth, NewHistory(0).depth)
	assert.Equal(t, defaultUndoDepth, NewHistory(-3).depth)
}
