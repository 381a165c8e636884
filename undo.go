package main

import "lectern/internal/document"

// History keeps document snapshots for undo and redo. Snapshots are taken
// before each change, so undo restores the state the change started from.
type History struct {
	undoStack []document.Document
	redoStack []document.Document
	depth     int
}

func NewHistory(depth int) *History {
	if depth <= 0 {
		depth = defaultUndoDepth
	}
	return &History{depth: depth}
}

func (h *History) Record(before document.Document) {
	h.undoStack = append(h.undoStack, before)
	if len(h.undoStack) > h.depth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.depth:]
	}
	h.redoStack = h.redoStack[:0]
}

func (h *History) Undo(current document.Document) (document.Document, bool) {
	if len(h.undoStack) == 0 {
		return document.Document{}, false
	}
	lastIndex := len(h.undoStack) - 1
	snap := h.undoStack[lastIndex]
	h.undoStack = h.undoStack[:lastIndex]
	h.redoStack = append(h.redoStack, current)
	return snap, true
}

func (h *History) Redo(current document.Document) (document.Document, bool) {
	if len(h.redoStack) == 0 {
		return document.Document{}, false
	}
	lastIndex := len(h.redoStack) - 1
	snap := h.redoStack[lastIndex]
	h.redoStack = h.redoStack[:lastIndex]
	h.undoStack = append(h.undoStack, current)
	return snap, true
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

func (m *model) undo() {
	snap, ok := m.history.Undo(m.store.Snapshot())
	if !ok {
		m.errorMessage = "Nothing to undo"
		return
	}
	m.store.Restore(snap)
	m.clampSelection()
	m.successMessage = "Undone"
}

func (m *model) redo() {
	snap, ok := m.history.Redo(m.store.Snapshot())
	if !ok {
		m.errorMessage = "Nothing to redo"
		return
	}
	m.store.Restore(snap)
	m.clampSelection()
	m.successMessage = "Redone"
}
