package main

import (
	"fmt"
	"reflect"

	"lectern/internal/document"
)

func (m *model) currentPage() *document.Page {
	return m.store.CurrentPage()
}

func (m *model) selected() document.Block {
	page := m.currentPage()
	if page == nil || m.selectedBlock < 0 || m.selectedBlock >= len(page.Blocks) {
		return nil
	}
	return page.Blocks[m.selectedBlock]
}

func (m *model) selectedText() *document.TextBlock {
	text, _ := m.selected().(*document.TextBlock)
	return text
}

func (m *model) selectedBoard() *document.BoardBlock {
	board, _ := m.selected().(*document.BoardBlock)
	return board
}

func (m *model) clampSelection() {
	page := m.currentPage()
	if page == nil || len(page.Blocks) == 0 {
		m.selectedBlock = -1
		return
	}
	if m.selectedBlock >= len(page.Blocks) {
		m.selectedBlock = len(page.Blocks) - 1
	}
	if m.selectedBlock < 0 {
		m.selectedBlock = 0
	}
}

func (m *model) selectBlockID(id string) {
	page := m.currentPage()
	if page == nil {
		return
	}
	for i, block := range page.Blocks {
		if block.BlockID() == id {
			m.selectedBlock = i
			return
		}
	}
}

// mutate runs a store operation and records an undo step if it changed the
// document. The store ignores bad input silently, so comparing snapshots is
// the only way to tell whether anything happened.
func (m *model) mutate(op func(s *document.Store)) bool {
	before := m.store.Snapshot()
	op(m.store)
	if reflect.DeepEqual(before, m.store.Snapshot()) {
		return false
	}
	m.history.Record(before)
	return true
}

// insertionIndex places new blocks after the selection, or at the end.
func (m *model) insertionIndex() *int {
	if m.selected() == nil {
		return nil
	}
	return document.At(m.selectedBlock + 1)
}

func (m *model) pasteClipboard() {
	raw, err := readClipboardText()
	if err != nil {
		m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
		return
	}
	text := cleanClipboardText(raw)
	if text == "" {
		m.errorMessage = "Clipboard is empty"
		return
	}

	if block := m.selectedText(); block != nil {
		content := block.Content
		if content != "" {
			content += "\n"
		}
		m.mutate(func(s *document.Store) {
			s.UpdateTextBlock(document.UpdateTextBlockOptions{BlockID: block.ID, Content: content + text})
		})
		m.successMessage = "Pasted into text block"
		return
	}

	index := m.insertionIndex()
	var newID string
	m.mutate(func(s *document.Store) {
		s.InsertTextBlock(document.InsertTextBlockOptions{Index: index, Content: text})
		if page := s.CurrentPage(); page != nil {
			newID = lastInsertedID(page, index)
		}
	})
	m.selectBlockID(newID)
	m.successMessage = "Pasted as new text block"
}

// lastInsertedID finds the block an Insert* call with index just created.
func lastInsertedID(page *document.Page, index *int) string {
	if len(page.Blocks) == 0 {
		return ""
	}
	if index != nil && *index >= 0 && *index < len(page.Blocks) {
		return page.Blocks[*index].BlockID()
	}
	return page.Blocks[len(page.Blocks)-1].BlockID()
}
