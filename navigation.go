package main

import "lectern/internal/document"

// Page and block selection are view state, not document edits, so they do
// not go through mutate and are not undoable.

func (m *model) selectPageOffset(offset int) {
	pages := m.store.Pages()
	index := m.store.PageIndex(m.store.CurrentPageID()) + offset
	if index < 0 || index >= len(pages) {
		return
	}
	m.store.SelectPage(pages[index].ID)
	m.selectedBlock = 0
	m.clampSelection()
}

func (m *model) handleBlockMove(key string) {
	page := m.currentPage()
	if page == nil || len(page.Blocks) == 0 {
		m.selectedBlock = -1
		return
	}
	switch key {
	case "j", "down":
		m.selectedBlock++
	case "k", "up":
		m.selectedBlock--
	case "g", "home":
		m.selectedBlock = 0
	case "G", "end":
		m.selectedBlock = len(page.Blocks) - 1
	}
	m.clampSelection()
}

// enterBoard starts board editing with the cursor in the visible region.
func (m *model) enterBoard(board *document.BoardBlock) {
	r := visibleRegion(board.Variant, board.Size)
	if !r.contains(m.boardX, m.boardY) {
		m.boardX = (r.X0 + r.X1) / 2
		m.boardY = (r.Y0 + r.Y1) / 2
	}
	m.mode = ModeBoard
}

func (m *model) handleBoardCursor(key string) {
	board := m.selectedBoard()
	if board == nil {
		m.mode = ModeNormal
		return
	}
	r := visibleRegion(board.Variant, board.Size)
	switch key {
	case "h", "left":
		m.boardX--
	case "l", "right":
		m.boardX++
	case "k", "up":
		m.boardY--
	case "j", "down":
		m.boardY++
	}
	m.boardX = min(max(m.boardX, r.X0), r.X1)
	m.boardY = min(max(m.boardY, r.Y0), r.Y1)
}
