package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lectern/internal/document"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(m.editorWidth())
		return m, nil

	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "esc", "q", "?":
				m.help = false
			}
			return m, nil
		}

		switch m.mode {
		case ModeEditing:
			return m, m.handleEditingKey(msg)
		case ModeFileInput:
			m.handleFileInputKey(msg)
			return m, nil
		case ModeConfirm:
			return m, m.handleConfirmKey(msg)
		}

		m.errorMessage = ""
		m.successMessage = ""
		if m.mode == ModeBoard {
			m.handleBoardKey(msg)
			return m, nil
		}
		return m, m.handleNormalKey(msg)
	}

	if m.mode == ModeEditing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return tea.Quit
	case "q":
		if m.config.Confirmations {
			m.confirm(ConfirmQuit)
			return nil
		}
		return tea.Quit
	case "?":
		m.help = true

	case "n":
		m.mutate(func(s *document.Store) { s.AddPage() })
		m.selectedBlock = -1
	case "X":
		m.confirmPageID = m.store.CurrentPageID()
		if len(m.store.Pages()) == 1 {
			m.errorMessage = "Cannot remove the only page"
			return nil
		}
		if m.config.Confirmations {
			m.confirm(ConfirmRemovePage)
			return nil
		}
		m.removePage()
	case "[", "pgup":
		m.selectPageOffset(-1)
	case "]", "pgdown":
		m.selectPageOffset(1)

	case "j", "down", "k", "up", "g", "home", "G", "end":
		m.handleBlockMove(key)

	case "t":
		return m.insertTextBlock()
	case "b":
		m.insertBoardBlock()
	case "e", "enter":
		return m.editSelected()
	case "d":
		block := m.selected()
		if block == nil {
			return nil
		}
		m.confirmBlockID = block.BlockID()
		if m.config.Confirmations {
			m.confirm(ConfirmRemoveBlock)
			return nil
		}
		m.removeBlock()

	case "+", "=":
		m.adjustStyle(document.StylePatch{}, fontSizeStep)
	case "-":
		m.adjustStyle(document.StylePatch{}, -fontSizeStep)
	case "c":
		m.adjustStyle(document.StylePatch{Color: document.Color(nextColor(m.selectedColor()))}, 0)
	case "f":
		m.adjustStyle(document.StylePatch{Family: document.Family(nextFamily(m.selectedFamily()))}, 0)

	case "1":
		m.mutate(func(s *document.Store) { s.ToggleHeadingSegment(document.HeadingOptions{Target: document.HeadingMain}) })
	case "2":
		m.mutate(func(s *document.Store) { s.ToggleHeadingSegment(document.HeadingOptions{Target: document.HeadingSub}) })
	case "h":
		return m.editHeading(document.HeadingMain)
	case "H":
		return m.editHeading(document.HeadingSub)
	case ">":
		m.adjustHeadingSize(fontSizeStep)
	case "<":
		m.adjustHeadingSize(-fontSizeStep)

	case "L":
		m.toggleSide(document.SideLeft)
	case "R":
		m.toggleSide(document.SideRight)
	case "l":
		return m.editSide(document.SideLeft)
	case "r":
		return m.editSide(document.SideRight)

	case "p":
		m.pasteClipboard()
	case "u":
		m.undo()
	case "ctrl+r":
		m.redo()

	case "P":
		m.startFileInput(FileOpExportPNG)
	case "E":
		m.startFileInput(FileOpExportHTML)
	}
	return nil
}

func (m *model) handleBoardKey(msg tea.KeyMsg) {
	switch key := msg.String(); key {
	case "esc", "q":
		m.mode = ModeNormal
	case "h", "left", "j", "down", "k", "up", "l", "right":
		m.handleBoardCursor(key)
	case " ", "enter":
		m.placeStone()
	case "x", "backspace":
		m.takeBackStone()
	case "w":
		m.passTurn()
	case "L":
		m.toggleSide(document.SideLeft)
	case "R":
		m.toggleSide(document.SideRight)
	case "u":
		m.undo()
	case "ctrl+r":
		m.redo()
	}
	if m.selectedBoard() == nil {
		m.mode = ModeNormal
	}
}

func (m *model) handleEditingKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.editor.Blur()
		m.mode = ModeNormal
		return nil
	case "ctrl+s":
		m.commitEdit()
		return nil
	case "ctrl+v":
		raw, err := readClipboardText()
		if err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard: %v", err)
			return nil
		}
		m.editor.InsertString(cleanClipboardText(raw))
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *model) handleFileInputKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
	case tea.KeyEnter:
		if strings.TrimSpace(m.filename) == "" {
			m.errorMessage = "Filename is empty"
			return
		}
		path, err := m.config.GetSavePath(withExtension(m.filename, m.fileOp))
		if err != nil {
			m.log.Error("export path", "error", err)
			m.errorMessage = fmt.Sprintf("Export failed: %v", err)
			m.mode = ModeNormal
			return
		}
		if _, err := os.Stat(path); err == nil && m.config.Confirmations {
			m.confirm(ConfirmOverwriteFile)
			return
		}
		m.mode = ModeNormal
		m.runExport(path)
	case tea.KeyBackspace:
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.filename += " "
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
	}
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	m.mode = ModeNormal
	if key := msg.String(); key != "y" && key != "Y" {
		m.successMessage = "Cancelled"
		return nil
	}
	switch m.confirmAction {
	case ConfirmQuit:
		return tea.Quit
	case ConfirmRemovePage:
		m.removePage()
	case ConfirmRemoveBlock:
		m.removeBlock()
	case ConfirmOverwriteFile:
		path, err := m.config.GetSavePath(withExtension(m.filename, m.fileOp))
		if err != nil {
			m.errorMessage = fmt.Sprintf("Export failed: %v", err)
			return nil
		}
		m.runExport(path)
	}
	return nil
}

func (m *model) confirm(action ConfirmAction) {
	m.confirmAction = action
	m.mode = ModeConfirm
}

func (m *model) removePage() {
	id := m.confirmPageID
	if m.mutate(func(s *document.Store) { s.RemovePage(id) }) {
		m.successMessage = fmt.Sprintf("Removed %s", id)
	}
	m.selectedBlock = 0
	m.clampSelection()
}

func (m *model) removeBlock() {
	id := m.confirmBlockID
	m.mutate(func(s *document.Store) { s.RemoveBlock(document.RemoveBlockOptions{BlockID: id}) })
	m.clampSelection()
}

func (m *model) insertTextBlock() tea.Cmd {
	index := m.insertionIndex()
	var id string
	m.mutate(func(s *document.Store) {
		s.InsertTextBlock(document.InsertTextBlockOptions{Index: index})
		id = lastInsertedID(s.CurrentPage(), index)
	})
	m.selectBlockID(id)
	return m.startEditing(EditTextBlock, id, "")
}

func (m *model) insertBoardBlock() {
	index := m.insertionIndex()
	var id string
	m.mutate(func(s *document.Store) {
		s.InsertBoardBlock(document.InsertBoardBlockOptions{Index: index})
		id = lastInsertedID(s.CurrentPage(), index)
	})
	m.selectBlockID(id)
	if board := m.selectedBoard(); board != nil {
		m.enterBoard(board)
	}
}

func (m *model) editSelected() tea.Cmd {
	switch block := m.selected().(type) {
	case *document.TextBlock:
		return m.startEditing(EditTextBlock, block.ID, block.Content)
	case *document.BoardBlock:
		m.enterBoard(block)
	}
	return nil
}

func (m *model) editHeading(target document.HeadingTarget) tea.Cmd {
	page := m.currentPage()
	if page == nil {
		return nil
	}
	content := ""
	if page.Heading != nil {
		if target == document.HeadingSub {
			content = page.Heading.Sub.Content
		} else {
			content = page.Heading.Main.Content
		}
	}
	if target == document.HeadingSub {
		return m.startEditing(EditHeadingSub, "", content)
	}
	return m.startEditing(EditHeadingMain, "", content)
}

func (m *model) toggleSide(side document.Side) {
	board := m.selectedBoard()
	if board == nil {
		m.errorMessage = "Select a board first"
		return
	}
	m.mutate(func(s *document.Store) {
		s.ToggleBoardSide(document.BoardSideOptions{BlockID: board.ID, Side: side})
	})
}

func (m *model) editSide(side document.Side) tea.Cmd {
	board := m.selectedBoard()
	if board == nil {
		m.errorMessage = "Select a board first"
		return nil
	}
	text, ok := board.SideText(side)
	if !ok {
		m.errorMessage = fmt.Sprintf("The %s panel is off (press %s)", side, strings.ToUpper(string(side[:1])))
		return nil
	}
	if side == document.SideRight {
		return m.startEditing(EditSideRight, board.ID, text)
	}
	return m.startEditing(EditSideLeft, board.ID, text)
}

func (m *model) startEditing(target EditTarget, blockID, value string) tea.Cmd {
	m.editTarget = target
	m.editBlockID = blockID
	m.editor.SetValue(value)
	m.editor.SetWidth(m.editorWidth())
	m.mode = ModeEditing
	return m.editor.Focus()
}

func (m *model) commitEdit() {
	value := m.editor.Value()
	target, blockID := m.editTarget, m.editBlockID
	m.mutate(func(s *document.Store) {
		switch target {
		case EditTextBlock:
			s.UpdateTextBlock(document.UpdateTextBlockOptions{BlockID: blockID, Content: value})
		case EditHeadingMain:
			s.UpdateHeadingContent(document.HeadingContentOptions{Target: document.HeadingMain, Content: value})
		case EditHeadingSub:
			s.UpdateHeadingContent(document.HeadingContentOptions{Target: document.HeadingSub, Content: value})
		case EditSideLeft:
			s.UpdateBoardSideText(document.BoardSideTextOptions{BlockID: blockID, Side: document.SideLeft, Content: value})
		case EditSideRight:
			s.UpdateBoardSideText(document.BoardSideTextOptions{BlockID: blockID, Side: document.SideRight, Content: value})
		}
	})
	m.editor.Blur()
	m.mode = ModeNormal
}

func (m *model) editorWidth() int {
	return max(20, m.width-sidebarWidth-6)
}

// adjustStyle applies patch (plus a size step) to the selected text block, or
// to whichever side panels of the selected board are on.
func (m *model) adjustStyle(patch document.StylePatch, sizeDelta float64) {
	switch block := m.selected().(type) {
	case *document.TextBlock:
		if sizeDelta != 0 {
			patch.Size = document.Size(max(minFontSize, block.Style.Size+sizeDelta))
		}
		m.mutate(func(s *document.Store) {
			s.UpdateTextStyle(document.UpdateTextStyleOptions{BlockID: block.ID, Style: patch})
		})
	case *document.BoardBlock:
		changed := m.mutate(func(s *document.Store) {
			for _, side := range []document.Side{document.SideLeft, document.SideRight} {
				sidePatch := patch
				if style := sideStyle(block, side); style != nil && sizeDelta != 0 {
					sidePatch.Size = document.Size(max(minFontSize, style.Size+sizeDelta))
				}
				s.UpdateBoardSideStyle(document.BoardSideStyleOptions{BlockID: block.ID, Side: side, Style: sidePatch})
			}
		})
		if !changed {
			m.errorMessage = "No side panel is on"
		}
	}
}

func (m *model) adjustHeadingSize(delta float64) {
	page := m.currentPage()
	if page == nil {
		return
	}
	size := document.DefaultHeadingMainStyle().Size
	if page.Heading != nil {
		size = page.Heading.Main.Style.Size
	}
	m.mutate(func(s *document.Store) {
		s.UpdateHeadingStyle(document.HeadingStyleOptions{
			Target: document.HeadingMain,
			Style:  document.StylePatch{Size: document.Size(max(minFontSize, size+delta))},
		})
	})
}

func sideStyle(board *document.BoardBlock, side document.Side) *document.TextStyle {
	if side == document.SideRight {
		return board.RightStyle
	}
	return board.LeftStyle
}

func (m *model) selectedColor() string {
	switch block := m.selected().(type) {
	case *document.TextBlock:
		return block.Style.Color
	case *document.BoardBlock:
		for _, side := range []document.Side{document.SideLeft, document.SideRight} {
			if style := sideStyle(block, side); style != nil {
				return style.Color
			}
		}
	}
	return ""
}

func (m *model) selectedFamily() string {
	switch block := m.selected().(type) {
	case *document.TextBlock:
		return block.Style.Family
	case *document.BoardBlock:
		for _, side := range []document.Side{document.SideLeft, document.SideRight} {
			if style := sideStyle(block, side); style != nil {
				return style.Family
			}
		}
	}
	return ""
}

func nextColor(current string) string {
	return nextIn(textColors, current)
}

func nextFamily(current string) string {
	return nextIn(fontFamilies, current)
}

// nextIn cycles through values; an unknown current starts at the first value.
func nextIn(values []string, current string) string {
	for i, v := range values {
		if strings.EqualFold(v, current) {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func (m *model) startFileInput(op FileOperation) {
	m.fileOp = op
	session := m.store.Session().String()[:8]
	if op == FileOpExportPNG {
		m.filename = fmt.Sprintf("lecture-%s-%s", session, m.store.CurrentPageID())
	} else {
		m.filename = fmt.Sprintf("lecture-%s", session)
	}
	m.mode = ModeFileInput
}

func withExtension(name string, op FileOperation) string {
	ext := ".html"
	if op == FileOpExportPNG {
		ext = ".png"
	}
	if strings.EqualFold(filepath.Ext(name), ext) {
		return name
	}
	return name + ext
}

func (m *model) runExport(path string) {
	var err error
	switch m.fileOp {
	case FileOpExportPNG:
		err = exportPNG(m.currentPage(), path)
	case FileOpExportHTML:
		err = exportHTML(m.store.Document(), path)
	}
	if err != nil {
		m.log.Error("export failed", "path", path, "error", err)
		m.errorMessage = fmt.Sprintf("Export failed: %v", err)
		return
	}
	m.log.Info("exported", "path", path)
	m.successMessage = "Exported " + path
}
