package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"lectern/internal/document"
)

var (
	sidebarStyle  = lipgloss.NewStyle().Width(sidebarWidth).PaddingRight(1).BorderStyle(lipgloss.NormalBorder()).BorderRight(true)
	currentLabel  = lipgloss.NewStyle().Bold(true).Reverse(true)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	selectedCard  = cardStyle.Copy().BorderForeground(lipgloss.Color("212"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("244")).Width(16)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	modeStyle     = lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230"))
	headingStyles = map[document.HeadingTarget]lipgloss.Style{
		document.HeadingMain: lipgloss.NewStyle().Bold(true).Underline(true),
		document.HeadingSub:  lipgloss.NewStyle().Italic(true),
	}
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	bodyHeight := max(1, m.height-1)
	bodyWidth := max(20, m.width-sidebarWidth-2)

	sidebar := m.renderSidebar()
	page := m.renderPage(bodyWidth, bodyHeight)
	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, page)
	return lipgloss.JoinVertical(lipgloss.Left, clipLines(main, bodyHeight), m.statusLine())
}

func (m model) renderSidebar() string {
	var lines []string
	for i, page := range m.store.Pages() {
		label := fmt.Sprintf("%2d %s", i+1, page.Title)
		if page.ID == m.store.CurrentPageID() {
			label = currentLabel.Render(label)
		}
		lines = append(lines, label)
	}
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

func (m model) renderPage(width, height int) string {
	page := m.currentPage()
	if page == nil {
		return ""
	}

	var heading []string
	if page.Heading != nil {
		for _, target := range []document.HeadingTarget{document.HeadingMain, document.HeadingSub} {
			segment := page.Heading.Main
			if target == document.HeadingSub {
				segment = page.Heading.Sub
			}
			if !segment.Enabled {
				continue
			}
			content := segment.Content
			if content == "" {
				content = dimStyle.Render(fmt.Sprintf("(%s heading, %gpt)", target, segment.Style.Size))
			}
			heading = append(heading, headingStyles[target].Render(content))
		}
	}

	if m.mode == ModeEditing {
		editor := lipgloss.JoinVertical(lipgloss.Left,
			dimStyle.Render(m.editLabel()+"  ctrl+s save · esc cancel"),
			m.editor.View())
		return lipgloss.JoinVertical(lipgloss.Left, append(heading, "", editor)...)
	}

	cards := make([]string, len(page.Blocks))
	for i, block := range page.Blocks {
		cards[i] = m.renderBlock(block, i == m.selectedBlock, width-4)
	}
	if len(cards) == 0 {
		cards = []string{dimStyle.Render("Empty page. 't' adds text, 'b' adds a board.")}
	}

	// Scroll so the selected card is on screen.
	top := lipgloss.JoinVertical(lipgloss.Left, heading...)
	start := 0
	for start < m.selectedBlock && lipgloss.Height(top)+stackHeight(cards[start:m.selectedBlock+1]) > height {
		start++
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{top}, cards[start:]...)...)
}

func stackHeight(cards []string) int {
	total := 0
	for _, card := range cards {
		total += lipgloss.Height(card)
	}
	return total
}

func (m model) renderBlock(block document.Block, selected bool, width int) string {
	style := cardStyle
	if selected {
		style = selectedCard
	}
	width = max(10, width)

	switch b := block.(type) {
	case *document.TextBlock:
		content := b.Content
		if content == "" {
			content = dimStyle.Render("(empty)")
		}
		meta := dimStyle.Render(fmt.Sprintf("%s · %s %gpt %s", b.ID, b.Style.Family, b.Style.Size, b.Style.Color))
		text := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Style.Color)).Render(wordwrap.String(content, width-4))
		return style.Width(width).Render(meta + "\n" + text)

	case *document.BoardBlock:
		var cursor *[2]int
		if selected && m.mode == ModeBoard {
			cursor = &[2]int{m.boardX, m.boardY}
		}
		turn := "● black"
		if b.NextPlayer == document.White {
			turn = "○ white"
		}
		meta := dimStyle.Render(fmt.Sprintf("%s · %s %dx%d · %d moves · %s to play", b.ID, b.Variant, b.Size, b.Size, len(b.Moves), turn))
		row := []string{}
		if text, ok := b.SideText(document.SideLeft); ok {
			row = append(row, panelStyle.Render(wordwrap.String(text, 14)))
		}
		row = append(row, renderBoard(b, cursor))
		if text, ok := b.SideText(document.SideRight); ok {
			row = append(row, panelStyle.Render(wordwrap.String(text, 14)))
		}
		return style.Render(meta + "\n" + lipgloss.JoinHorizontal(lipgloss.Center, row...))
	}
	return ""
}

func renderBoard(board *document.BoardBlock, cursor *[2]int) string {
	r := visibleRegion(board.Variant, board.Size)
	grid := boardGrid(decodeStones(board.Moves, board.Size), board.Size)
	stars := map[[2]int]bool{}
	for _, p := range starPoints(board.Size) {
		stars[p] = true
	}

	var b strings.Builder
	for y := r.Y0; y <= r.Y1; y++ {
		for x := r.X0; x <= r.X1; x++ {
			cell := "·"
			switch {
			case grid[y][x] == document.Black:
				cell = "●"
			case grid[y][x] == document.White:
				cell = "○"
			case stars[[2]int{x, y}]:
				cell = "+"
			}
			if cursor != nil && cursor[0] == x && cursor[1] == y {
				cell = cursorStyle.Render(cell)
			}
			b.WriteString(cell)
			if x < r.X1 {
				b.WriteByte(' ')
			}
		}
		if y < r.Y1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func clipLines(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (m model) editLabel() string {
	switch m.editTarget {
	case EditHeadingMain:
		return "Main heading"
	case EditHeadingSub:
		return "Sub heading"
	case EditSideLeft:
		return "Left panel of " + m.editBlockID
	case EditSideRight:
		return "Right panel of " + m.editBlockID
	default:
		return "Text " + m.editBlockID
	}
}

func (m model) statusLine() string {
	pages := m.store.Pages()
	index := m.store.PageIndex(m.store.CurrentPageID())
	status := fmt.Sprintf("%s page %d/%d", modeStyle.Render(m.modeString()), index+1, len(pages))
	if m.history.CanUndo() {
		status += dimStyle.Render(" · u undo")
	}

	switch m.mode {
	case ModeFileInput:
		status += fmt.Sprintf("  Export to: %s_", m.filename)
	case ModeConfirm:
		status += "  " + m.confirmPrompt() + " (y/n)"
	case ModeBoard:
		status += dimStyle.Render("  hjkl move · space place · x take back · w pass · esc done")
	}

	if m.errorMessage != "" {
		status += "  " + errorStyle.Render(m.errorMessage)
	} else if m.successMessage != "" {
		status += "  " + successStyle.Render(m.successMessage)
	}
	return status
}

func (m model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmQuit:
		return "Quit lectern?"
	case ConfirmRemovePage:
		return fmt.Sprintf("Remove %s?", m.confirmPageID)
	case ConfirmRemoveBlock:
		return fmt.Sprintf("Remove %s?", m.confirmBlockID)
	case ConfirmOverwriteFile:
		return fmt.Sprintf("Overwrite %s?", withExtension(m.filename, m.fileOp))
	default:
		return "Are you sure?"
	}
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeEditing:
		return "EDIT"
	case ModeBoard:
		return "BOARD"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	helpLines := []string{
		"lectern help",
		"============",
		"",
		"Pages:",
		"  n            Add a page after the last one",
		"  X            Remove the current page",
		"  [ / ]        Previous / next page",
		"",
		"Blocks:",
		"  j/k          Select next / previous block",
		"  t            Insert a text block after the selection",
		"  b            Insert a 19x19 board after the selection",
		"  e / Enter    Edit the selected text, or play on the selected board",
		"  d            Delete the selected block",
		"  + / -        Font size of the text block or board side panels",
		"  c / f        Cycle color / font family",
		"  p            Paste the clipboard (ctrl+v while editing)",
		"",
		"Headings:",
		"  1 / 2        Toggle main / sub heading",
		"  h / H        Edit main / sub heading",
		"  > / <        Main heading size",
		"",
		"Board side panels:",
		"  L / R        Toggle left / right panel",
		"  l / r        Edit left / right panel text",
		"",
		"Other:",
		"  u / ctrl+r   Undo / redo",
		"  P            Export the current page as PNG",
		"  E            Export all pages as HTML",
		"  q            Quit",
		"",
		"Press ? or Esc to close this help.",
	}
	return strings.Join(helpLines, "\n")
}
