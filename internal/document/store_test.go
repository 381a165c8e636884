package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidDocument(t *testing.T, s *Store) {
	t.Helper()
	require.NotEmpty(t, s.Pages())
	require.NotNil(t, s.CurrentPage(), "current page %q must resolve", s.CurrentPageID())
	for _, page := range s.Pages() {
		for _, block := range page.Blocks {
			if board, ok := block.(*BoardBlock); ok {
				assert.Equal(t, board.LeftText == nil, board.LeftStyle == nil, "left side of %s", board.ID)
				assert.Equal(t, board.RightText == nil, board.RightStyle == nil, "right side of %s", board.ID)
			}
		}
	}
}

func TestNewSeedsFirstPage(t *testing.T) {
	s := New()

	pages := s.Pages()
	require.Len(t, pages, 1)
	assert.Equal(t, "page-1", pages[0].ID)
	assert.Equal(t, "第 1 页", pages[0].Title)
	assert.Empty(t, pages[0].Blocks)
	require.NotNil(t, pages[0].Heading)
	assert.True(t, pages[0].Heading.Main.Enabled)
	assert.False(t, pages[0].Heading.Sub.Enabled)
	assert.Equal(t, "page-1", s.CurrentPageID())
	assert.Same(t, pages[0], s.CurrentPage())
}

func TestStoresAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.AddPage()
	a.InsertTextBlock(InsertTextBlockOptions{})

	assert.Len(t, b.Pages(), 1)
	assert.Empty(t, b.CurrentPage().Blocks)
	assert.NotEqual(t, a.Session(), b.Session())

	b.AddPage()
	assert.Equal(t, "page-2", b.CurrentPageID())
}

func TestAddAndRemovePage(t *testing.T) {
	s := New()
	s.AddPage()

	require.Len(t, s.Pages(), 2)
	assert.Equal(t, "page-2", s.CurrentPageID())
	assert.Equal(t, "第 2 页", s.CurrentPage().Title)

	s.RemovePage("page-2")
	require.Len(t, s.Pages(), 1)
	assert.Equal(t, "page-1", s.CurrentPageID())
	requireValidDocument(t, s)
}

func TestRemovePage(t *testing.T) {
	tests := []struct {
		name        string
		pages       int
		current     string
		remove      string
		wantIDs     []string
		wantCurrent string
	}{
		{"last page standing", 1, "page-1", "page-1", []string{"page-1"}, "page-1"},
		{"unknown id", 3, "page-2", "page-9", []string{"page-1", "page-2", "page-3"}, "page-2"},
		{"current middle selects previous", 3, "page-2", "page-2", []string{"page-1", "page-3"}, "page-1"},
		{"current first clamps to index 0", 3, "page-1", "page-1", []string{"page-2", "page-3"}, "page-2"},
		{"current last selects previous", 3, "page-3", "page-3", []string{"page-1", "page-2"}, "page-2"},
		{"non-current keeps current", 3, "page-3", "page-1", []string{"page-2", "page-3"}, "page-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			for i := 1; i < tt.pages; i++ {
				s.AddPage()
			}
			s.SelectPage(tt.current)

			s.RemovePage(tt.remove)

			var ids []string
			for _, page := range s.Pages() {
				ids = append(ids, page.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantCurrent, s.CurrentPageID())
			requireValidDocument(t, s)
		})
	}
}

func TestPageIDsAreNeverReused(t *testing.T) {
	s := New()
	s.AddPage()
	s.RemovePage("page-2")
	s.AddPage()

	assert.Equal(t, "page-3", s.CurrentPageID())
	assert.Equal(t, "第 3 页", s.CurrentPage().Title)
}

func TestSelectPage(t *testing.T) {
	s := New()
	s.AddPage()

	s.SelectPage("page-1")
	assert.Equal(t, "page-1", s.CurrentPageID())

	s.SelectPage("page-42")
	assert.Equal(t, "page-1", s.CurrentPageID())
}

func TestCurrentPageFollowsState(t *testing.T) {
	s := New()
	first := s.CurrentPage()
	assert.Same(t, first, s.CurrentPage())

	s.AddPage()
	second := s.CurrentPage()
	require.NotNil(t, second)
	assert.Equal(t, "page-2", second.ID)

	s.SelectPage("page-1")
	assert.Same(t, first, s.CurrentPage())

	s.RemovePage("page-1")
	assert.Same(t, second, s.CurrentPage())
}

func TestPagesReturnsCopy(t *testing.T) {
	s := New()
	pages := s.Pages()
	pages[0] = &Page{ID: "intruder"}

	assert.Equal(t, "page-1", s.Pages()[0].ID)
}

func TestRemoveBlock(t *testing.T) {
	s := New()
	s.InsertTextBlock(InsertTextBlockOptions{Content: "a"})
	s.InsertBoardBlock(InsertBoardBlockOptions{})
	s.InsertTextBlock(InsertTextBlockOptions{Content: "c"})

	s.RemoveBlock(RemoveBlockOptions{BlockID: "block-2"})
	s.RemoveBlock(RemoveBlockOptions{BlockID: "block-99"})
	s.RemoveBlock(RemoveBlockOptions{PageID: "page-7", BlockID: "block-1"})

	blocks := s.CurrentPage().Blocks
	require.Len(t, blocks, 2)
	assert.Equal(t, "block-1", blocks[0].BlockID())
	assert.Equal(t, "block-3", blocks[1].BlockID())
}

func TestOperationsOnMissingPageAreIgnored(t *testing.T) {
	s := New()
	before := s.Snapshot()

	s.InsertTextBlock(InsertTextBlockOptions{PageID: "page-9"})
	s.InsertBoardBlock(InsertBoardBlockOptions{PageID: "page-9"})
	s.ToggleHeadingSegment(HeadingOptions{PageID: "page-9"})
	s.UpdateHeadingContent(HeadingContentOptions{PageID: "page-9", Content: "x"})

	assert.Equal(t, before, s.Snapshot())
}
