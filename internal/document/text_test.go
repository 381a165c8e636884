package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockIDs(page *Page) []string {
	ids := make([]string, 0, len(page.Blocks))
	for _, block := range page.Blocks {
		ids = append(ids, block.BlockID())
	}
	return ids
}

func TestInsertTextBlock(t *testing.T) {
	s := New()
	s.InsertTextBlock(InsertTextBlockOptions{Content: "hello"})

	blocks := s.CurrentPage().Blocks
	require.Len(t, blocks, 1)
	text, ok := blocks[0].(*TextBlock)
	require.True(t, ok)
	assert.Equal(t, "block-1", text.ID)
	assert.Equal(t, KindText, text.Kind())
	assert.Equal(t, "hello", text.Content)
	assert.Equal(t, DefaultTextStyle(), text.Style)
}

func TestInsertIndex(t *testing.T) {
	tests := []struct {
		name  string
		index *int
		want  []string
	}{
		{"nil appends", nil, []string{"block-1", "block-2", "block-3"}},
		{"front", At(0), []string{"block-3", "block-1", "block-2"}},
		{"middle", At(1), []string{"block-1", "block-3", "block-2"}},
		{"length appends", At(2), []string{"block-1", "block-2", "block-3"}},
		{"negative appends", At(-1), []string{"block-1", "block-2", "block-3"}},
		{"overlarge appends", At(40), []string{"block-1", "block-2", "block-3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name+" text", func(t *testing.T) {
			s := New()
			s.InsertTextBlock(InsertTextBlockOptions{})
			s.InsertTextBlock(InsertTextBlockOptions{})
			s.InsertTextBlock(InsertTextBlockOptions{Index: tt.index})
			assert.Equal(t, tt.want, blockIDs(s.CurrentPage()))
		})
		t.Run(tt.name+" board", func(t *testing.T) {
			s := New()
			s.InsertTextBlock(InsertTextBlockOptions{})
			s.InsertTextBlock(InsertTextBlockOptions{})
			s.InsertBoardBlock(InsertBoardBlockOptions{Index: tt.index})
			assert.Equal(t, tt.want, blockIDs(s.CurrentPage()))
		})
	}
}

func TestBlockIDsAreSharedAcrossPagesAndKinds(t *testing.T) {
	s := New()
	s.InsertTextBlock(InsertTextBlockOptions{})
	s.AddPage()
	s.InsertBoardBlock(InsertBoardBlockOptions{})
	s.RemoveBlock(RemoveBlockOptions{BlockID: "block-2"})
	s.InsertTextBlock(InsertTextBlockOptions{PageID: "page-1"})

	assert.Equal(t, []string{"block-1", "block-3"}, blockIDs(s.Page("page-1")))
	assert.Empty(t, s.Page("page-2").Blocks)
}

func TestUpdateTextBlock(t *testing.T) {
	s := New()
	s.InsertTextBlock(InsertTextBlockOptions{Content: "old"})
	s.InsertBoardBlock(InsertBoardBlockOptions{})
	s.AddPage()

	s.UpdateTextBlock(UpdateTextBlockOptions{BlockID: "block-1", Content: "wrong page"})
	s.UpdateTextBlock(UpdateTextBlockOptions{PageID: "page-1", BlockID: "block-2", Content: "board"})
	s.UpdateTextBlock(UpdateTextBlockOptions{PageID: "page-1", BlockID: "block-1", Content: "new"})

	page := s.Page("page-1")
	assert.Equal(t, "new", page.Blocks[0].(*TextBlock).Content)
	_, isText := page.Blocks[1].(*TextBlock)
	assert.False(t, isText)
}

func TestUpdateTextStyle(t *testing.T) {
	s := New()
	s.InsertTextBlock(InsertTextBlockOptions{Content: "hello"})

	s.UpdateTextStyle(UpdateTextStyleOptions{BlockID: "block-1", Style: StylePatch{Size: Size(20)}})

	style := s.CurrentPage().Blocks[0].(*TextBlock).Style
	defaults := DefaultTextStyle()
	assert.Equal(t, 20.0, style.Size)
	assert.Equal(t, defaults.Family, style.Family)
	assert.Equal(t, defaults.Color, style.Color)

	s.UpdateTextStyle(UpdateTextStyleOptions{BlockID: "block-1", Style: StylePatch{Color: Color("#ff0000")}})
	style = s.CurrentPage().Blocks[0].(*TextBlock).Style
	assert.Equal(t, TextStyle{Family: defaults.Family, Size: 20, Color: "#ff0000"}, style)
}

func TestUpdateTextStyleKeepsZeroFields(t *testing.T) {
	s := New()
	s.InsertTextBlock(InsertTextBlockOptions{})

	s.UpdateTextStyle(UpdateTextStyleOptions{BlockID: "block-1", Style: StylePatch{Size: Size(0), Color: Color("")}})
	s.UpdateTextStyle(UpdateTextStyleOptions{BlockID: "block-1", Style: StylePatch{Family: Family("x")}})

	style := s.CurrentPage().Blocks[0].(*TextBlock).Style
	assert.Equal(t, TextStyle{Family: "x", Size: 0, Color: ""}, style)
}

func TestUpdateTextStyleIgnoresBoard(t *testing.T) {
	s := New()
	s.InsertBoardBlock(InsertBoardBlockOptions{})
	before := s.Snapshot()

	s.UpdateTextStyle(UpdateTextStyleOptions{BlockID: "block-1", Style: StylePatch{Size: Size(99)}})

	assert.Equal(t, before, s.Snapshot())
}
