package document

type InsertTextBlockOptions struct {
	PageID  string
	Index   *int
	Content string
}

type UpdateTextBlockOptions struct {
	PageID  string
	BlockID string
	Content string
}

type UpdateTextStyleOptions struct {
	PageID  string
	BlockID string
	Style   StylePatch
}

func (s *Store) InsertTextBlock(opts InsertTextBlockOptions) {
	page := s.resolvePage("insertTextBlock", opts.PageID)
	if page == nil {
		return
	}
	block := &TextBlock{
		ID:      s.nextBlockID(),
		Content: opts.Content,
		Style:   DefaultTextStyle(),
	}
	insertBlock(page, opts.Index, block)
	s.log.Debug("text block inserted", "page", page.ID, "block", block.ID)
}

func (s *Store) textBlock(op, pageID, blockID string) *TextBlock {
	page := s.resolvePage(op, pageID)
	if page == nil {
		return nil
	}
	block, ok := findBlock(page, blockID).(*TextBlock)
	if !ok {
		s.ignored(op, "no text block", "page", page.ID, "block", blockID)
		return nil
	}
	return block
}

func (s *Store) UpdateTextBlock(opts UpdateTextBlockOptions) {
	if block := s.textBlock("updateTextBlock", opts.PageID, opts.BlockID); block != nil {
		block.Content = opts.Content
	}
}

// UpdateTextStyle re-anchors the block's style to the body-text preset, then
// applies the stored style and the patch on top.
func (s *Store) UpdateTextStyle(opts UpdateTextStyleOptions) {
	if block := s.textBlock("updateTextStyle", opts.PageID, opts.BlockID); block != nil {
		block.Style = MergeStyle(DefaultTextStyle(), &block.Style, opts.Style)
	}
}
