package document

import (
	"bytes"
	"encoding/json"
	"slices"
)

const DefaultBoardSize = 19

type InsertBoardBlockOptions struct {
	PageID   string
	Index    *int
	Variant  BoardVariant
	// Size is the board's line count; zero or negative means DefaultBoardSize.
	Size     int
	Viewport json.RawMessage
}

// SetBoardStateOptions replaces a board's moves and/or side to move. A nil
// Moves leaves the moves alone; a non-nil empty slice clears them.
type SetBoardStateOptions struct {
	PageID     string
	BlockID    string
	Moves      []json.RawMessage
	NextPlayer *Player
}

type BoardSideOptions struct {
	PageID  string
	BlockID string
	Side    Side
}

type BoardSideTextOptions struct {
	PageID  string
	BlockID string
	Side    Side
	Content string
}

type BoardSideStyleOptions struct {
	PageID  string
	BlockID string
	Side    Side
	Style   StylePatch
}

func (s *Store) InsertBoardBlock(opts InsertBoardBlockOptions) {
	page := s.resolvePage("insertBoardBlock", opts.PageID)
	if page == nil {
		return
	}
	variant := opts.Variant
	if variant == "" {
		variant = VariantFull
	}
	size := opts.Size
	if size <= 0 {
		size = DefaultBoardSize
	}
	block := &BoardBlock{
		ID:         s.nextBlockID(),
		Variant:    variant,
		Size:       size,
		Viewport:   cloneRaw(opts.Viewport),
		Moves:      []json.RawMessage{},
		NextPlayer: Black,
	}
	insertBlock(page, opts.Index, block)
	s.log.Debug("board block inserted", "page", page.ID, "block", block.ID, "variant", variant, "size", size)
}

func (s *Store) boardBlock(op, pageID, blockID string) *BoardBlock {
	page := s.resolvePage(op, pageID)
	if page == nil {
		return nil
	}
	block, ok := findBlock(page, blockID).(*BoardBlock)
	if !ok {
		s.ignored(op, "no board block", "page", page.ID, "block", blockID)
		return nil
	}
	return block
}

func (s *Store) SetBoardState(opts SetBoardStateOptions) {
	block := s.boardBlock("setBoardState", opts.PageID, opts.BlockID)
	if block == nil {
		return
	}
	if opts.Moves != nil {
		block.Moves = make([]json.RawMessage, len(opts.Moves))
		for i, move := range opts.Moves {
			block.Moves[i] = cloneRaw(move)
		}
	}
	if opts.NextPlayer != nil {
		if opts.NextPlayer.Valid() {
			block.NextPlayer = *opts.NextPlayer
		} else {
			s.ignored("setBoardState", "invalid next player", "block", block.ID, "player", int(*opts.NextPlayer))
		}
	}
}

// ToggleBoardSide switches a side panel on or off. Turning it on always
// starts from empty text and the side preset; earlier text is not kept.
func (s *Store) ToggleBoardSide(opts BoardSideOptions) {
	block := s.boardBlock("toggleBoardSide", opts.PageID, opts.BlockID)
	if block == nil {
		return
	}
	text, style := block.side(opts.Side)
	if *text == nil {
		empty := ""
		preset := DefaultSideStyle()
		*text, *style = &empty, &preset
		return
	}
	*text, *style = nil, nil
}

func (s *Store) UpdateBoardSideText(opts BoardSideTextOptions) {
	block := s.boardBlock("updateBoardSideText", opts.PageID, opts.BlockID)
	if block == nil {
		return
	}
	text, _ := block.side(opts.Side)
	if *text == nil {
		s.ignored("updateBoardSideText", "side panel off", "block", block.ID, "side", opts.Side.normalize())
		return
	}
	content := opts.Content
	*text = &content
}

func (s *Store) UpdateBoardSideStyle(opts BoardSideStyleOptions) {
	block := s.boardBlock("updateBoardSideStyle", opts.PageID, opts.BlockID)
	if block == nil {
		return
	}
	text, style := block.side(opts.Side)
	if *text == nil || *style == nil {
		s.ignored("updateBoardSideStyle", "side panel off", "block", block.ID, "side", opts.Side.normalize())
		return
	}
	merged := MergeStyle(DefaultSideStyle(), *style, opts.Style)
	*style = &merged
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return slices.Clone(raw)
}

// IsNullViewport reports whether a viewport payload carries nothing.
func IsNullViewport(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
