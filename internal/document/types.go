package document

import "encoding/json"

type BlockKind string

const (
	KindText  BlockKind = "text"
	KindBoard BlockKind = "board"
)

type BoardVariant string

const (
	VariantFull        BoardVariant = "full"
	VariantTop         BoardVariant = "top"
	VariantBottom      BoardVariant = "bottom"
	VariantLeft        BoardVariant = "left"
	VariantRight       BoardVariant = "right"
	VariantTopLeft     BoardVariant = "top-left"
	VariantTopRight    BoardVariant = "top-right"
	VariantBottomLeft  BoardVariant = "bottom-left"
	VariantBottomRight BoardVariant = "bottom-right"
)

// Player is the side to move on a board. Only Black and White are valid.
type Player int

const (
	Black Player = 1
	White Player = -1
)

func (p Player) Valid() bool {
	return p == Black || p == White
}

func (p Player) Opponent() Player {
	if p == White {
		return Black
	}
	return White
}

type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// normalize maps anything that is not SideRight to SideLeft.
func (s Side) normalize() Side {
	if s == SideRight {
		return SideRight
	}
	return SideLeft
}

type HeadingTarget string

const (
	HeadingMain HeadingTarget = "main"
	HeadingSub  HeadingTarget = "sub"
)

// Document is the root of the editing state: the ordered pages and the
// id of the page being edited.
type Document struct {
	Pages         []*Page
	CurrentPageID string
}

type Page struct {
	ID      string
	Title   string
	Heading *Heading
	Blocks  []Block
}

type Heading struct {
	Main HeadingSegment
	Sub  HeadingSegment
}

type HeadingSegment struct {
	Enabled bool
	Content string
	Style   TextStyle
}

func (h *Heading) segment(target HeadingTarget) *HeadingSegment {
	switch target {
	case HeadingMain:
		return &h.Main
	case HeadingSub:
		return &h.Sub
	default:
		return nil
	}
}

// Block is either a *TextBlock or a *BoardBlock. The set is closed.
type Block interface {
	BlockID() string
	Kind() BlockKind
	isBlock()
}

type TextBlock struct {
	ID      string
	Content string
	Style   TextStyle
}

func (b *TextBlock) BlockID() string { return b.ID }
func (b *TextBlock) Kind() BlockKind { return KindText }
func (*TextBlock) isBlock()          {}

// BoardBlock is an interactive board diagram. Viewport and moves are opaque
// payloads owned by the board widget; a nil Viewport means none was set.
// A side panel is on when its text is non-nil, and its style is then non-nil too.
type BoardBlock struct {
	ID         string
	Variant    BoardVariant
	Size       int
	Viewport   json.RawMessage
	Moves      []json.RawMessage
	NextPlayer Player
	LeftText   *string
	RightText  *string
	LeftStyle  *TextStyle
	RightStyle *TextStyle
}

func (b *BoardBlock) BlockID() string { return b.ID }
func (b *BoardBlock) Kind() BlockKind { return KindBoard }
func (*BoardBlock) isBlock()          {}

// SideEnabled reports whether the panel on side is on.
func (b *BoardBlock) SideEnabled(side Side) bool {
	text, _ := b.side(side)
	return *text != nil
}

// SideText returns the panel text, or "" with false when the panel is off.
func (b *BoardBlock) SideText(side Side) (string, bool) {
	text, _ := b.side(side)
	if *text == nil {
		return "", false
	}
	return **text, true
}

func (b *BoardBlock) side(side Side) (**string, **TextStyle) {
	if side.normalize() == SideRight {
		return &b.RightText, &b.RightStyle
	}
	return &b.LeftText, &b.LeftStyle
}
