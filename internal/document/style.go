package document

type TextStyle struct {
	Family string
	Size   float64
	Color  string
}

// StylePatch names a subset of TextStyle fields to change. Nil fields are left alone.
type StylePatch struct {
	Family *string
	Size   *float64
	Color  *string
}

const defaultFamily = "Microsoft YaHei"

// Presets. Functions rather than variables so callers cannot mutate them.

func DefaultTextStyle() TextStyle {
	return TextStyle{Family: defaultFamily, Size: 18, Color: "#1f2937"}
}

func DefaultSideStyle() TextStyle {
	return TextStyle{Family: defaultFamily, Size: 16, Color: "#1f2937"}
}

func DefaultHeadingMainStyle() TextStyle {
	return TextStyle{Family: defaultFamily, Size: 36, Color: "#0f172a"}
}

func DefaultHeadingSubStyle() TextStyle {
	return TextStyle{Family: defaultFamily, Size: 24, Color: "#334155"}
}

func NewHeading() *Heading {
	return &Heading{
		Main: HeadingSegment{Enabled: true, Style: DefaultHeadingMainStyle()},
		Sub:  HeadingSegment{Enabled: false, Style: DefaultHeadingSubStyle()},
	}
}

// Apply returns s with the patch's non-nil fields written over it.
func (s TextStyle) Apply(patch StylePatch) TextStyle {
	if patch.Family != nil {
		s.Family = *patch.Family
	}
	if patch.Size != nil {
		s.Size = *patch.Size
	}
	if patch.Color != nil {
		s.Color = *patch.Color
	}
	return s
}

// MergeStyle layers three styles, rightmost winning per field:
// patch > current > defaults. A stored style is always complete, so a non-nil
// current replaces the defaults outright, zero fields included.
func MergeStyle(defaults TextStyle, current *TextStyle, patch StylePatch) TextStyle {
	merged := defaults
	if current != nil {
		merged = *current
	}
	return merged.Apply(patch)
}

// Helpers for building patches inline.

func Family(v string) *string { return &v }

func Size(v float64) *float64 { return &v }

func Color(v string) *string { return &v }
