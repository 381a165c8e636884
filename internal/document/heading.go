package document

type HeadingOptions struct {
	PageID string
	Target HeadingTarget
}

type HeadingContentOptions struct {
	PageID  string
	Target  HeadingTarget
	Content string
}

type HeadingStyleOptions struct {
	PageID string
	Target HeadingTarget
	Style  StylePatch
}

// headingSegment heals a missing heading before looking up the target, so
// even an unknown target leaves the page with a heading.
func (s *Store) headingSegment(op, pageID string, target HeadingTarget) *HeadingSegment {
	page := s.resolvePage(op, pageID)
	if page == nil {
		return nil
	}
	if page.Heading == nil {
		page.Heading = NewHeading()
	}
	if target == "" {
		target = HeadingMain
	}
	segment := page.Heading.segment(target)
	if segment == nil {
		s.ignored(op, "unknown heading target", "page", page.ID, "target", target)
	}
	return segment
}

func (s *Store) ToggleHeadingSegment(opts HeadingOptions) {
	if segment := s.headingSegment("toggleHeadingSegment", opts.PageID, opts.Target); segment != nil {
		segment.Enabled = !segment.Enabled
	}
}

func (s *Store) UpdateHeadingContent(opts HeadingContentOptions) {
	if segment := s.headingSegment("updateHeadingContent", opts.PageID, opts.Target); segment != nil {
		segment.Content = opts.Content
	}
}

// UpdateHeadingStyle patches the segment's current style directly. Unlike text
// and side panel styles it is not re-anchored to a preset.
func (s *Store) UpdateHeadingStyle(opts HeadingStyleOptions) {
	if segment := s.headingSegment("updateHeadingStyle", opts.PageID, opts.Target); segment != nil {
		segment.Style = segment.Style.Apply(opts.Style)
	}
}
