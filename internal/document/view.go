package document

type pageView struct {
	valid    bool
	id       string
	revision uint64
	page     *Page
}

// CurrentPage returns the page whose id is the current page id. The result is
// cached until the page list or the current id changes.
func (s *Store) CurrentPage() *Page {
	if s.view.valid && s.view.id == s.currentPageID && s.view.revision == s.revision {
		return s.view.page
	}
	s.view = pageView{
		valid:    true,
		id:       s.currentPageID,
		revision: s.revision,
		page:     s.Page(s.currentPageID),
	}
	return s.view.page
}
