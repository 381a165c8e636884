package document

import (
	"fmt"
	"strings"

	"github.com/mohae/deepcopy"
)

// Snapshot returns a deep copy of the pages and the current page id.
func (s *Store) Snapshot() Document {
	return copyDocument(Document{Pages: s.pages, CurrentPageID: s.currentPageID})
}

// Restore replaces the document with a deep copy of doc. An empty doc is
// ignored. If doc's current id does not resolve, its first page becomes
// current. Id counters only move forward, so later ids stay unique.
func (s *Store) Restore(doc Document) {
	restored := copyDocument(doc)
	pages := restored.Pages[:0]
	for _, page := range restored.Pages {
		if page != nil {
			pages = append(pages, page)
		}
	}
	if len(pages) == 0 {
		s.ignored("restore", "no pages")
		return
	}

	s.pages = pages
	s.currentPageID = restored.CurrentPageID
	if s.PageIndex(s.currentPageID) < 0 {
		s.currentPageID = pages[0].ID
	}
	for _, page := range pages {
		s.pageCounter = max(s.pageCounter, idNumber(page.ID, "page-"))
		for _, block := range page.Blocks {
			if block != nil {
				s.blockCounter = max(s.blockCounter, idNumber(block.BlockID(), "block-"))
			}
		}
	}
	s.touch()
	s.log.Debug("document restored", "pages", len(pages), "current", s.currentPageID)
}

func copyDocument(doc Document) Document {
	return deepcopy.Copy(doc).(Document)
}

// idNumber extracts n from "<prefix><n>", or 0.
func idNumber(id, prefix string) int {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return 0
	}
	var n int
	if _, err := fmt.Sscanf(rest, "%d", &n); err != nil {
		return 0
	}
	return n
}
