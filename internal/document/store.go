// Package document holds the in-memory model of a lecture: an ordered list of
// pages, each with a two-line heading and a sequence of text and board blocks.
//
// Store operations never fail. A call that names a missing page or block,
// targets the wrong kind of block, edits a side panel that is off, or tries to
// remove the last page leaves the document untouched and reports nothing.
// Callers that need to know whether something changed must read the state
// back. Ignored calls are logged at debug level on the store's logger.
package document

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/uuid"
)

// Store owns one editing session's document and its id counters.
// It is not safe for concurrent use; a single UI loop drives it.
type Store struct {
	pages         []*Page
	currentPageID string

	pageCounter  int
	blockCounter int

	// revision changes whenever the page list or the current id does.
	revision uint64
	view     pageView

	session uuid.UUID
	log     *slog.Logger
}

type Option func(*Store)

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// New returns a store seeded with a single empty page, page-1.
func New(opts ...Option) *Store {
	s := &Store{
		session: uuid.New(),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("session", s.session.String())

	first := s.newPage()
	s.pages = []*Page{first}
	s.currentPageID = first.ID
	return s
}

func (s *Store) Session() uuid.UUID {
	return s.session
}

func (s *Store) newPage() *Page {
	s.pageCounter++
	return &Page{
		ID:      fmt.Sprintf("page-%d", s.pageCounter),
		Title:   fmt.Sprintf("第 %d 页", s.pageCounter),
		Heading: NewHeading(),
		Blocks:  []Block{},
	}
}

func (s *Store) nextBlockID() string {
	s.blockCounter++
	return fmt.Sprintf("block-%d", s.blockCounter)
}

func (s *Store) touch() {
	s.revision++
}

func (s *Store) ignored(op, reason string, args ...any) {
	s.log.Debug("ignored "+op, append([]any{"reason", reason}, args...)...)
}

// Queries

// Document returns the live state. The page slice is a copy; the pages are not.
func (s *Store) Document() Document {
	return Document{Pages: s.Pages(), CurrentPageID: s.currentPageID}
}

func (s *Store) Pages() []*Page {
	return slices.Clone(s.pages)
}

func (s *Store) CurrentPageID() string {
	return s.currentPageID
}

// PageIndex returns the position of page id, or -1.
func (s *Store) PageIndex(id string) int {
	return slices.IndexFunc(s.pages, func(p *Page) bool { return p.ID == id })
}

func (s *Store) Page(id string) *Page {
	if i := s.PageIndex(id); i >= 0 {
		return s.pages[i]
	}
	return nil
}

// Pages

func (s *Store) AddPage() {
	page := s.newPage()
	s.pages = append(s.pages, page)
	s.currentPageID = page.ID
	s.touch()
	s.log.Debug("page added", "page", page.ID)
}

func (s *Store) SelectPage(id string) {
	if s.PageIndex(id) < 0 {
		s.ignored("selectPage", "page not found", "page", id)
		return
	}
	if s.currentPageID != id {
		s.currentPageID = id
		s.touch()
	}
}

// RemovePage deletes page id unless it is the only page. When the removed page
// was current, the page before it (or the new first page) becomes current.
func (s *Store) RemovePage(id string) {
	if len(s.pages) == 1 {
		s.ignored("removePage", "last page", "page", id)
		return
	}
	index := s.PageIndex(id)
	if index < 0 {
		s.ignored("removePage", "page not found", "page", id)
		return
	}

	s.pages = slices.Delete(s.pages, index, index+1)
	if s.currentPageID == id {
		s.currentPageID = s.pages[max(0, index-1)].ID
	}
	s.touch()
	s.log.Debug("page removed", "page", id, "current", s.currentPageID)
}

// resolvePage finds the page for an operation; "" means the current page.
func (s *Store) resolvePage(op, pageID string) *Page {
	if pageID == "" {
		pageID = s.currentPageID
	}
	page := s.Page(pageID)
	if page == nil {
		s.ignored(op, "page not found", "page", pageID)
	}
	return page
}

func findBlock(page *Page, blockID string) Block {
	for _, block := range page.Blocks {
		if block.BlockID() == blockID {
			return block
		}
	}
	return nil
}

// At builds an insertion index for the Insert* operations.
func At(index int) *int {
	return &index
}

// insertBlock puts block at index, appending when index is nil or out of range.
func insertBlock(page *Page, index *int, block Block) {
	if index == nil || *index < 0 || *index > len(page.Blocks) {
		page.Blocks = append(page.Blocks, block)
		return
	}
	page.Blocks = slices.Insert(page.Blocks, *index, block)
}

type RemoveBlockOptions struct {
	PageID  string
	BlockID string
}

func (s *Store) RemoveBlock(opts RemoveBlockOptions) {
	page := s.resolvePage("removeBlock", opts.PageID)
	if page == nil {
		return
	}
	index := slices.IndexFunc(page.Blocks, func(b Block) bool { return b.BlockID() == opts.BlockID })
	if index < 0 {
		s.ignored("removeBlock", "block not found", "page", page.ID, "block", opts.BlockID)
		return
	}
	page.Blocks = slices.Delete(page.Blocks, index, index+1)
}
