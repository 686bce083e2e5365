// Package feed holds the paginated result state of the search screen.
//
// A Feed never performs I/O. Callers ask it for a Request, run the request
// elsewhere, and hand the outcome back together with that Request. Outcomes
// from superseded searches are dropped by comparing generations.
package feed

import (
	"github.com/mmcdole/pixgrid/internal/domain"
)

// Phase is the fetch state of the feed
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoadingFirst
	PhaseLoadingNext
)

// String returns a human-readable representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoadingFirst:
		return "loading-first"
	case PhaseLoadingNext:
		return "loading-next"
	default:
		return "unknown"
	}
}

// Request describes one page fetch issued by the feed
type Request struct {
	Generation uint64
	Params     domain.SearchParams
	Page       int
}

// Feed is the state of one search screen
type Feed struct {
	defaults domain.SearchParams

	params     domain.SearchParams
	results    []domain.Image
	cursor     int
	phase      Phase
	loaded     bool
	generation uint64
	merged     uint64 // generation whose first page is in results
	totalHits  int
	totalKnown bool
	lastErr    error
}

// New creates a feed. Every search derives its parameters from defaults.
func New(defaults domain.SearchParams) *Feed {
	return &Feed{
		defaults: defaults,
		params:   defaults,
		cursor:   1,
	}
}

// Query returns the committed search term
func (f *Feed) Query() string { return f.params.Query }

// Params returns the parameters of the current search
func (f *Feed) Params() domain.SearchParams { return f.params }

// Results returns the accumulated results in API order
func (f *Feed) Results() []domain.Image { return f.results }

// Len returns the number of accumulated results
func (f *Feed) Len() int { return len(f.results) }

// Cursor returns the last page merged into the results
func (f *Feed) Cursor() int { return f.cursor }

// Phase returns the fetch state
func (f *Feed) Phase() Phase { return f.phase }

// Generation returns the id of the current search
func (f *Feed) Generation() uint64 { return f.generation }

// TotalHits returns the number of results reachable for the current search
func (f *Feed) TotalHits() int { return f.totalHits }

// LastError returns the most recent fetch error of the current search
func (f *Feed) LastError() error { return f.lastErr }

// Loading is true until a first page has been merged. Later searches keep
// showing the previous results until their own first page arrives.
func (f *Feed) Loading() bool { return !f.loaded }

// Busy reports whether any fetch is in flight
func (f *Feed) Busy() bool { return f.phase != PhaseIdle }

// Current reports whether the results belong to the current search
func (f *Feed) Current() bool { return f.loaded && f.merged == f.generation }

// Exhausted reports whether the API has no further pages for this search
func (f *Feed) Exhausted() bool {
	return f.Current() && f.totalKnown && len(f.results) >= f.totalHits
}

func (f *Feed) setTotal(page domain.Page) {
	switch {
	case len(page.Hits) == 0:
		// An empty page means the API has nothing more
		f.totalHits, f.totalKnown = len(f.results), true
	case page.TotalHits > 0:
		f.totalHits, f.totalKnown = page.TotalHits, true
	}
}

// BeginSearch starts a new search for term and returns the first-page request.
// Any in-flight request of an older search becomes stale.
func (f *Feed) BeginSearch(term string) Request {
	f.generation++
	f.params = f.defaults.WithQuery(term)
	f.phase = PhaseLoadingFirst
	f.lastErr = nil
	return Request{Generation: f.generation, Params: f.params, Page: 1}
}

// CompleteFirstPage replaces the results with page. It returns false when
// the request is stale.
func (f *Feed) CompleteFirstPage(req Request, page domain.Page) bool {
	if req.Generation != f.generation || f.phase != PhaseLoadingFirst {
		return false
	}
	f.results = append([]domain.Image(nil), page.Hits...)
	f.cursor = 1
	f.totalHits, f.totalKnown = 0, false
	f.setTotal(page)
	f.loaded = true
	f.merged = f.generation
	f.phase = PhaseIdle
	return true
}

// BeginNextPage returns the request for cursor+1 of the current search.
// It refuses while any fetch is in flight, before the current search's first
// page has arrived, and once the search is exhausted.
func (f *Feed) BeginNextPage() (Request, bool) {
	if f.phase != PhaseIdle || !f.Current() || f.Exhausted() {
		return Request{}, false
	}
	f.phase = PhaseLoadingNext
	return Request{Generation: f.generation, Params: f.params, Page: f.cursor + 1}, true
}

// CompleteNextPage appends page to the results. It returns false when the
// request is stale.
func (f *Feed) CompleteNextPage(req Request, page domain.Page) bool {
	if req.Generation != f.generation || f.phase != PhaseLoadingNext || req.Page != f.cursor+1 {
		return false
	}
	f.results = append(f.results, page.Hits...)
	f.cursor = req.Page
	f.setTotal(page)
	f.phase = PhaseIdle
	return true
}

// Fail records a failed request. Results, cursor and loading state are kept.
// It returns false when the request is stale.
func (f *Feed) Fail(req Request, err error) bool {
	if req.Generation != f.generation || f.phase == PhaseIdle {
		return false
	}
	f.lastErr = err
	f.phase = PhaseIdle
	return true
}
