package feed

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/pixgrid/internal/domain"
)

func hits(start, n int) []domain.Image {
	out := make([]domain.Image, n)
	for i := range out {
		out[i] = domain.Image{ID: start + i, Tags: fmt.Sprintf("tag%d", start+i)}
	}
	return out
}

func page(req Request, start, n int) domain.Page {
	return domain.Page{Params: req.Params, Number: req.Page, Hits: hits(start, n), TotalHits: 500}
}

func loadedFeed(t *testing.T, term string) (*Feed, Request) {
	t.Helper()
	f := New(domain.DefaultSearchParams())
	req := f.BeginSearch(term)
	require.True(t, f.CompleteFirstPage(req, page(req, 0, 24)))
	return f, req
}

func TestInitialState(t *testing.T) {
	f := New(domain.DefaultSearchParams())
	assert.True(t, f.Loading())
	assert.Empty(t, f.Results())
	assert.Equal(t, 1, f.Cursor())
	assert.Equal(t, PhaseIdle, f.Phase())

	_, ok := f.BeginNextPage()
	assert.False(t, ok, "no paging before the first page arrives")
}

func TestEmptyQueryFirstPage(t *testing.T) {
	f := New(domain.DefaultSearchParams())
	req := f.BeginSearch("")

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, "", req.Params.Query)
	assert.Equal(t, 24, req.Params.PerPage)
	assert.True(t, req.Params.SafeSearch)
	assert.Equal(t, PhaseLoadingFirst, f.Phase())

	require.True(t, f.CompleteFirstPage(req, page(req, 0, 24)))
	assert.Len(t, f.Results(), 24)
	assert.Equal(t, 1, f.Cursor())
	assert.False(t, f.Loading())
	assert.Equal(t, PhaseIdle, f.Phase())
}

func TestNextPageAppendsInOrder(t *testing.T) {
	f, _ := loadedFeed(t, "cat")

	req, ok := f.BeginNextPage()
	require.True(t, ok)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, PhaseLoadingNext, f.Phase())

	require.True(t, f.CompleteNextPage(req, page(req, 24, 24)))
	assert.Len(t, f.Results(), 48)
	assert.Equal(t, 2, f.Cursor())
	for i, img := range f.Results() {
		assert.Equal(t, i, img.ID)
	}
}

func TestNextPageReusesSearchParams(t *testing.T) {
	f, first := loadedFeed(t, "cat")

	req, ok := f.BeginNextPage()
	require.True(t, ok)
	assert.Equal(t, first.Params, req.Params)
	assert.Equal(t, "true", req.Params.Values(req.Page).Get("safesearch"))
}

func TestDuplicateBottomTriggersAreRefused(t *testing.T) {
	f, _ := loadedFeed(t, "cat")

	_, ok := f.BeginNextPage()
	require.True(t, ok)
	_, ok = f.BeginNextPage()
	assert.False(t, ok)
}

func TestNewSearchResetsCursorAndReplaces(t *testing.T) {
	f, _ := loadedFeed(t, "cat")
	next, _ := f.BeginNextPage()
	require.True(t, f.CompleteNextPage(next, page(next, 24, 24)))
	require.Equal(t, 2, f.Cursor())

	req := f.BeginSearch("dog")
	assert.Len(t, f.Results(), 48, "old results stay until the new page arrives")
	assert.False(t, f.Loading())

	require.True(t, f.CompleteFirstPage(req, page(req, 1000, 10)))
	assert.Len(t, f.Results(), 10)
	assert.Equal(t, 1000, f.Results()[0].ID)
	assert.Equal(t, 1, f.Cursor())
	assert.Equal(t, "dog", f.Query())
}

func TestStaleFirstPageIsDropped(t *testing.T) {
	f := New(domain.DefaultSearchParams())
	slow := f.BeginSearch("ca")
	fast := f.BeginSearch("cat")

	require.True(t, f.CompleteFirstPage(fast, page(fast, 0, 24)))
	assert.False(t, f.CompleteFirstPage(slow, page(slow, 500, 3)))
	assert.Len(t, f.Results(), 24)
	assert.Equal(t, 0, f.Results()[0].ID)
}

func TestStaleNextPageIsDropped(t *testing.T) {
	f, _ := loadedFeed(t, "cat")
	next, ok := f.BeginNextPage()
	require.True(t, ok)

	fresh := f.BeginSearch("dog")
	assert.False(t, f.CompleteNextPage(next, page(next, 24, 24)))
	assert.False(t, f.Fail(next, errors.New("late")))
	assert.Equal(t, PhaseLoadingFirst, f.Phase())

	require.True(t, f.CompleteFirstPage(fresh, page(fresh, 0, 5)))
	assert.Len(t, f.Results(), 5)
}

func TestFailureLeavesStateUnchanged(t *testing.T) {
	f := New(domain.DefaultSearchParams())
	req := f.BeginSearch("")
	boom := errors.New("network down")

	require.True(t, f.Fail(req, boom))
	assert.True(t, f.Loading())
	assert.Empty(t, f.Results())
	assert.Equal(t, PhaseIdle, f.Phase())
	assert.ErrorIs(t, f.LastError(), boom)

	g, _ := loadedFeed(t, "cat")
	next, _ := g.BeginNextPage()
	require.True(t, g.Fail(next, boom))
	assert.Len(t, g.Results(), 24)
	assert.Equal(t, 1, g.Cursor())

	// Paging may be attempted again after a failure
	again, ok := g.BeginNextPage()
	require.True(t, ok)
	assert.Equal(t, 2, again.Page)
}

func TestNoPagingAfterFailedNewSearch(t *testing.T) {
	f, _ := loadedFeed(t, "cat")
	req := f.BeginSearch("dog")
	require.True(t, f.Fail(req, errors.New("offline")))

	assert.Len(t, f.Results(), 24)
	_, ok := f.BeginNextPage()
	assert.False(t, ok, "results belong to the previous search")
}

func TestExhaustedStopsPaging(t *testing.T) {
	f := New(domain.DefaultSearchParams())
	req := f.BeginSearch("rare")
	require.True(t, f.CompleteFirstPage(req, domain.Page{Hits: hits(0, 3), TotalHits: 3}))

	assert.True(t, f.Exhausted())
	_, ok := f.BeginNextPage()
	assert.False(t, ok)
}

func TestEmptyNextPageExhausts(t *testing.T) {
	f, _ := loadedFeed(t, "cat")
	next, _ := f.BeginNextPage()
	require.True(t, f.CompleteNextPage(next, domain.Page{TotalHits: 500}))

	assert.True(t, f.Exhausted())
	assert.Len(t, f.Results(), 24)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading-first", PhaseLoadingFirst.String())
	assert.Equal(t, "loading-next", PhaseLoadingNext.String())
	assert.Equal(t, "unknown", Phase(9).String())
}
