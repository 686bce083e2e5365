package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/xid"

	"github.com/mmcdole/pixgrid/internal/domain"
)

// DefaultSuggestionLimit caps the tags shown under the search bar
const DefaultSuggestionLimit = 5

// SearchService fetches result pages, consulting the session cache first
type SearchService struct {
	repo   domain.ImageRepository
	cache  domain.PageCache
	logger *slog.Logger
}

// NewSearchService creates a new search service. cache may be nil.
func NewSearchService(repo domain.ImageRepository, cache domain.PageCache, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// FetchPage returns one page of results for params
func (s *SearchService) FetchPage(ctx context.Context, params domain.SearchParams, page int) (domain.Page, error) {
	if page < 1 {
		page = 1
	}
	key := params.CacheKey(page)
	logger := s.logger.With("request_id", xid.New().String(), "query", params.Query, "page", page)

	if s.cache != nil {
		if cached, ok := s.cache.GetPage(key); ok {
			logger.Debug("cache hit", "hits", len(cached.Hits))
			return cached, nil
		}
	}

	result, err := s.repo.Search(ctx, params, page)
	if err != nil {
		logger.Error("search failed", "error", err)
		return domain.Page{}, err
	}
	logger.Info("loaded page", "hits", len(result.Hits), "total_hits", result.TotalHits)

	if s.cache != nil {
		if err := s.cache.SavePage(key, result); err != nil {
			logger.Warn("failed to cache page", "error", err)
		}
	}
	return result, nil
}

// FetchPages loads up to count consecutive pages starting at first,
// stopping early once the result set is exhausted
func (s *SearchService) FetchPages(ctx context.Context, params domain.SearchParams, first, count int) ([]domain.Page, error) {
	return fetchAll(ctx, func(ctx context.Context, page int) (domain.Page, error) {
		return s.FetchPage(ctx, params, page)
	}, first, count)
}

// Refresh drops every cached page
func (s *SearchService) Refresh() {
	if s.cache != nil {
		s.cache.InvalidateAll()
		s.logger.Debug("cleared page cache")
	}
}

// SuggestTags ranks the tags of the given images against query.
// The query itself is never suggested.
func SuggestTags(query string, images []domain.Image, limit int) []string {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" || len(images) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	// Count tag frequency so common tags win ties
	freq := make(map[string]int)
	var tags []string
	for _, img := range images {
		for _, tag := range img.TagList() {
			tag = strings.ToLower(tag)
			if tag == query {
				continue
			}
			if freq[tag] == 0 {
				tags = append(tags, tag)
			}
			freq[tag]++
		}
	}

	matches := fuzzy.RankFindFold(query, tags)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		if fi, fj := freq[matches[i].Target], freq[matches[j].Target]; fi != fj {
			return fi > fj
		}
		return matches[i].Target < matches[j].Target
	})

	out := make([]string, 0, limit)
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Target)
	}
	return out
}
