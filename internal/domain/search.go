package domain

import (
	"net/url"
	"strconv"
)

// Defaults for a logical search
const (
	DefaultPerPage    = 24
	DefaultSafeSearch = true
)

// SearchParams is the derived configuration of one logical search.
// It is built once per committed query and reused for every page.
type SearchParams struct {
	Query      string `json:"query" yaml:"query"`
	PerPage    int    `json:"per_page" yaml:"per_page"`
	SafeSearch bool   `json:"safesearch" yaml:"safesearch"`
	ImageType  string `json:"image_type,omitempty" yaml:"image_type,omitempty"` // "all", "photo", "illustration", "vector"; empty = API default
	Order      string `json:"order,omitempty" yaml:"order,omitempty"`           // "popular" or "latest"; empty = API default
}

// DefaultSearchParams returns the parameters used when nothing is configured
func DefaultSearchParams() SearchParams {
	return SearchParams{
		PerPage:    DefaultPerPage,
		SafeSearch: DefaultSafeSearch,
	}
}

// WithQuery returns a copy of p for the given term
func (p SearchParams) WithQuery(q string) SearchParams {
	p.Query = q
	return p
}

// Values encodes the parameters for the given page. The API key is not
// part of SearchParams; the client adds it.
func (p SearchParams) Values(page int) url.Values {
	v := url.Values{}
	v.Set("q", p.Query)
	perPage := p.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	v.Set("per_page", strconv.Itoa(perPage))
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	if p.SafeSearch {
		v.Set("safesearch", "true")
	}
	if p.ImageType != "" {
		v.Set("image_type", p.ImageType)
	}
	if p.Order != "" {
		v.Set("order", p.Order)
	}
	return v
}

// CacheKey identifies a page of results for this search
func (p SearchParams) CacheKey(page int) string {
	return p.Values(page).Encode()
}

// Page is one page of results for a search
type Page struct {
	Params    SearchParams `json:"params" yaml:"params"`
	Number    int          `json:"page" yaml:"page"`
	Hits      []Image      `json:"hits" yaml:"hits"`
	Total     int          `json:"total" yaml:"total"`           // Total matches reported by the API
	TotalHits int          `json:"total_hits" yaml:"total_hits"` // Matches reachable through the API (paging stops here)
}
