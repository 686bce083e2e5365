package domain

// PageCache stores fetched pages for the lifetime of a session.
// Keys come from SearchParams.CacheKey.
type PageCache interface {
	GetPage(key string) (Page, bool)
	SavePage(key string, page Page) error
	InvalidateAll()
	Close() error
}
