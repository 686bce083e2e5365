package domain

import "context"

// ImageRepository: Network operations (implemented by image API clients)
type ImageRepository interface {
	// Search fetches one page of results. page is 1-based.
	Search(ctx context.Context, params SearchParams, page int) (Page, error)
}

// PageFetcher is what the UI depends on for loading pages
type PageFetcher interface {
	FetchPage(ctx context.Context, params SearchParams, page int) (Page, error)
}
