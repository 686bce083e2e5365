package service

import (
	"context"

	"github.com/mmcdole/pixgrid/internal/domain"
)

// fetchAll walks pages first..first+count-1, stopping once TotalHits is
// covered or a page comes back empty
func fetchAll(
	ctx context.Context,
	fetch func(ctx context.Context, page int) (domain.Page, error),
	first, count int,
) ([]domain.Page, error) {
	if first < 1 {
		first = 1
	}
	if count < 1 {
		count = 1
	}

	var pages []domain.Page
	loaded := 0

	for n := first; n < first+count; n++ {
		select {
		case <-ctx.Done():
			return pages, ctx.Err()
		default:
		}

		p, err := fetch(ctx, n)
		if err != nil {
			return pages, err
		}
		pages = append(pages, p)

		perPage := p.Params.PerPage
		if perPage <= 0 {
			perPage = domain.DefaultPerPage
		}
		loaded = (n-1)*perPage + len(p.Hits)
		if len(p.Hits) == 0 || loaded >= p.TotalHits {
			break
		}
	}

	return pages, nil
}
