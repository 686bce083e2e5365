package pixabay

import "github.com/mmcdole/pixgrid/internal/domain"

// MapImage converts an API hit to a domain image
func MapImage(h Hit) domain.Image {
	return domain.Image{
		ID:            h.ID,
		PageURL:       h.PageURL,
		Type:          h.Type,
		Tags:          h.Tags,
		PreviewURL:    h.PreviewURL,
		PreviewWidth:  h.PreviewWidth,
		PreviewHeight: h.PreviewHeight,
		WebformatURL:  h.WebformatURL,
		LargeImageURL: h.LargeImageURL,
		ImageWidth:    h.ImageWidth,
		ImageHeight:   h.ImageHeight,
		ImageSize:     h.ImageSize,
		Views:         h.Views,
		Downloads:     h.Downloads,
		Likes:         h.Likes,
		Comments:      h.Comments,
		UserID:        h.UserID,
		User:          h.User,
		UserImageURL:  h.UserImageURL,
	}
}

// MapImages converts hits preserving API order
func MapImages(hits []Hit) []domain.Image {
	images := make([]domain.Image, 0, len(hits))
	for _, h := range hits {
		images = append(images, MapImage(h))
	}
	return images
}

// MapPage builds a domain page from a decoded response
func MapPage(resp *SearchResponse, params domain.SearchParams, number int) domain.Page {
	return domain.Page{
		Params:    params,
		Number:    number,
		Hits:      MapImages(resp.Hits),
		Total:     resp.Total,
		TotalHits: resp.TotalHits,
	}
}
