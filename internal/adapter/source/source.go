package source

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/pixgrid/internal/adapter"
	"github.com/mmcdole/pixgrid/internal/adapter/source/pixabay"
	"github.com/mmcdole/pixgrid/internal/domain"
)

// NewClient creates the image repository selected by the configuration.
// This factory keeps the backend choice out of the UI and services.
func NewClient(cfg *adapter.Config, logger *slog.Logger) (domain.ImageRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if cfg.API.Key == "" {
		return nil, domain.ErrMissingAPIKey
	}

	switch cfg.API.Source {
	case adapter.SourceTypePixabay, "":
		return pixabay.NewClient(
			cfg.API.BaseURL,
			cfg.API.Key,
			logger,
			pixabay.WithTimeout(cfg.API.Timeout),
			pixabay.WithUserAgent(cfg.API.UserAgent),
		), nil

	default:
		return nil, fmt.Errorf("unknown image source: %s", cfg.API.Source)
	}
}
