package service

import (
	"errors"
	"log/slog"

	"github.com/mmcdole/pixgrid/internal/domain"
)

// launcher abstracts URL opening (consumer-defined interface)
type launcher interface {
	Launch(url string) error
}

// ViewerService opens images outside the terminal
type ViewerService struct {
	launcher launcher
	logger   *slog.Logger
}

// NewViewerService creates a new viewer service
func NewViewerService(launcher launcher, logger *slog.Logger) *ViewerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewerService{
		launcher: launcher,
		logger:   logger,
	}
}

// OpenPage opens the image's page on the provider's site
func (s *ViewerService) OpenPage(img domain.Image) error {
	return s.open(img, img.PageURL)
}

// OpenImage opens the largest available rendition of the image
func (s *ViewerService) OpenImage(img domain.Image) error {
	url := img.LargeImageURL
	if url == "" {
		url = img.DisplayURL()
	}
	return s.open(img, url)
}

func (s *ViewerService) open(img domain.Image, url string) error {
	if url == "" {
		return errors.New("image has no url")
	}
	s.logger.Info("opening image", "id", img.ID, "url", url)
	if err := s.launcher.Launch(url); err != nil {
		s.logger.Error("failed to open image", "error", err, "id", img.ID)
		return err
	}
	return nil
}
