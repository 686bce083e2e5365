package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/pixgrid/internal/domain"
	"github.com/mmcdole/pixgrid/internal/feed"
	"github.com/mmcdole/pixgrid/internal/service"
)

// Command factories for async operations

// SearchCmd fetches the first page of a search
func SearchCmd(ctx context.Context, svc *service.SearchService, req feed.Request) tea.Cmd {
	return func() tea.Msg {
		page, err := svc.FetchPage(ctx, req.Params, req.Page)
		return SearchResultsMsg{Request: req, Page: page, Err: err}
	}
}

// NextPageCmd fetches the page after the current cursor
func NextPageCmd(ctx context.Context, svc *service.SearchService, req feed.Request) tea.Cmd {
	return func() tea.Msg {
		page, err := svc.FetchPage(ctx, req.Params, req.Page)
		return PageLoadedMsg{Request: req, Page: page, Err: err}
	}
}

// OpenImageCmd opens an image page (or the full image) in the browser
func OpenImageCmd(svc *service.ViewerService, img domain.Image, full bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if full {
			err = svc.OpenImage(img)
		} else {
			err = svc.OpenPage(img)
		}
		if err != nil {
			return ErrMsg{Err: err, Context: "Could not open image"}
		}
		return ImageOpenedMsg{Image: img}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
