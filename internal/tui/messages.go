package tui

import (
	"github.com/mmcdole/pixgrid/internal/domain"
	"github.com/mmcdole/pixgrid/internal/feed"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// StartSearchMsg asks the model to begin a search for Query immediately
type StartSearchMsg struct {
	Query string
}

// SearchResultsMsg carries the first page of a search
type SearchResultsMsg struct {
	Request feed.Request
	Page    domain.Page
	Err     error
}

// PageLoadedMsg carries a follow-up page of the current search
type PageLoadedMsg struct {
	Request feed.Request
	Page    domain.Page
	Err     error
}

// ImageOpenedMsg signals that an image was handed to the browser
type ImageOpenedMsg struct {
	Image domain.Image
}

// TickMsg advances the spinner
type TickMsg struct{}

// ClearStatusMsg clears the status line if it is still showing status Seq
type ClearStatusMsg struct {
	Seq int
}
