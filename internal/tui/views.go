package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/pixgrid/internal/domain"
	"github.com/mmcdole/pixgrid/internal/feed"
	"github.com/mmcdole/pixgrid/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.Ready {
		return "Loading..."
	}
	if m.State == StateHelp {
		return m.renderHelp()
	}

	grid := lipgloss.NewStyle().
		Height(m.gridHeight()).
		MaxHeight(m.gridHeight()).
		Render(m.Grid.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderSearchBar(),
		m.renderSuggestions(),
		grid,
		m.renderFooter(),
	)
}

// renderSearchBar renders the query input in a bordered box
func (m Model) renderSearchBar() string {
	style := styles.SearchBarStyle
	if m.Focus != FocusSearch {
		style = style.BorderForeground(styles.DimGray)
	}
	return style.Width(m.Width - style.GetHorizontalBorderSize()).Render(m.Input.View())
}

// renderSuggestions renders related tags for the committed query
func (m Model) renderSuggestions() string {
	if len(m.Suggestions) == 0 {
		return " "
	}
	parts := []string{styles.DimStyle.Render("related:")}
	width := lipgloss.Width(parts[0])
	for _, s := range m.Suggestions {
		chip := styles.SuggestionStyle.Render(s)
		if width+1+lipgloss.Width(chip) > m.Width {
			break
		}
		parts = append(parts, chip)
		width += 1 + lipgloss.Width(chip)
	}
	return strings.Join(parts, " ")
}

// renderFooter renders status on the left, result count in the middle and help on the right
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	case m.Feed.Busy():
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render(m.loadingText())
	}

	var center string
	if !m.Feed.Loading() {
		center = styles.DimStyle.Render(m.resultSummary())
	}

	var right string
	if m.opts.ShowHelp {
		right = styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")
	}

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		// Not enough space - just left + right
		gap := max(0, m.Width-leftWidth-rightWidth)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

func (m Model) loadingText() string {
	if m.Feed.Phase() == feed.PhaseLoadingNext {
		return fmt.Sprintf("Loading page %d...", m.Feed.Cursor()+1)
	}
	if q := m.Feed.Query(); q != "" {
		return fmt.Sprintf("Searching %q...", q)
	}
	return "Loading popular images..."
}

func (m Model) resultSummary() string {
	n := m.Feed.Len()
	if m.Feed.TotalHits() > 0 {
		return fmt.Sprintf("%d of %d · page %d", n, m.Feed.TotalHits(), m.Feed.Cursor())
	}
	return fmt.Sprintf("%d images · page %d", n, m.Feed.Cursor())
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
SEARCH                          GRID
  type       Search as you type    h/j/k/l    Move selection
  tab/↓      Go to results         g/G        First/last image
  C-n        Next related tag      C-u/C-d    Half page
  esc        Clear query           PgUp/PgDn  Page
                                   wheel      Scroll
OTHER                              /          Filter loaded images
  C-r        Refresh               enter      Open image page
  ?          This help             o          Open full image
  q/C-c      Quit                  esc/tab    Back to search

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// RenderSpinner renders a spinner frame
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}

// statusForError turns a fetch error into a short status line
func statusForError(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthFailed):
		return "Pixabay rejected the API key"
	case errors.Is(err, domain.ErrRateLimited):
		return "Rate limited by Pixabay, try again shortly"
	case errors.Is(err, domain.ErrServerOffline):
		return "Pixabay is unreachable"
	case errors.Is(err, domain.ErrMissingAPIKey):
		return "No API key configured"
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"
	default:
		return "Search failed: " + err.Error()
	}
}
