package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		m.Shutdown()
		return m, tea.Quit
	}

	// Handle state-specific keys
	if m.State == StateHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil
	}

	if m.Focus == FocusSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleGridKey(msg)
}

// handleSearchKey routes keys while the search box has focus
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Focus), msg.Type == tea.KeyDown, msg.Type == tea.KeyEnter:
		m.setFocus(FocusGrid)
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Input.Value() == "" {
			m.setFocus(FocusGrid)
			return m, nil
		}
		m.Input.SetValue("")
		return m, m.Query.Input("")

	case key.Matches(msg, Keys.Suggestion):
		return m, m.nextSuggestion()

	case key.Matches(msg, Keys.Refresh):
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, tea.Batch(cmd, m.Query.Input(strings.TrimSpace(m.Input.Value())))
}

// handleGridKey routes keys while the grid has focus
func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filter typing owns the keyboard
	if m.Grid.IsFilterTyping() {
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		m.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.Grid.IsFiltering() {
			m.Grid.ClearFilter()
			return m, m.checkBottom()
		}
		m.setFocus(FocusSearch)
		return m, nil

	case key.Matches(msg, Keys.Focus):
		m.setFocus(FocusSearch)
		return m, nil

	case key.Matches(msg, Keys.Filter):
		if m.Grid.IsFiltering() {
			// Re-focus the existing filter
			m.Grid, _ = m.Grid.Update(msg)
		} else {
			m.Grid.ToggleFilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Open, Keys.OpenImage):
		img, ok := m.Grid.SelectedImage()
		if !ok || m.ViewerSvc == nil {
			return m, nil
		}
		return m, OpenImageCmd(m.ViewerSvc, img, key.Matches(msg, Keys.OpenImage))

	case key.Matches(msg, Keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, Keys.navigationKeys()...):
		m.Grid, _ = m.Grid.Update(msg)
		return m, m.checkBottom()
	}

	return m, nil
}

// handleMouseMsg scrolls the grid with the mouse wheel
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.State != StateBrowsing || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.Grid.ScrollBy(-1)
	case tea.MouseButtonWheelDown:
		m.Grid.ScrollBy(1)
	default:
		return m, nil
	}
	return m, m.checkBottom()
}

// nextSuggestion replaces the query with the next suggested tag
func (m *Model) nextSuggestion() tea.Cmd {
	if len(m.Suggestions) == 0 {
		return nil
	}
	s := m.Suggestions[m.suggestionIdx%len(m.Suggestions)]
	m.suggestionIdx++
	m.Input.SetValue(s)
	m.Input.CursorEnd()
	return m.Query.Input(s)
}

// refresh drops cached pages and re-runs the committed query
func (m *Model) refresh() tea.Cmd {
	m.SearchSvc.Refresh()
	return tea.Batch(m.startSearch(m.Query.Value()), m.setStatus("Cache cleared", false))
}
