package tui

// gridHeight is the space left for cards after the chrome
func (m Model) gridHeight() int {
	return max(0, m.Height-ChromeHeight)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	// Search box border (2) + padding (2) + prompt
	m.Input.Width = max(1, m.Width-4-len([]rune(m.Input.Prompt)))
	m.Grid.SetSize(m.Width, m.gridHeight())
}
