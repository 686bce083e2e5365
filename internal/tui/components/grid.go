package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/pixgrid/internal/domain"
	"github.com/mmcdole/pixgrid/internal/tui/layout"
	"github.com/mmcdole/pixgrid/internal/tui/styles"
)

// FilterBarLines is the height of the filter input when active
const FilterBarLines = 1

// Grid lays image cards out in responsive columns
type Grid struct {
	// Content
	images  []domain.Image
	loading bool

	// Layout
	maxColumns  int
	columns     int
	width       int
	height      int
	visibleRows int

	// Selection
	cursor    int // index into the (filtered) item list
	rowOffset int // first visible grid row
	focused   bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into images
}

// NewGrid creates a new grid component. maxColumns <= 0 allows the widest layout.
func NewGrid(maxColumns int) Grid {
	ti := textinput.New()
	ti.Placeholder = "filter by tag or author..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle
	ti.Cursor.SetMode(cursor.CursorStatic)

	return Grid{
		maxColumns:  maxColumns,
		columns:     1,
		visibleRows: 1,
		filterInput: ti,
		loading:     true,
	}
}

// SetImages replaces the grid content. reset starts a new result set
// (selection, scroll and filter cleared); otherwise the selection is kept
// and the active filter is re-applied.
func (g *Grid) SetImages(images []domain.Image, reset bool) {
	g.images = images
	if reset {
		g.cursor = 0
		g.rowOffset = 0
		g.clearFilter()
		return
	}
	if g.filterQuery != "" {
		g.filterIndices()
	}
	g.SetCursor(g.cursor)
}

// SetLoading toggles the skeleton placeholders
func (g *Grid) SetLoading(loading bool) {
	g.loading = loading
}

// Loading reports whether skeletons are shown
func (g Grid) Loading() bool {
	return g.loading
}

// SetSize updates the component dimensions
func (g *Grid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.columns = layout.Columns(width, g.maxColumns)
	g.recalcVisibleRows()
	g.ensureVisible()
}

// recalcVisibleRows calculates how many card rows fit, accounting for the filter bar
func (g *Grid) recalcVisibleRows() {
	h := g.height
	if g.filterActive {
		h -= FilterBarLines
	}
	g.visibleRows = max(1, h/CardHeight)
}

// SetFocused sets the focus state
func (g *Grid) SetFocused(focused bool) {
	g.focused = focused
}

// IsFocused returns the focus state
func (g Grid) IsFocused() bool {
	return g.focused
}

// Columns returns the current column count
func (g Grid) Columns() int {
	return g.columns
}

// Cursor returns the current cursor position
func (g Grid) Cursor() int {
	return g.cursor
}

// SetCursor sets the cursor position
func (g *Grid) SetCursor(pos int) {
	last := g.itemCount() - 1
	if last < 0 {
		g.cursor = 0
		g.rowOffset = 0
		return
	}
	g.cursor = min(max(pos, 0), last)
	g.ensureVisible()
}

// SelectedImage returns the image under the cursor
func (g Grid) SelectedImage() (domain.Image, bool) {
	if g.loading || g.cursor >= g.itemCount() {
		return domain.Image{}, false
	}
	return g.images[g.mapIndex(g.cursor)], true
}

// === Scrolling ===

// rowCount returns the number of grid rows for the current items
func (g Grid) rowCount() int {
	return layout.RowCount(g.itemCount(), g.columns)
}

// maxRowOffset is the offset that shows the last row at the bottom
func (g Grid) maxRowOffset() int {
	return max(0, g.rowCount()-g.visibleRows)
}

// ContentHeight is the full height of all rows in lines
func (g Grid) ContentHeight() int {
	return g.rowCount() * CardHeight
}

// ScrollOffset is the number of lines scrolled past
func (g Grid) ScrollOffset() int {
	return g.rowOffset * CardHeight
}

// ViewportHeight is the number of lines of cards on screen
func (g Grid) ViewportHeight() int {
	return g.visibleRows * CardHeight
}

// AtBottom reports whether the viewport is within tolerance lines of the end
func (g Grid) AtBottom(tolerance int) bool {
	return layout.AtBottom(g.ContentHeight(), g.ScrollOffset(), g.ViewportHeight(), tolerance)
}

// ScrollBy moves the viewport by rows and pulls the cursor into view
func (g *Grid) ScrollBy(rows int) {
	g.rowOffset = min(max(g.rowOffset+rows, 0), g.maxRowOffset())
	if g.itemCount() == 0 {
		return
	}
	row := g.cursor / g.columns
	switch {
	case row < g.rowOffset:
		g.cursor = g.rowOffset * g.columns
	case row >= g.rowOffset+g.visibleRows:
		g.cursor = min((g.rowOffset+g.visibleRows-1)*g.columns+g.cursor%g.columns, g.itemCount()-1)
	}
}

// ensureVisible ensures the cursor row is on screen
func (g *Grid) ensureVisible() {
	if g.columns < 1 {
		g.columns = 1
	}
	row := g.cursor / g.columns
	if row < g.rowOffset {
		g.rowOffset = row
	}
	if row >= g.rowOffset+g.visibleRows {
		g.rowOffset = row - g.visibleRows + 1
	}
	g.rowOffset = min(max(g.rowOffset, 0), g.maxRowOffset())
}

// === Filtering ===

// ToggleFilter activates the filter input
func (g *Grid) ToggleFilter() {
	g.filterActive = true
	g.filterInput.Focus()
	g.recalcVisibleRows()
}

// IsFiltering returns true if filter mode is active (showing filtered results)
func (g Grid) IsFiltering() bool {
	return g.filterActive
}

// IsFiltered returns true if a non-empty filter narrows the results
func (g Grid) IsFiltered() bool {
	return g.filterActive && g.filterQuery != ""
}

// IsFilterTyping returns true if filter is active AND input is focused (typing mode)
func (g Grid) IsFilterTyping() bool {
	return g.filterActive && g.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (g *Grid) ClearFilter() {
	g.clearFilter()
}

func (g *Grid) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.recalcVisibleRows()
	g.ensureVisible()
}

// applyFilter filters items based on the current query
func (g *Grid) applyFilter() {
	g.filterQuery = g.filterInput.Value()
	g.filterIndices()

	// Reset cursor to first match
	g.cursor = 0
	g.rowOffset = 0
}

func (g *Grid) filterIndices() {
	if g.filterQuery == "" {
		g.filteredIdx = nil
		return
	}

	texts := make([]string, len(g.images))
	for i, img := range g.images {
		texts[i] = strings.ToLower(img.FilterText())
	}

	matches := fuzzy.Find(strings.ToLower(g.filterQuery), texts)

	g.filteredIdx = make([]int, len(matches))
	for i, match := range matches {
		g.filteredIdx[i] = match.Index
	}
}

// itemCount returns the number of items after filtering
func (g Grid) itemCount() int {
	if g.filteredIdx != nil {
		return len(g.filteredIdx)
	}
	return len(g.images)
}

// mapIndex maps a cursor position to the actual index in the data
func (g Grid) mapIndex(i int) int {
	if g.filteredIdx != nil && i < len(g.filteredIdx) {
		return g.filteredIdx[i]
	}
	return i
}

// IsEmpty returns true if there are no items
func (g Grid) IsEmpty() bool {
	return g.itemCount() == 0
}

// Cells reports how many cards and skeletons the current view draws
func (g Grid) Cells() (cards, skeletons int) {
	if g.loading {
		return 0, SkeletonCount
	}
	start := g.rowOffset * g.columns
	return max(0, min(g.itemCount()-start, g.visibleRows*g.columns)), 0
}

// Init initializes the component
func (g Grid) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (g Grid) Update(msg tea.Msg) (Grid, tea.Cmd) {
	if !g.focused {
		return g, nil
	}

	// Handle filter input when active AND focused (typing mode)
	if g.filterActive && g.filterInput.Focused() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "enter":
				// Accept filter, blur input to allow navigation
				g.filterInput.Blur()
				return g, nil
			case "backspace":
				if g.filterInput.Value() == "" {
					g.clearFilter()
					return g, nil
				}
			}
		}

		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		g.applyFilter()
		return g, cmd
	}

	// Filter active but blurred: navigation mode over filtered results
	if g.filterActive {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "esc":
				g.clearFilter()
				return g, nil
			case "/":
				g.filterInput.Focus()
				return g, nil
			}
		}
	}

	count := g.itemCount()
	if count == 0 {
		return g, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if g.cursor+g.columns < count {
				g.cursor += g.columns
			} else if g.cursor/g.columns < (count-1)/g.columns {
				// Partial last row: land on its last card
				g.cursor = count - 1
			}
			g.ensureVisible()
		case "k", "up":
			if g.cursor-g.columns >= 0 {
				g.cursor -= g.columns
				g.ensureVisible()
			}
		case "l", "right":
			if g.cursor < count-1 {
				g.cursor++
				g.ensureVisible()
			}
		case "h", "left":
			if g.cursor > 0 {
				g.cursor--
				g.ensureVisible()
			}
		case "g", "home":
			g.cursor = 0
			g.rowOffset = 0
		case "G", "end":
			g.cursor = count - 1
			g.ensureVisible()
		case "ctrl+d":
			g.SetCursor(g.cursor + g.columns*max(1, g.visibleRows/2))
		case "ctrl+u":
			g.SetCursor(g.cursor - g.columns*max(1, g.visibleRows/2))
		case "pgdown":
			g.SetCursor(g.cursor + g.columns*g.visibleRows)
		case "pgup":
			g.SetCursor(g.cursor - g.columns*g.visibleRows)
		}
	}

	return g, nil
}

// View renders the component
func (g Grid) View() string {
	var content string
	switch {
	case g.loading:
		content = g.renderSkeletons()
	case g.IsEmpty():
		msg := "No images found"
		if g.IsFiltered() {
			msg = "No matches"
		}
		content = styles.DimStyle.Render(msg)
	default:
		content = g.renderCards()
	}

	if g.filterActive {
		content += "\n" + g.renderFilterBar()
	}
	return content
}

func (g Grid) cardWidth() int {
	return max(g.width/max(g.columns, 1), MinCardWidth)
}

// renderSkeletons lays out exactly SkeletonCount placeholders
func (g Grid) renderSkeletons() string {
	w := g.cardWidth()
	var rows []string
	var row []string
	for i := 0; i < SkeletonCount; i++ {
		row = append(row, RenderSkeleton(w))
		if len(row) == g.columns {
			rows = append(rows, joinRow(row))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, joinRow(row))
	}
	return strings.Join(rows, "\n")
}

// renderCards renders the visible rows of cards
func (g Grid) renderCards() string {
	w := g.cardWidth()
	count := g.itemCount()
	start := g.rowOffset * g.columns
	end := min(count, start+g.visibleRows*g.columns)

	var rows []string
	var row []string
	for i := start; i < end; i++ {
		row = append(row, RenderCard(g.images[g.mapIndex(i)], w, g.focused && i == g.cursor))
		if len(row) == g.columns {
			rows = append(rows, joinRow(row))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, joinRow(row))
	}
	return strings.Join(rows, "\n")
}

// renderFilterBar renders the filter input bar
func (g Grid) renderFilterBar() string {
	input := g.filterInput.View()

	countStr := ""
	if g.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", g.itemCount(), len(g.images)))
	}

	return input + countStr
}
