// Package layout holds the pure geometry behind the results grid.
package layout

// Breakpoint widths in terminal cells, smallest first
const (
	BreakpointMD = 64  // 2 columns
	BreakpointLG = 96  // 3 columns
	BreakpointXL = 128 // 4 columns
)

// MaxColumns is the widest grid layout
const MaxColumns = 4

// DefaultTolerance is how many rows from the end still count as the bottom
const DefaultTolerance = 2

// Columns returns the grid column count for a terminal width,
// capped at limit (limit <= 0 means MaxColumns)
func Columns(width, limit int) int {
	if limit <= 0 || limit > MaxColumns {
		limit = MaxColumns
	}

	cols := 1
	switch {
	case width >= BreakpointXL:
		cols = 4
	case width >= BreakpointLG:
		cols = 3
	case width >= BreakpointMD:
		cols = 2
	}
	return min(cols, limit)
}

// AtBottom reports whether a viewport scrolled to offset is within
// tolerance rows of the end of contentHeight rows of content.
// Content shorter than the viewport is always at the bottom.
func AtBottom(contentHeight, offset, viewportHeight, tolerance int) bool {
	if tolerance < 0 {
		tolerance = 0
	}
	return contentHeight-offset-viewportHeight <= tolerance
}

// RowCount returns how many grid rows n items occupy in cols columns
func RowCount(n, cols int) int {
	if n <= 0 {
		return 0
	}
	if cols < 1 {
		cols = 1
	}
	return (n + cols - 1) / cols
}
