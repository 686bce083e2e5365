package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumns(t *testing.T) {
	tests := []struct {
		width, limit, want int
	}{
		{0, 4, 1},
		{40, 4, 1},
		{63, 4, 1},
		{64, 4, 2},
		{95, 4, 2},
		{96, 4, 3},
		{127, 4, 3},
		{128, 4, 4},
		{300, 4, 4},
		{300, 2, 2},
		{300, 0, 4},
		{300, 9, 4},
		{40, 3, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Columns(tt.width, tt.limit), "width=%d limit=%d", tt.width, tt.limit)
	}
}

func TestAtBottom(t *testing.T) {
	// Exact equality is the bottom
	assert.True(t, AtBottom(100, 60, 40, 0))
	// One row short with no tolerance is not
	assert.False(t, AtBottom(100, 59, 40, 0))
	// Within tolerance counts
	assert.True(t, AtBottom(100, 58, 40, 2))
	assert.False(t, AtBottom(100, 57, 40, 2))
	// Overscrolled or short content
	assert.True(t, AtBottom(100, 70, 40, 0))
	assert.True(t, AtBottom(10, 0, 40, 0))
	// Negative tolerance behaves like zero
	assert.False(t, AtBottom(100, 59, 40, -5))
}

func TestRowCount(t *testing.T) {
	assert.Equal(t, 0, RowCount(0, 4))
	assert.Equal(t, 1, RowCount(4, 4))
	assert.Equal(t, 2, RowCount(5, 4))
	assert.Equal(t, 24, RowCount(24, 1))
	assert.Equal(t, 3, RowCount(3, 0))
}
