package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("hello", 0))
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "he...", Truncate("hello world", 5))
	assert.Equal(t, "hel", Truncate("hello", 3))
	assert.Equal(t, "♥♥...", Truncate("♥♥♥♥♥♥", 5))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab  ", Pad("ab", 4))
	assert.Equal(t, "abc", Pad("abcdef", 3))
}

func TestRepeat(t *testing.T) {
	assert.Equal(t, "░░░", Repeat(SkeletonChar, 3))
	assert.Equal(t, "", Repeat("x", -1))
}
