package debounce

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDelay = time.Millisecond

func settled(t *testing.T, cmd tea.Cmd) SettledMsg[string] {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(SettledMsg[string])
	require.True(t, ok, "expected SettledMsg, got %T", msg)
	return msg
}

func TestOnlyLatestInputCommits(t *testing.T) {
	d := New(testDelay, "")

	var msgs []SettledMsg[string]
	for _, v := range []string{"c", "ca", "cat"} {
		msgs = append(msgs, settled(t, d.Input(v)))
	}
	assert.True(t, d.Pending())
	assert.Equal(t, "", d.Value())

	commits := 0
	for _, msg := range msgs {
		if _, changed := d.Settle(msg); changed {
			commits++
		}
	}
	assert.Equal(t, 1, commits)
	assert.Equal(t, "cat", d.Value())
	assert.False(t, d.Pending())
}

func TestSupersededTickNeverCommits(t *testing.T) {
	d := New(testDelay, "")

	first := settled(t, d.Input("dog"))
	second := settled(t, d.Input("cat"))

	v, changed := d.Settle(first)
	assert.False(t, changed)
	assert.Equal(t, "", v)

	v, changed = d.Settle(second)
	assert.True(t, changed)
	assert.Equal(t, "cat", v)
}

func TestRepeatedInputIsIgnored(t *testing.T) {
	d := New(testDelay, "")
	require.NotNil(t, d.Input("cat"))
	assert.Nil(t, d.Input("cat"))
}

func TestReturningToCommittedValueDoesNotChange(t *testing.T) {
	d := New(testDelay, "")
	_ = d.Input("c")
	msg := settled(t, d.Input(""))

	v, changed := d.Settle(msg)
	assert.False(t, changed)
	assert.Equal(t, "", v)
	assert.False(t, d.Pending())
}

func TestTickWaitsForDelay(t *testing.T) {
	delay := 20 * time.Millisecond
	d := New(delay, "")
	start := time.Now()
	msg := d.Input("cat")()
	assert.GreaterOrEqual(t, time.Since(start), delay)
	assert.Equal(t, "cat", msg.(SettledMsg[string]).Value)
}

func TestStopDiscardsPendingTick(t *testing.T) {
	d := New(testDelay, "")
	msg := settled(t, d.Input("cat"))

	d.Stop()
	_, changed := d.Settle(msg)
	assert.False(t, changed)
	assert.Equal(t, "", d.Value())
	assert.Nil(t, d.Input("dog"))
}

func TestMessagesFromOtherInstanceAreIgnored(t *testing.T) {
	a := New(testDelay, "")
	b := New(testDelay, "")
	require.NotEqual(t, a.ID(), b.ID())

	msg := settled(t, a.Input("cat"))
	_ = b.Input("cat")

	_, changed := b.Settle(msg)
	assert.False(t, changed)
}

func TestDefaultDelay(t *testing.T) {
	d := New(0, 0)
	assert.Equal(t, DefaultDelay, d.Delay())
}
