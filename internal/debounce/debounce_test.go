package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// push records a value and returns the message its timer would deliver
func push(d *Debouncer, raw string) SettledMsg {
	d.Push(raw)
	return SettledMsg{ID: d.id, Tag: d.tag}
}

func TestOnlyFinalValueOfBurstIsEmitted(t *testing.T) {
	d := New(800 * time.Millisecond)

	m1 := push(d, "c")
	m2 := push(d, "ca")
	m3 := push(d, "cats")

	_, ok := d.Settle(m1)
	assert.False(t, ok, "superseded edit must not emit")
	_, ok = d.Settle(m2)
	assert.False(t, ok, "superseded edit must not emit")

	term, ok := d.Settle(m3)
	require.True(t, ok)
	assert.Equal(t, "cats", term)
}

func TestWhitespaceVariantsEmitOnce(t *testing.T) {
	d := New(time.Millisecond)

	term, ok := d.Settle(push(d, "  cats "))
	require.True(t, ok)
	assert.Equal(t, "cats", term)

	for _, raw := range []string{"cats", "\tcats", "cats  "} {
		_, ok := d.Settle(push(d, raw))
		assert.False(t, ok, "%q repeats the previous term", raw)
	}

	term, ok = d.Settle(push(d, "dogs"))
	require.True(t, ok)
	assert.Equal(t, "dogs", term)
}

func TestEmptyAndWhitespaceNeverEmit(t *testing.T) {
	d := New(time.Millisecond)
	for _, raw := range []string{"", "   ", "\n\t"} {
		_, ok := d.Settle(push(d, raw))
		assert.False(t, ok, "%q should be filtered", raw)
	}
}

func TestClearingResetsDistinct(t *testing.T) {
	d := New(time.Millisecond)

	_, ok := d.Settle(push(d, "cats"))
	require.True(t, ok)
	_, ok = d.Settle(push(d, ""))
	require.False(t, ok)

	term, ok := d.Settle(push(d, "cats"))
	require.True(t, ok, "an empty value in between makes the term distinct again")
	assert.Equal(t, "cats", term)
}

func TestForeignMessagesIgnored(t *testing.T) {
	a := New(time.Millisecond)
	b := New(time.Millisecond)

	msg := push(a, "cats")
	assert.False(t, b.Owns(msg))
	_, ok := b.Settle(msg)
	assert.False(t, ok)
}

func TestPushCommandDeliversSettledMsg(t *testing.T) {
	d := New(5 * time.Millisecond)
	start := time.Now()
	cmd := d.Push("birds")
	require.NotNil(t, cmd)

	msg, ok := cmd().(SettledMsg)
	require.True(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)

	term, ok := d.Settle(msg)
	require.True(t, ok)
	assert.Equal(t, "birds", term)
	assert.Equal(t, 5*time.Millisecond, d.Quiet())
}
