package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hookCounter struct {
	attached int
	detached int
}

func (h *hookCounter) attach() func() {
	h.attached++
	return func() { h.detached++ }
}

func TestNotifier_AttachesOnceAndDetachesOnLast(t *testing.T) {
	hooks := &hookCounter{}
	n := New[string](hooks.attach)

	assert.False(t, n.Attached())

	unsubA := n.Subscribe(func(string) {})
	unsubB := n.Subscribe(func(string) {})

	assert.Equal(t, 1, hooks.attached, "hooks attach only on first subscription")
	assert.True(t, n.Attached())
	assert.Equal(t, 2, n.Len())

	unsubA()
	assert.Equal(t, 0, hooks.detached, "one listener remains, hooks stay attached")
	assert.True(t, n.Attached())

	unsubB()
	assert.Equal(t, 1, hooks.detached)
	assert.False(t, n.Attached())
	assert.Equal(t, 0, n.Len())
}

func TestNotifier_ReattachAfterDetach(t *testing.T) {
	hooks := &hookCounter{}
	n := New[int](hooks.attach)

	n.Subscribe(func(int) {})()
	unsub := n.Subscribe(func(int) {})

	assert.Equal(t, 2, hooks.attached)
	assert.Equal(t, 1, hooks.detached)

	unsub()
	assert.Equal(t, 2, hooks.detached)
}

func TestNotifier_UnsubscribeIsIdempotent(t *testing.T) {
	hooks := &hookCounter{}
	n := New[int](hooks.attach)

	unsubA := n.Subscribe(func(int) {})
	n.Subscribe(func(int) {})

	unsubA()
	unsubA()

	assert.Equal(t, 1, n.Len())
	assert.Equal(t, 0, hooks.detached)
}

func TestNotifier_NotifyInOrder(t *testing.T) {
	n := New[string](nil)

	var got []string
	n.Subscribe(func(v string) { got = append(got, "first:"+v) })
	unsub := n.Subscribe(func(v string) { got = append(got, "second:"+v) })
	n.Subscribe(func(v string) { got = append(got, "third:"+v) })

	n.Notify("0xabc")
	unsub()
	n.Notify("0xdef")

	require.Len(t, got, 5)
	assert.Equal(t, []string{
		"first:0xabc", "second:0xabc", "third:0xabc",
		"first:0xdef", "third:0xdef",
	}, got)
}

func TestNotifier_ListenerMayUnsubscribeItself(t *testing.T) {
	n := New[int](nil)

	calls := 0
	var unsub func()
	unsub = n.Subscribe(func(int) {
		calls++
		unsub()
	})

	n.Notify(1)
	n.Notify(2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, n.Len())
}

func TestNotifier_NilListenerIgnored(t *testing.T) {
	hooks := &hookCounter{}
	n := New[int](hooks.attach)

	unsub := n.Subscribe(nil)
	unsub()

	assert.Equal(t, 0, hooks.attached)
	assert.Equal(t, 0, n.Len())
}

func TestNotifier_CloseDetachesAndDropsListeners(t *testing.T) {
	hooks := &hookCounter{}
	n := New[int](hooks.attach)

	calls := 0
	unsub := n.Subscribe(func(int) { calls++ })
	n.Subscribe(func(int) { calls++ })

	n.Close()
	assert.Equal(t, 1, hooks.detached)
	assert.False(t, n.Attached())

	n.Notify(1)
	assert.Equal(t, 0, calls)

	unsub()
	assert.Equal(t, 1, hooks.detached, "stale unsubscribe after Close is a no-op")
}
