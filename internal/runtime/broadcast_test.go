package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBroadcastDeliversToAllSubscribers(t *testing.T) {
	b := NewBroadcaster[int](4)
	a := b.Subscribe()
	c := b.Subscribe()

	delivered, evicted := b.Broadcast(7)
	require.Equal(t, 2, delivered)
	require.Equal(t, 0, evicted)
	require.Equal(t, 7, <-a)
	require.Equal(t, 7, <-c)
}

func TestBroadcastEvictsSlowSubscriber(t *testing.T) {
	b := NewBroadcaster[int](1)
	slow := b.Subscribe()

	_, evicted := b.Broadcast(1)
	require.Equal(t, 0, evicted)

	// slow's buffer (cap 1) is now full and never drained.
	_, evicted = b.Broadcast(2)
	require.Equal(t, 1, evicted)
	require.Equal(t, 0, b.NumSubscribers())

	// evicted subscriber's channel is closed.
	_, ok := <-slow
	require.True(t, ok) // first buffered item still readable
	_, ok = <-slow
	require.False(t, ok)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster[int](1)
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	require.Equal(t, 0, b.NumSubscribers())
	_, ok := <-ch
	require.False(t, ok)
}

func TestUnsubscribeIdempotent(t *testing.T) {
	b := NewBroadcaster[int](1)
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	require.NotPanics(t, func() { b.Unsubscribe(ch) })
}
