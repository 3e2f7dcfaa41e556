package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicOnly(t *testing.T) {
	h := NewHub()
	a, cleanupA := h.Subscribe("a")
	defer cleanupA()
	b, cleanupB := h.Subscribe("b")
	defer cleanupB()

	h.Publish("a", "hours_changed", 7.5)

	select {
	case ev := <-a:
		assert.Equal(t, Event{Topic: "a", Event: "hours_changed", Data: 7.5}, ev)
	default:
		t.Fatal("expected event on topic a")
	}
	assert.Empty(t, b)
}

func TestHub_CloseThenCleanup(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("s1")
	require.Equal(t, 1, h.SubscriberCount("s1"))

	h.Close("s1")
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, h.TotalSubscribers())

	assert.NotPanics(t, cleanup)
}

func TestHub_FullSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	_, cleanup := h.Subscribe("s1")
	defer cleanup()

	for i := 0; i < 100; i++ {
		h.Publish("s1", "tick", i)
	}
}
