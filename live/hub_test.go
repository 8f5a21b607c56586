package live

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	h := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	go h.Run()
	return h
}

func register(h *Hub, room string) *Client {
	c := &Client{Hub: h, Send: make(chan []byte, 4), Room: room}
	h.Register <- c
	return c
}

func TestBroadcastReachesRoomMembersOnly(t *testing.T) {
	h := newTestHub()
	watcher := register(h, "session-1")
	other := register(h, "session-2")

	h.BroadcastToRoom("session-1", Event{Type: "SESSION_UPDATED", Payload: map[string]string{"k": "v"}})

	select {
	case raw := <-watcher.Send:
		var got Event
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, "SESSION_UPDATED", got.Type)
		assert.Equal(t, "session-1", got.RoomID)
	case <-time.After(time.Second):
		t.Fatal("room member did not receive the event")
	}

	select {
	case <-other.Send:
		t.Fatal("event leaked into another room")
	default:
	}
}

func TestBroadcastSkipsSlowClients(t *testing.T) {
	h := newTestHub()
	slow := register(h, "session-1")
	for i := 0; i < cap(slow.Send); i++ {
		slow.Send <- []byte("backlog")
	}

	done := make(chan struct{})
	go func() {
		h.BroadcastToRoom("session-1", Event{Type: "SESSION_UPDATED"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	h := newTestHub()
	c := register(h, "session-1")
	h.Unregister <- c

	select {
	case _, open := <-c.Send:
		assert.False(t, open, "send channel should be closed on unregister")
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}
