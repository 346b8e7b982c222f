package core

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// waitForRoomGone polls until the room is destroyed. Disconnects run
// asynchronously behind the client's queued commands, so tests must
// wait for the removal to land rather than assume it already has.
func waitForRoomGone(t *testing.T, hub *Hub, roomID string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		exists, err := hub.RoomExists(ctx, roomID)
		if err != nil {
			t.Fatalf("room %s still live after disconnect: %v", roomID, err)
		}
		if !exists {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func expectNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received", kind)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}
