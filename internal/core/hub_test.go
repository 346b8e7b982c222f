package core

import (
	"context"
	"testing"
	"time"
)

func TestHubCreateJoinVoteRevealReset(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hub := NewHub(testLogger())
	go hub.Run(ctx)

	alice := NewClient("a", "alice", 0)
	bob := NewClient("b", "bob", 0)
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	alice.Commands <- &Command{Kind: CommandCreateRoom}
	created := mustEvent(t, alice.Events, EventRoomCreated)
	roomID := created.Room
	if len(roomID) != 6 {
		t.Fatalf("unexpected room code %q", roomID)
	}

	alice.Commands <- &Command{Kind: CommandJoinRoom, Room: roomID, Name: "Alice"}
	joined := mustEvent(t, alice.Events, EventJoined)
	if joined.Room != roomID {
		t.Fatalf("joined wrong room: %q", joined.Room)
	}
	mustEvent(t, alice.Events, EventRoomState)

	bob.Commands <- &Command{Kind: CommandJoinRoom, Room: roomID, Name: "Bob"}
	mustEvent(t, bob.Events, EventJoined)
	mustEvent(t, bob.Events, EventRoomState)
	state := mustEvent(t, alice.Events, EventRoomState).State
	if len(state.Participants) != 2 {
		t.Fatalf("expected both participants, got %+v", state.Participants)
	}

	alice.Commands <- &Command{Kind: CommandVote, Room: roomID, Value: 5}
	state = mustEvent(t, bob.Events, EventRoomState).State
	if state.Revealed {
		t.Fatal("vote revealed the room")
	}
	if !state.Participants[0].HasVoted || state.Participants[0].Vote != nil {
		t.Fatalf("hidden state leaked alice's vote: %+v", state.Participants[0])
	}
	if state.Participants[1].HasVoted {
		t.Fatalf("bob marked as voted: %+v", state.Participants[1])
	}

	bob.Commands <- &Command{Kind: CommandRevealVotes, Room: roomID}
	state = mustEvent(t, bob.Events, EventRoomState).State
	if !state.Revealed {
		t.Fatal("room not revealed")
	}
	if state.Participants[0].Vote == nil || *state.Participants[0].Vote != 5 {
		t.Fatalf("revealed state missing alice's vote: %+v", state.Participants[0])
	}
	if state.Participants[1].Vote != nil {
		t.Fatalf("bob has a vote without voting: %+v", state.Participants[1])
	}

	bob.Commands <- &Command{Kind: CommandResetVotes, Room: roomID}
	state = mustEvent(t, bob.Events, EventRoomState).State
	if state.Revealed {
		t.Fatal("room still revealed after reset")
	}
	for _, p := range state.Participants {
		if p.HasVoted || p.Vote != nil {
			t.Fatalf("reset left vote state: %+v", p)
		}
	}
}

func TestHubJoinUnknownRoomReturnsError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hub := NewHub(testLogger())
	go hub.Run(ctx)

	alice := NewClient("a", "alice", 0)
	hub.RegisterClient(alice)

	alice.Commands <- &Command{Kind: CommandJoinRoom, Room: "ZZZZZZ", Name: "Alice"}

	ev := mustEvent(t, alice.Events, EventError)
	if ev.Error == nil || ev.Error.Code != ErrCodeRoomNotFound {
		t.Fatalf("expected room_not_found error, got %+v", ev)
	}

	exists, err := hub.RoomExists(ctx, "ZZZZZZ")
	if err != nil {
		t.Fatalf("exists lookup failed: %v", err)
	}
	if exists {
		t.Fatal("failed join created a room")
	}
}

func TestHubIgnoresVoteFromNonMember(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hub := NewHub(testLogger())
	go hub.Run(ctx)

	alice := NewClient("a", "alice", 0)
	carol := NewClient("c", "carol", 0)
	hub.RegisterClient(alice)
	hub.RegisterClient(carol)

	roomID, err := hub.CreateRoom(ctx)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	alice.Commands <- &Command{Kind: CommandJoinRoom, Room: roomID, Name: "Alice"}
	mustEvent(t, alice.Events, EventRoomState)

	carol.Commands <- &Command{Kind: CommandVote, Room: roomID, Value: 13}

	expectNoEvent(t, alice.Events, EventRoomState)
}

func TestHubIgnoresCommandsForUnknownRoom(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hub := NewHub(testLogger())
	go hub.Run(ctx)

	alice := NewClient("a", "alice", 0)
	hub.RegisterClient(alice)

	alice.Commands <- &Command{Kind: CommandRevealVotes, Room: "ZZZZZZ"}
	alice.Commands <- &Command{Kind: CommandResetVotes, Room: "ZZZZZZ"}
	alice.Commands <- &Command{Kind: CommandVote, Room: "ZZZZZZ", Value: 1}

	expectNoEvent(t, alice.Events, EventRoomState)
	expectNoEvent(t, alice.Events, EventError)
}

func TestHubDisconnectOfLastMemberDestroysRoom(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hub := NewHub(testLogger())
	go hub.Run(ctx)

	alice := NewClient("a", "alice", 0)
	bob := NewClient("b", "bob", 0)
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	roomID, err := hub.CreateRoom(ctx)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	alice.Commands <- &Command{Kind: CommandJoinRoom, Room: roomID, Name: "Alice"}
	mustEvent(t, alice.Events, EventRoomState)

	hub.UnregisterClient(alice)
	waitForRoomGone(t, hub, roomID)

	bob.Commands <- &Command{Kind: CommandJoinRoom, Room: roomID, Name: "Bob"}
	ev := mustEvent(t, bob.Events, EventError)
	if ev.Error == nil || ev.Error.Code != ErrCodeRoomNotFound {
		t.Fatalf("expected room_not_found after destruction, got %+v", ev)
	}
}

func TestHubAppliesBufferedJoinBeforeDisconnect(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hub := NewHub(testLogger())
	go hub.Run(ctx)

	// A join still sitting in the client's buffer at disconnect must be
	// applied before the removal, never after it. Otherwise the dead
	// connection is re-added as a participant and the room can never
	// empty out.
	for i := 0; i < 20; i++ {
		roomID, err := hub.CreateRoom(ctx)
		if err != nil {
			t.Fatalf("create room: %v", err)
		}

		alice := NewClient("a", "alice", 0)
		hub.RegisterClient(alice)
		alice.Commands <- &Command{Kind: CommandJoinRoom, Room: roomID, Name: "Alice"}
		hub.UnregisterClient(alice)

		waitForRoomGone(t, hub, roomID)
	}
}

func TestHubShutdownUnblocksCallers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(testLogger())
	go hub.Run(ctx)
	cancel()

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		hub.RegisterClient(NewClient("a", "alice", 0))
		_, _ = hub.CreateRoom(context.Background())
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("hub callers still blocked after shutdown")
	}
}

func TestHubReplyDropDoesNotStallTheLoop(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hub := NewHub(testLogger())
	go hub.Run(ctx)

	// Nobody drains this client's events; replies past the buffer are
	// dropped, but the hub loop must keep serving everyone else.
	stuck := NewClient("s", "stuck", 1)
	hub.RegisterClient(stuck)
	for i := 0; i < 3; i++ {
		stuck.Commands <- &Command{Kind: CommandCreateRoom}
	}

	if _, err := hub.CreateRoom(ctx); err != nil {
		t.Fatalf("hub stalled behind a slow consumer: %v", err)
	}
}

func TestHubDisconnectBroadcastsToRemainingMembers(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	hub := NewHub(testLogger())
	go hub.Run(ctx)

	alice := NewClient("a", "alice", 0)
	bob := NewClient("b", "bob", 0)
	hub.RegisterClient(alice)
	hub.RegisterClient(bob)

	roomID, err := hub.CreateRoom(ctx)
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	alice.Commands <- &Command{Kind: CommandJoinRoom, Room: roomID, Name: "Alice"}
	mustEvent(t, alice.Events, EventRoomState)
	bob.Commands <- &Command{Kind: CommandJoinRoom, Room: roomID, Name: "Bob"}
	mustEvent(t, bob.Events, EventRoomState)

	hub.UnregisterClient(alice)

	for {
		state := mustEvent(t, bob.Events, EventRoomState).State
		if len(state.Participants) == 1 {
			if state.Participants[0].Name != "Bob" {
				t.Fatalf("wrong surviving participant: %+v", state.Participants[0])
			}
			return
		}
	}
}
