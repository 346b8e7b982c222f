package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomCreated answers a create command with the new room code.
	EventRoomCreated EventKind = iota
	// EventJoined confirms a successful join to the issuing client.
	EventJoined
	// EventRoomState carries the filtered room snapshot to all members.
	EventRoomState
	// EventError notifies a client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind  EventKind
	Room  string
	State *RoomState // non-nil for EventRoomState
	Error *CoreError
}
