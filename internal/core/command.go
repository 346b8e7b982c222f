package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandCreateRoom asks for a fresh room and its code.
	CommandCreateRoom CommandKind = iota
	// CommandJoinRoom adds the connection to a room as a participant.
	CommandJoinRoom
	// CommandVote submits a vote value in the target room.
	CommandVote
	// CommandRevealVotes makes all stored votes visible to the room.
	CommandRevealVotes
	// CommandResetVotes clears all votes and hides them again.
	CommandResetVotes
	// CommandLeaveRoom removes the connection from its room.
	CommandLeaveRoom
)

// Command represents an action requested by a client.
type Command struct {
	Kind  CommandKind
	Room  string
	Name  string  // display name, join only
	Value float64 // vote value, vote only
}
