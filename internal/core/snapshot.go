package core

// RoomState is a point-in-time view of a room, filtered for client
// consumption.
type RoomState struct {
	Revealed     bool
	Participants []ParticipantView
}

// ParticipantView is one participant as exposed to clients. Vote is
// nil while the room is hidden, regardless of what was stored.
type ParticipantView struct {
	ID       string
	Name     string
	Vote     *float64
	HasVoted bool
}
