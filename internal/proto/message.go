package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	ProtocolVersion = 1

	InboundTypeCreateRoom = "createRoom"
	InboundTypeJoinRoom   = "joinRoom"
	InboundTypeVote       = "vote"
	InboundTypeReveal     = "revealVotes"
	InboundTypeReset      = "resetVotes"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventRoomCreated = "roomCreated"
	EventJoined      = "joined"
	EventRoomState   = "roomState"
)

// JoinData requests membership in a room.
type JoinData struct {
	RoomID string `json:"roomId"`
	Name   string `json:"name,omitempty"`
}

// VoteData submits a vote value.
type VoteData struct {
	RoomID string   `json:"roomId"`
	Value  *float64 `json:"value"`
}

// RoomData addresses a room with no extra payload (reveal, reset).
type RoomData struct {
	RoomID string `json:"roomId"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// RoomCreatedData announces the code of a freshly created room.
type RoomCreatedData struct {
	RoomID string `json:"roomId"`
}

// JoinedData confirms a successful join.
type JoinedData struct {
	Success bool   `json:"success"`
	RoomID  string `json:"roomId"`
}

// RoomStateData is the filtered room snapshot pushed to all members.
// Vote is null for every participant while the room is hidden.
type RoomStateData struct {
	Revealed     bool              `json:"revealed"`
	Participants []ParticipantData `json:"participants"`
}

// ParticipantData is one participant's visible state.
type ParticipantData struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Vote     *float64 `json:"vote"`
	HasVoted bool     `json:"hasVoted"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
