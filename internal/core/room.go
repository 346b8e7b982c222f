package core

// DefaultName is used for participants who join without a display name.
const DefaultName = "Anonymous"

// Room owns one voting session's state: the reveal flag and the
// participant set. Room carries no locks; the hub loop is the single
// goroutine that touches it.
type Room struct {
	ID           string
	revealed     bool
	participants map[string]*Participant
	order        []string // connection IDs in join order, for stable display
	members      map[string]*Client
}

// NewRoom constructs a hidden room with no participants.
func NewRoom(id string) *Room {
	return &Room{
		ID:           id,
		participants: make(map[string]*Participant),
		members:      make(map[string]*Client),
	}
}

// AddMember inserts or overwrites the participant entry for the
// client's connection. Rejoining resets the vote state but keeps the
// original display position.
func (r *Room) AddMember(c *Client, name string) {
	if name == "" {
		name = DefaultName
	}
	if _, exists := r.participants[c.ID]; !exists {
		r.order = append(r.order, c.ID)
	}
	r.participants[c.ID] = &Participant{ConnID: c.ID, Name: name}
	r.members[c.ID] = c
}

// RemoveMember deletes the connection's participant entry. Returns
// true if removed.
func (r *Room) RemoveMember(connID string) bool {
	if _, exists := r.participants[connID]; !exists {
		return false
	}
	delete(r.participants, connID)
	delete(r.members, connID)
	for i, id := range r.order {
		if id == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// RecordVote stores the participant's vote. Votes are accepted in both
// hidden and revealed state, so a late vote shows up live. Returns
// false when the connection is not a participant.
func (r *Room) RecordVote(connID string, value float64) bool {
	p, exists := r.participants[connID]
	if !exists {
		return false
	}
	v := value
	p.Vote = &v
	p.HasVoted = true
	return true
}

// Reveal makes all stored votes visible. Idempotent.
func (r *Room) Reveal() {
	r.revealed = true
}

// Reset hides votes again and clears every participant's vote.
// Idempotent.
func (r *Room) Reset() {
	r.revealed = false
	for _, p := range r.participants {
		p.Vote = nil
		p.HasVoted = false
	}
}

// Revealed reports whether votes are currently visible.
func (r *Room) Revealed() bool {
	return r.revealed
}

// Empty returns true if no participants remain.
func (r *Room) Empty() bool {
	return len(r.participants) == 0
}

// Snapshot produces the view sent to clients, in join order. While the
// room is hidden, vote values are withheld here at the serialization
// boundary; only the HasVoted flag leaks out.
func (r *Room) Snapshot() RoomState {
	state := RoomState{
		Revealed:     r.revealed,
		Participants: make([]ParticipantView, 0, len(r.order)),
	}
	for _, id := range r.order {
		p := r.participants[id]
		view := ParticipantView{
			ID:       p.ConnID,
			Name:     p.Name,
			HasVoted: p.HasVoted,
		}
		if r.revealed {
			view.Vote = p.Vote
		}
		state.Participants = append(state.Participants, view)
	}
	return state
}

// Broadcast sends an event to all members of the room.
func (r *Room) Broadcast(event *Event) {
	for _, client := range r.members {
		select {
		case client.Events <- event:
		default:
			// Drop if slow consumer.
		}
	}
}
