package core

import (
	"github.com/valentinokrauss/poker-voting/internal/utils"
)

// Registry owns the mapping of room code to Room, plus the reverse
// index of which room each connection belongs to. It is a plain
// single-owner structure: the hub loop is the only goroutine allowed
// to call its methods, which keeps every operation atomic without
// locks and makes the registry testable without any network layer.
type Registry struct {
	rooms map[string]*Room
	conns map[string]string // connection ID -> room code
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		conns: make(map[string]string),
	}
}

// CreateRoom registers a fresh hidden room under a code not currently
// in use and returns it. The collision loop always terminates in
// practice given the 36^6 code space.
func (r *Registry) CreateRoom() *Room {
	var id string
	for {
		id = utils.NewRoomCode()
		if _, taken := r.rooms[id]; !taken {
			break
		}
	}
	room := NewRoom(id)
	r.rooms[id] = room
	return room
}

// Lookup returns the live room for a code, or nil. Codes match
// case-insensitively.
func (r *Registry) Lookup(roomID string) *Room {
	return r.rooms[utils.NormalizeRoomCode(roomID)]
}

// RoomFor returns the room the connection currently belongs to, or nil.
func (r *Registry) RoomFor(connID string) *Room {
	roomID, ok := r.conns[connID]
	if !ok {
		return nil
	}
	return r.rooms[roomID]
}

// JoinRoom adds the client to the room as a participant with a clean
// vote state. Returns ErrRoomNotFound when no live room has that code.
// A connection belongs to at most one room: joining a second room
// first removes it from the previous one, which is returned (still
// live) so the caller can broadcast the departure.
func (r *Registry) JoinRoom(roomID string, c *Client, name string) (joined, previous *Room, err error) {
	id := utils.NormalizeRoomCode(roomID)
	room, ok := r.rooms[id]
	if !ok {
		return nil, nil, ErrRoomNotFound
	}

	if prevID, inRoom := r.conns[c.ID]; inRoom && prevID != id {
		previous = r.RemoveConnection(c.ID)
	}

	room.AddMember(c, name)
	r.conns[c.ID] = id
	return room, previous, nil
}

// RemoveConnection drops the connection's participant entry, if any.
// The containing room is returned while it still has members so the
// caller can broadcast; a room left empty is destroyed and nil is
// returned. Safe to call repeatedly.
func (r *Registry) RemoveConnection(connID string) *Room {
	roomID, ok := r.conns[connID]
	if !ok {
		return nil
	}
	delete(r.conns, connID)

	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	room.RemoveMember(connID)
	if room.Empty() {
		delete(r.rooms, roomID)
		return nil
	}
	return room
}

// Len reports the number of live rooms.
func (r *Registry) Len() int {
	return len(r.rooms)
}
