package core

import (
	"context"

	"github.com/rs/zerolog"
)

// Hub is the serialization boundary for all room state. Run is the
// only goroutine that touches the registry: client commands, REST
// requests and disconnects are funneled through its channels, so each
// command mutates state and broadcasts its snapshot as one atomic
// unit. No lock is ever held across a network send; broadcasts only
// enqueue onto member event channels.
type Hub struct {
	registry *Registry
	log      *zerolog.Logger
	register chan *Client
	commands chan issuedCommand
	requests chan syncRequest
	done     chan struct{}
}

// issuedCommand ties a command to the client that sent it. A nil cmd
// marks the client's disconnect: it travels through the same stream as
// the commands, so everything the client queued before disconnecting
// is applied before its removal.
type issuedCommand struct {
	client *Client
	cmd    *Command
}

type syncRequestKind int

const (
	requestCreateRoom syncRequestKind = iota
	requestRoomExists
)

type syncRequest struct {
	kind syncRequestKind
	room string
	resp chan syncResponse
}

type syncResponse struct {
	room  string
	found bool
}

// NewHub creates a hub with an empty registry.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		registry: NewRegistry(),
		log:      logger,
		register: make(chan *Client),
		commands: make(chan issuedCommand),
		requests: make(chan syncRequest),
		done:     make(chan struct{}),
	}
}

// RegisterClient attaches a client and starts pumping its commands
// into the hub's single command stream. Returns without registering
// when the hub has already shut down.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient handles a disconnect: the client is removed from
// its room (if any) and the remaining members are notified. The caller
// must not send on c.Commands afterwards. Commands the client queued
// before disconnecting are still applied first; the removal takes its
// turn behind them in the hub's command stream.
func (h *Hub) UnregisterClient(c *Client) {
	close(c.Commands)
}

// Run processes commands until the context is canceled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			go h.pump(ctx, c)
		case ic := <-h.commands:
			if ic.cmd == nil {
				h.handleDisconnect(ic.client)
				continue
			}
			h.handleCommand(ic.client, ic.cmd)
		case req := <-h.requests:
			h.handleRequest(req)
		}
	}
}

// CreateRoom creates a room on behalf of a caller outside any client
// connection, such as the REST surface. Blocks until the hub loop
// services the request.
func (h *Hub) CreateRoom(ctx context.Context) (string, error) {
	resp, err := h.request(ctx, syncRequest{kind: requestCreateRoom})
	if err != nil {
		return "", err
	}
	return resp.room, nil
}

// RoomExists reports whether a live room matches the code.
func (h *Hub) RoomExists(ctx context.Context, roomID string) (bool, error) {
	resp, err := h.request(ctx, syncRequest{kind: requestRoomExists, room: roomID})
	if err != nil {
		return false, err
	}
	return resp.found, nil
}

func (h *Hub) request(ctx context.Context, req syncRequest) (syncResponse, error) {
	req.resp = make(chan syncResponse, 1)
	select {
	case h.requests <- req:
	case <-h.done:
		return syncResponse{}, ErrHubClosed
	case <-ctx.Done():
		return syncResponse{}, ctx.Err()
	}
	select {
	case resp := <-req.resp:
		return resp, nil
	case <-h.done:
		return syncResponse{}, ErrHubClosed
	case <-ctx.Done():
		return syncResponse{}, ctx.Err()
	}
}

// pump forwards one client's commands into the hub command stream so
// Run can serialize them against everyone else's. When the command
// channel closes it emits the disconnect marker, after every queued
// command has been forwarded.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-c.Commands:
			if !ok {
				select {
				case h.commands <- issuedCommand{client: c}:
				case <-ctx.Done():
				}
				return
			}
			select {
			case h.commands <- issuedCommand{client: c, cmd: cmd}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (h *Hub) handleCommand(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandCreateRoom:
		room := h.registry.CreateRoom()
		h.log.Info().Str("room", room.ID).Str("conn", c.ID).Msg("room created")
		h.send(c, &Event{Kind: EventRoomCreated, Room: room.ID})

	case CommandJoinRoom:
		room, previous, err := h.registry.JoinRoom(cmd.Room, c, cmd.Name)
		if err != nil {
			h.send(c, &Event{Kind: EventError, Room: cmd.Room, Error: coreError(ErrCodeRoomNotFound, "room does not exist")})
			return
		}
		if cmd.Name != "" {
			c.Name = cmd.Name
		}
		h.log.Info().Str("room", room.ID).Str("conn", c.ID).Str("name", cmd.Name).Msg("participant joined")
		h.send(c, &Event{Kind: EventJoined, Room: room.ID})
		if previous != nil {
			h.broadcastState(previous)
		}
		h.broadcastState(room)

	case CommandVote:
		// Stale room codes and non-members are silently ignored: the
		// only legitimate cause is a race with room destruction, which
		// self-resolves on the client side.
		room := h.registry.Lookup(cmd.Room)
		if room == nil || !room.RecordVote(c.ID, cmd.Value) {
			return
		}
		h.broadcastState(room)

	case CommandRevealVotes:
		room := h.registry.Lookup(cmd.Room)
		if room == nil {
			return
		}
		room.Reveal()
		h.broadcastState(room)

	case CommandResetVotes:
		room := h.registry.Lookup(cmd.Room)
		if room == nil {
			return
		}
		room.Reset()
		h.broadcastState(room)

	case CommandLeaveRoom:
		h.handleDisconnect(c)
	}
}

func (h *Hub) handleRequest(req syncRequest) {
	switch req.kind {
	case requestCreateRoom:
		room := h.registry.CreateRoom()
		h.log.Info().Str("room", room.ID).Msg("room created")
		req.resp <- syncResponse{room: room.ID, found: true}
	case requestRoomExists:
		room := h.registry.Lookup(req.room)
		resp := syncResponse{found: room != nil}
		if room != nil {
			resp.room = room.ID
		}
		req.resp <- resp
	}
}

func (h *Hub) handleDisconnect(c *Client) {
	room := h.registry.RemoveConnection(c.ID)
	if room != nil {
		h.log.Debug().Str("room", room.ID).Str("conn", c.ID).Msg("participant left")
		h.broadcastState(room)
		return
	}
	h.log.Debug().Str("conn", c.ID).Msg("connection removed")
}

// broadcastState computes the room snapshot after a completed mutation
// and fans it out to every member.
func (h *Hub) broadcastState(room *Room) {
	state := room.Snapshot()
	room.Broadcast(&Event{Kind: EventRoomState, Room: room.ID, State: &state})
}

func (h *Hub) send(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		// Dropping a direct reply is surprising, but blocking here
		// would stall every room behind one dead connection.
		h.log.Warn().Str("conn", c.ID).Int("kind", int(event.Kind)).Msg("dropped reply for slow consumer")
	}
}
