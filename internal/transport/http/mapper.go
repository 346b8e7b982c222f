package http

import (
	"encoding/json"

	"github.com/valentinokrauss/poker-voting/internal/core"
	"github.com/valentinokrauss/poker-voting/internal/proto"
)

// inboundToCommand maps a wire envelope to a core command. Malformed
// payloads come back as a protocol error for this connection only;
// they never reach the hub.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error) {
	switch inbound.Type {
	case proto.InboundTypeCreateRoom:
		return &core.Command{Kind: core.CommandCreateRoom}, nil

	case proto.InboundTypeJoinRoom:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "invalid join payload"}
		}
		if join.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}
		}
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Room: join.RoomID,
			Name: join.Name,
		}, nil

	case proto.InboundTypeVote:
		var vote proto.VoteData
		if err := json.Unmarshal(inbound.Data, &vote); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "vote value must be numeric"}
		}
		if vote.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}
		}
		if vote.Value == nil {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "value is required"}
		}
		return &core.Command{
			Kind:  core.CommandVote,
			Room:  vote.RoomID,
			Value: *vote.Value,
		}, nil

	case proto.InboundTypeReveal, proto.InboundTypeReset:
		var room proto.RoomData
		if err := json.Unmarshal(inbound.Data, &room); err != nil {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "invalid payload"}
		}
		if room.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}
		}
		kind := core.CommandRevealVotes
		if inbound.Type == proto.InboundTypeReset {
			kind = core.CommandResetVotes
		}
		return &core.Command{Kind: kind, Room: room.RoomID}, nil

	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomCreated:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRoomCreated,
			Data:  proto.RoomCreatedData{RoomID: event.Room},
		}
	case core.EventJoined:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventJoined,
			Data:  proto.JoinedData{Success: true, RoomID: event.Room},
		}
	case core.EventRoomState:
		participants := make([]proto.ParticipantData, 0, len(event.State.Participants))
		for _, p := range event.State.Participants {
			participants = append(participants, proto.ParticipantData{
				ID:       p.ID,
				Name:     p.Name,
				Vote:     p.Vote,
				HasVoted: p.HasVoted,
			})
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRoomState,
			Data: proto.RoomStateData{
				Revealed:     event.State.Revealed,
				Participants: participants,
			},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
