package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/valentinokrauss/poker-voting/internal/core"
	"github.com/valentinokrauss/poker-voting/internal/utils"
)

// RoomHandlers provides HTTP handlers for room management endpoints.
// Creating a room over REST is deliberately independent from joining
// it: the join happens later over the WebSocket connection.
type RoomHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub *core.Hub, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		hub: hub,
		log: logger,
	}
}

// RoomResponse represents a room in API responses.
type RoomResponse struct {
	RoomID string `json:"roomId"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateRoom handles room creation.
// POST /api/rooms
func (h *RoomHandlers) CreateRoom(c *gin.Context) {
	roomID, err := h.hub.CreateRoom(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to create room")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, RoomResponse{RoomID: roomID})
}

// GetRoom reports whether a room code refers to a live room, so
// clients can validate a typed code before opening a connection.
// GET /api/rooms/:id
func (h *RoomHandlers) GetRoom(c *gin.Context) {
	roomID := utils.NormalizeRoomCode(c.Param("id"))

	exists, err := h.hub.RoomExists(c.Request.Context(), roomID)
	if err != nil {
		h.log.Error().Err(err).Str("room", roomID).Msg("failed to look up room")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room does not exist"})
		return
	}

	c.JSON(http.StatusOK, RoomResponse{RoomID: roomID})
}
