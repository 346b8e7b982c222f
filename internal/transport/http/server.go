package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/valentinokrauss/poker-voting/internal/config"
	"github.com/valentinokrauss/poker-voting/internal/core"
)

// NewServer builds the HTTP server: REST endpoints for room management
// plus the WebSocket route clients use for everything else.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	router.GET("/healthz", healthHandler)

	rooms := NewRoomHandlers(hub, logger)
	api := router.Group("/api")
	api.POST("/rooms", rooms.CreateRoom)
	api.GET("/rooms/:id", rooms.GetRoom)

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger, cfg.EventBuffer)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
