package handlers

import (
	"github.com/gin-gonic/gin"

	"bloodbank_backend/ws"
)

// WSHandler upgrades authenticated callers to a notification socket.
type WSHandler struct {
	*BaseHandler
	Manager *ws.WebSocketManager
}

func NewWSHandler(base *BaseHandler, manager *ws.WebSocketManager) *WSHandler {
	return &WSHandler{
		BaseHandler: base,
		Manager:     manager,
	}
}

func (h *WSHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ws", h.Auth, h.HandleWebSocket)
}

func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	ws.ServeWS(h.Manager, c.Writer, c.Request, caller.UserID)
}
