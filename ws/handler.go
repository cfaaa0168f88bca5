package ws

import (
	"net/http"

	"github.com/gorilla/websocket"

	"bloodbank_backend/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the socket is authenticated by bearer token, not cookies
	},
}

// ServeWS upgrades the request and attaches the connection to userID.
func ServeWS(manager *WebSocketManager, w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.CtxWarn(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(manager, userID, conn)
	if !manager.Register(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
