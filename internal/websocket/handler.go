package websocket

import (
	"net/http"

	"BlackJack/internal/middleware"
	"BlackJack/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws  (会话 middleware 已在 main.go 中加入)
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := middleware.SessionID(c)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.Log.Warn("websocket upgrade failed", "session", sid, "err", err)
			return
		}

		client := &Client{
			SessionID: sid,
			Conn:      conn,
			Send:      make(chan OutgoingMessage, 32),
			Hub:       hub,
		}

		select {
		case hub.register <- client:
		case <-hub.quit:
			// Hub 已关闭，不再接受新连接
			_ = conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
	}
}
