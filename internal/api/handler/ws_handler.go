package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/qs3c/market_admin_server/internal/api/middleware"
	"github.com/qs3c/market_admin_server/internal/pkg/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS 已在中间件层处理
	},
}

type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Connect 建立 WebSocket 连接，接收积分变动实时推送
func (h *WSHandler) Connect(c *gin.Context) {
	userID := middleware.GetUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed for user %d: %v", userID, err)
		return
	}

	client := &ws.Client{UserID: userID, Conn: conn}
	h.hub.Register(client)

	defer func() {
		h.hub.Unregister(client)
		conn.Close()
	}()

	// 推送为主，读循环只用于感知断连
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
