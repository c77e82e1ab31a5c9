package v1

import (
	"net/http"

	"go-interview-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Cross-origin policy is enforced by the CORS middleware for the
		// REST surface; the socket carries no privileged state.
		return true
	},
}

type WSHandler struct{}

func NewWSHandler(router *gin.Engine) {
	handler := &WSHandler{}
	router.GET("/ws", handler.Echo)
}

// Echo upgrades the connection and echoes every text message back with a
// fixed prefix.
func (h *WSHandler) Echo(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	logger.Log.Info("websocket client connected", "remote_addr", conn.RemoteAddr().String())

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Log.Warn("websocket read failed", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		reply := append([]byte("This message from socket: "), msg...)
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			logger.Log.Warn("websocket write failed", "error", err)
			return
		}
	}
}
