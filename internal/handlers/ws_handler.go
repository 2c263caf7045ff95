package handlers

import (
	"log"
	"net/http"
	"time"

	"kitsustats-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	sendQueueSize = 16
	writeWait     = 5 * time.Second
	pongWait      = 60 * time.Second
	pingPeriod    = 30 * time.Second
)

// wsClient implements realtime.Client. Send only queues; writeLoop is the
// connection's single writer.
type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{conn: conn, send: make(chan []byte, sendQueueSize)}
}

// Send queues message, dropping it when the client is not keeping up.
func (c *wsClient) Send(message []byte) bool {
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

func (c *wsClient) Close() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// writeLoop drains the queue and pings until done closes or a write fails.
// A failed write closes the conn so the reader loop exits too.
func (c *wsClient) writeLoop(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.Close()
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait)); err != nil {
				c.Close()
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS is handled at the gin level
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WatchUserData handles GET /api/ws
// Optional query param: userId to receive events for one user only.
func (h *Handler) WatchUserData(c *gin.Context) {
	topic := c.DefaultQuery("userId", realtime.AllUsers)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("websocket upgrade error:", err)
		return
	}

	client := newWSClient(conn)
	done := make(chan struct{})
	go client.writeLoop(done)
	h.Hub.Register(topic, client)
	defer func() {
		h.Hub.Unregister(topic, client)
		close(done)
		client.Close()
	}()

	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
