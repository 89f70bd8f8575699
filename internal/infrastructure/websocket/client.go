package websocket

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client represents one active WebSocket connection.
type Client struct {
	UserID string
	Conn   *websocket.Conn

	send     chan []byte
	sendOnce sync.Once
}

func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		send:   make(chan []byte, 256),
	}
}

// Enqueue queues an outbound frame, dropping it when the client is too slow
// to drain its buffer.
func (c *Client) Enqueue(message []byte) {
	select {
	case c.send <- message:
	default:
		log.Printf("Dropping frame for slow client %s", c.UserID)
	}
}

func (c *Client) closeSend() {
	c.sendOnce.Do(func() {
		close(c.send)
	})
}

// WritePump drains the send channel onto the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("Write error for client %s: %v", c.UserID, err)
			return
		}
	}
}
