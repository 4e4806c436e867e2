package services

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sortegrande/raffle-backend/utils/logger"
)

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

func (c *Client) enqueue(payload []byte) {
	if payload == nil {
		return
	}
	defer func() {
		// Send on a closed channel loses a race with Close; the client
		// is gone either way.
		recover()
	}()
	select {
	case c.send <- payload:
	default:
		logger.Warnf("ws: dropping message to slow client")
	}
}

// readPump drains incoming frames until the connection dies. Clients
// cannot mutate anything over the socket; reads only keep the connection
// alive and detect disconnects.
func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Info("ws: client disconnected")
			} else {
				logger.Warnf("ws: read error: %v", err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Warnf("ws: write error: %v", err)
			return
		}
	}
}
