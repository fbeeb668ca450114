package server

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// sendBuffer bounds the per-connection outbound queue. A connection that
// cannot keep up with snapshot broadcasts has frames dropped rather than
// blocking the table.
const sendBuffer = 32

// Connection wraps a single websocket client
type Connection struct {
	ws     *websocket.Conn
	send   chan *Message
	logger *log.Logger
	server *Server
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewConnection creates a connection around an upgraded websocket
func NewConnection(ws *websocket.Conn, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		ws:     ws,
		send:   make(chan *Message, sendBuffer),
		logger: logger.WithPrefix("conn").With("remote", ws.RemoteAddr().String()),
		server: server,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the read and write pumps
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close tears the connection down once
func (c *Connection) Close() {
	c.once.Do(func() {
		c.cancel()
		_ = c.ws.Close()
	})
}

// Send queues a message for delivery, dropping it if the client is too
// slow to drain its queue
func (c *Connection) Send(msg *Message) {
	select {
	case c.send <- msg:
	default:
		c.logger.Debug("dropping message for slow client", "type", msg.Type)
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.Close()
		c.server.dropConnection(c)
	}()

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("read error", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.logger.Debug("malformed message", "error", err)
			c.sendError("malformed_message", "could not parse message")
			continue
		}
		c.server.dispatch(c, &msg)
	}
}

func (c *Connection) writePump() {
	defer c.Close()

	for {
		select {
		case msg := <-c.send:
			if err := c.ws.WriteJSON(msg); err != nil {
				c.logger.Debug("write error", "error", err)
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) sendError(code, message string) {
	msg, err := NewMessage(MessageTypeError, ErrorData{Code: code, Message: message})
	if err != nil {
		return
	}
	c.Send(msg)
}
