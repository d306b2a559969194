package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wireConn is the slice of *websocket.Conn the hub needs. Tests substitute a
// scripted fake; production always wraps a gorilla connection.
type wireConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadLimit(limit int64)
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

type clientConn struct {
	rawConn wireConn
	mu      sync.Mutex
}

func (c *clientConn) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteMessage(websocket.TextMessage, data)
}

func (c *clientConn) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.write(data)
}

func (c *clientConn) ping() error {
	return c.rawConn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *clientConn) close() {
	_ = c.rawConn.Close()
}
