package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chathubgo/internal/chatlog"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10 // must be < pongWait
	maxFrameSize = 4096
)

type WsServer struct {
	hub          *Hub
	store        *chatlog.Store
	historyLines int
	upgrader     websocket.Upgrader
}

func NewWsServer(hub *Hub, store *chatlog.Store, historyLines int) *WsServer {
	return &WsServer{
		hub:          hub,
		store:        store,
		historyLines: historyLines,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true }, // dev-only
		},
	}
}

// ---------------------------------------------------------------------------
//  Public: Gin entry-point
// ---------------------------------------------------------------------------

func (s *WsServer) Handle(ginCtx *gin.Context) {
	rawConn, err := s.upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		zap.L().Warn("ws.accept", zap.Error(err))
		return
	}
	rawConn.SetReadLimit(maxFrameSize)

	conn := &clientConn{rawConn: rawConn}
	go newSession(s, conn).run()
	go s.pinger(conn)
}

// History returns the room log's bounded tail as decoded message envelopes in
// append order. Blank lines never reach this point; malformed ones are
// skipped.
func (s *WsServer) History(room string) ([]Envelope, error) {
	lines, err := s.store.Tail(room, s.historyLines)
	if err != nil {
		return nil, err
	}

	messages := make([]Envelope, 0, len(lines))
	for _, line := range lines {
		var env Envelope
		if err := json.Unmarshal(line, &env); err != nil {
			zap.L().Debug("chatlog.skip_line", zap.String("room", room), zap.Error(err))
			continue
		}
		messages = append(messages, env)
	}
	return messages, nil
}

func (s *WsServer) pinger(conn *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for range ticker.C {
		if err := conn.ping(); err != nil {
			conn.close()
			return
		}
	}
}
