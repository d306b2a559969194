package ws

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// session drives one connection through its lifetime: unauthenticated until a
// valid login, then relaying chat messages, then torn down exactly once when
// the transport reports the connection gone.
type session struct {
	srv    *WsServer
	conn   *clientConn
	record ClientRecord
	authed bool
}

func newSession(srv *WsServer, conn *clientConn) *session {
	return &session{srv: srv, conn: conn}
}

func (s *session) run() {
	defer s.teardown()

	_ = s.conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.rawConn.SetPongHandler(func(string) error {
		return s.conn.rawConn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := s.conn.rawConn.ReadMessage()
		if err != nil {
			return // client closed or errored
		}

		var env Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			zap.L().Debug("ws.drop_frame", zap.Error(err))
			continue
		}

		switch env.Type {
		case typeLogin:
			s.handleLogin(env)
		case typeMessage:
			s.handleMessage(env)
		default:
			// unknown types are ignored, the connection stays open
		}
	}
}

// handleLogin admits the connection to a room. A login on an already
// authenticated connection is a room switch: the old room sees a departure
// before the new room sees the join.
func (s *session) handleLogin(env Envelope) {
	prev, replaced, err := s.srv.hub.Join(s.conn, env.Username, env.Room)
	if err != nil {
		_ = s.conn.writeJSON(errorEnvelope(err.Error()))
		return
	}

	if replaced && prev.Room != env.Room {
		s.srv.broadcastEnvelope(prev.Room, leaveAnnouncement(prev.Username), nil)
	}

	s.record = ClientRecord{Username: env.Username, Room: env.Room}
	s.authed = true
	zap.L().Info("ws.login",
		zap.String("username", env.Username),
		zap.String("room", env.Room),
	)

	s.sendHistory(env.Room)
	s.srv.broadcastEnvelope(env.Room, joinAnnouncement(env.Username), s.conn)
	s.srv.announceRoster()
}

// handleMessage logs and fans out one chat message. The sender gets its own
// message echoed back. An append failure is logged but does not hold the
// message back.
func (s *session) handleMessage(env Envelope) {
	if !s.authed {
		return // policy: messages before login are ignored
	}

	payload, err := json.Marshal(chatMessage(s.record.Username, env.Content))
	if err != nil {
		zap.L().Warn("ws.encode", zap.Error(err))
		return
	}
	if err := s.srv.store.Append(s.record.Room, payload); err != nil {
		zap.L().Warn("chatlog.append", zap.String("room", s.record.Room), zap.Error(err))
	}
	s.srv.hub.Broadcast(s.record.Room, payload, nil)
}

func (s *session) sendHistory(room string) {
	messages, err := s.srv.History(room)
	if err != nil {
		zap.L().Warn("chatlog.tail", zap.String("room", room), zap.Error(err))
		return
	}
	if len(messages) == 0 {
		return
	}
	if err := s.conn.writeJSON(historyEnvelope(messages)); err != nil {
		zap.L().Warn("ws.send_history", zap.Error(err))
	}
}

// teardown runs once per connection no matter how the read loop ends. A
// connection that never authenticated only releases its handle.
func (s *session) teardown() {
	rec, ok := s.srv.hub.Leave(s.conn)
	s.conn.close()
	if !ok {
		return
	}

	zap.L().Info("ws.disconnect",
		zap.String("username", rec.Username),
		zap.String("room", rec.Room),
	)
	s.srv.broadcastEnvelope(rec.Room, leaveAnnouncement(rec.Username), nil)
	s.srv.announceRoster()
}
