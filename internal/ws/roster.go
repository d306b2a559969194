package ws

import (
	"encoding/json"

	"go.uber.org/zap"
)

// announceRoster pushes the room-to-usernames snapshot to every registered
// connection. Fired after each join, leave and room switch; with nobody
// connected there is nothing to send.
func (s *WsServer) announceRoster() {
	if s.hub.Empty() {
		return
	}
	payload, err := json.Marshal(stateUpdate(s.hub.Snapshot()))
	if err != nil {
		zap.L().Warn("ws.encode", zap.Error(err))
		return
	}
	s.hub.BroadcastAll(payload)
}

func (s *WsServer) broadcastEnvelope(room string, env Envelope, exclude *clientConn) {
	payload, err := json.Marshal(env)
	if err != nil {
		zap.L().Warn("ws.encode", zap.Error(err))
		return
	}
	s.hub.Broadcast(room, payload, exclude)
}
