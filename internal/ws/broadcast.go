package ws

import (
	"sync"

	"go.uber.org/zap"
)

// Broadcast delivers the payload to every member the room has at call time,
// minus exclude. The membership snapshot is taken before any I/O; sends run
// concurrently and all complete (or fail) before Broadcast returns. A failed
// send is logged and never aborts delivery to the remaining members. The hub's
// maps are not mutated here.
func (h *Hub) Broadcast(room string, payload []byte, exclude *clientConn) {
	h.mu.RLock()
	targets := make([]*clientConn, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		if c != exclude {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	deliver(targets, payload)
}

// BroadcastAll targets every registered connection regardless of room. Used
// for roster updates.
func (h *Hub) BroadcastAll(payload []byte) {
	deliver(h.allClients(), payload)
}

func deliver(targets []*clientConn, payload []byte) {
	var wg sync.WaitGroup
	for _, c := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.write(payload); err != nil {
				zap.L().Warn("ws.send", zap.Error(err))
			}
		}()
	}
	wg.Wait()
}
