package ws

import (
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// fakeConn scripts inbound frames and records everything written to it.
type fakeConn struct {
	mu        sync.Mutex
	inbound   [][]byte
	writes    [][]byte
	failWrite bool
	closed    bool
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed || len(f.inbound) == 0 {
		return 0, nil, io.EOF
	}
	frame := f.inbound[0]
	f.inbound = f.inbound[1:]
	return websocket.TextMessage, frame, nil
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return errors.New("send failed")
	}
	f.writes = append(f.writes, append([]byte(nil), data...))
	return nil
}

func (f *fakeConn) WriteControl(int, []byte, time.Time) error { return nil }
func (f *fakeConn) SetReadLimit(int64)                        {}
func (f *fakeConn) SetReadDeadline(time.Time) error           { return nil }
func (f *fakeConn) SetWriteDeadline(time.Time) error          { return nil }
func (f *fakeConn) SetPongHandler(func(string) error)         {}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) sent(t *testing.T) []Envelope {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	envs := make([]Envelope, 0, len(f.writes))
	for _, data := range f.writes {
		var env Envelope
		require.NoError(t, json.Unmarshal(data, &env))
		envs = append(envs, env)
	}
	return envs
}

func (f *fakeConn) sentOfType(t *testing.T, frameType string) []Envelope {
	t.Helper()
	var out []Envelope
	for _, env := range f.sent(t) {
		if env.Type == frameType {
			out = append(out, env)
		}
	}
	return out
}

func newFakeClient(frames ...[]byte) (*clientConn, *fakeConn) {
	f := &fakeConn{inbound: frames}
	return &clientConn{rawConn: f}, f
}
