package ws

import (
	"errors"
	"sort"
	"sync"
)

// ErrIncompleteLogin rejects a login with a missing username or room. No hub
// state changes when it is returned.
var ErrIncompleteLogin = errors.New("username and room are required")

// ClientRecord is the registry's view of a logged-in connection.
type ClientRecord struct {
	Username string
	Room     string
}

// Hub owns the connection registry (conn -> ClientRecord) and the room
// directory (room -> conn set). Both live under one lock so that a connection
// is a member of room r exactly when its record says so, and a room entry
// exists exactly while it has members.
type Hub struct {
	mu      sync.RWMutex
	clients map[*clientConn]ClientRecord
	rooms   map[string]map[*clientConn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*clientConn]ClientRecord),
		rooms:   make(map[string]map[*clientConn]struct{}),
	}
}

// Join registers the connection under the given identity and adds it to the
// room, creating the room entry on demand. A connection that was already
// logged in is moved out of its previous room first; the previous record is
// returned so the caller can announce the departure.
func (h *Hub) Join(c *clientConn, username, room string) (prev ClientRecord, replaced bool, err error) {
	if username == "" || room == "" {
		return ClientRecord{}, false, ErrIncompleteLogin
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	prev, replaced = h.clients[c]
	if replaced {
		h.leaveRoomLocked(prev.Room, c)
	}

	h.clients[c] = ClientRecord{Username: username, Room: room}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*clientConn]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	return prev, replaced, nil
}

// Leave removes the connection from the registry and from its room, deleting
// the room entry when it empties. Removing an unknown connection is a no-op
// reporting false.
func (h *Hub) Leave(c *clientConn) (ClientRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec, ok := h.clients[c]
	if !ok {
		return ClientRecord{}, false
	}
	delete(h.clients, c)
	h.leaveRoomLocked(rec.Room, c)
	return rec, true
}

func (h *Hub) leaveRoomLocked(room string, c *clientConn) {
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Lookup reports the record of a logged-in connection.
func (h *Hub) Lookup(c *clientConn) (ClientRecord, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rec, ok := h.clients[c]
	return rec, ok
}

// Members returns a snapshot of the room's connections, empty for a room that
// does not exist.
func (h *Hub) Members(room string) []*clientConn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := make([]*clientConn, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	return members
}

// Snapshot resolves the room directory against the registry: room name to the
// usernames currently in it, sorted for stable output.
func (h *Hub) Snapshot() map[string][]string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	roster := make(map[string][]string, len(h.rooms))
	for room, members := range h.rooms {
		names := make([]string, 0, len(members))
		for c := range members {
			names = append(names, h.clients[c].Username)
		}
		sort.Strings(names)
		roster[room] = names
	}
	return roster
}

// Empty reports whether no connection is registered at all.
func (h *Hub) Empty() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients) == 0
}

func (h *Hub) allClients() []*clientConn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := make([]*clientConn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	return conns
}
