package ws

import "fmt"

// Frame type discriminators. Client and server share one envelope shape;
// Type decides which fields are meaningful.
const (
	typeLogin        = "login"
	typeMessage      = "message"
	typeAnnouncement = "announcement"
	typeHistory      = "history"
	typeStateUpdate  = "state_update"
	typeError        = "error"
)

// Envelope wraps every WS frame, inbound and outbound.
type Envelope struct {
	Type     string              `json:"type"`
	Username string              `json:"username,omitempty"`
	Room     string              `json:"room,omitempty"`
	Content  string              `json:"content,omitempty"`
	Messages []Envelope          `json:"messages,omitempty"`
	Rooms    map[string][]string `json:"rooms,omitempty"`
}

// ──────────────────────────── Outbound constructors ───────────────────────────

func chatMessage(username, content string) Envelope {
	return Envelope{Type: typeMessage, Username: username, Content: content}
}

func joinAnnouncement(username string) Envelope {
	return Envelope{Type: typeAnnouncement, Content: fmt.Sprintf("'%s' has joined the room!", username)}
}

func leaveAnnouncement(username string) Envelope {
	return Envelope{Type: typeAnnouncement, Content: fmt.Sprintf("'%s' has left the room.", username)}
}

func historyEnvelope(messages []Envelope) Envelope {
	return Envelope{Type: typeHistory, Messages: messages}
}

func stateUpdate(rooms map[string][]string) Envelope {
	return Envelope{Type: typeStateUpdate, Rooms: rooms}
}

func errorEnvelope(content string) Envelope {
	return Envelope{Type: typeError, Content: content}
}
