package roomhandler

import "chathubgo/internal/ws"

// RoomsResponse is the body of GET /rooms.
type RoomsResponse struct {
	Rooms map[string][]string `json:"rooms"`
}

// HistoryResponse is the body of GET /rooms/:room/history.
type HistoryResponse struct {
	Messages []ws.Envelope `json:"messages"`
}

// ErrorResponse is returned for failures.
type ErrorResponse struct {
	Error string `json:"error"`
}
