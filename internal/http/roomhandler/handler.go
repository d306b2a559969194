package roomhandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chathubgo/internal/chatlog"
	"chathubgo/internal/ws"
)

// RosterSource is the read-only view of live room membership.
type RosterSource interface {
	Snapshot() map[string][]string
}

// HistorySource yields a room log's bounded tail as decoded messages.
type HistorySource interface {
	History(room string) ([]ws.Envelope, error)
}

type Handler struct {
	roster  RosterSource
	history HistorySource
}

func New(roster RosterSource, history HistorySource) *Handler {
	return &Handler{roster: roster, history: history}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/rooms", h.list)
	r.GET("/rooms/:room/history", h.roomHistory)
}

// list returns the current roster: every live room and the usernames in it.
func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, RoomsResponse{Rooms: h.roster.Snapshot()})
}

// roomHistory returns the last logged messages of one room, oldest first.
func (h *Handler) roomHistory(c *gin.Context) {
	messages, err := h.history.History(c.Param("room"))
	if err != nil {
		if errors.Is(err, chatlog.ErrBadRoomName) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if messages == nil {
		messages = []ws.Envelope{}
	}
	c.JSON(http.StatusOK, HistoryResponse{Messages: messages})
}
