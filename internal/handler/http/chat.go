package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/chat"
	"github.com/arketra-labs/workforce-backend-go/internal/handler/http/response"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/jwt"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/ws"
	"github.com/go-chi/chi/v5"
)

type ChatHandler interface {
	WebSocket(w http.ResponseWriter, r *http.Request)
	Send(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Conversations(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	Presence(w http.ResponseWriter, r *http.Request)
}

type chatHandlerImpl struct {
	chatService chat.ChatService
	hub         *ws.Hub
}

func NewChatHandler(chatService chat.ChatService, hub *ws.Hub) ChatHandler {
	return &chatHandlerImpl{
		chatService: chatService,
		hub:         hub,
	}
}

// WebSocket implements ChatHandler. The connection itself is the presence
// signal; the hub refreshes the heartbeat on every pong.
func (h *chatHandlerImpl) WebSocket(w http.ResponseWriter, r *http.Request) {
	claims, err := jwt.ClaimsFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid or missing token")
		return
	}

	h.hub.Serve(w, r, claims.UserID)
}

// Send implements ChatHandler.
func (h *chatHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	var req chat.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.chatService.Send(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Message sent", result)
}

// History implements ChatHandler.
func (h *chatHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	filter := chat.HistoryFilter{
		PeerID: chi.URLParam(r, "peerID"),
		Limit:  queryInt(r, "limit"),
	}
	if before := r.URL.Query().Get("before"); before != "" {
		t, err := time.Parse(time.RFC3339, before)
		if err != nil {
			response.BadRequest(w, "Invalid 'before' timestamp, expected RFC3339", nil)
			return
		}
		filter.Before = &t
	}

	result, err := h.chatService.History(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Conversations implements ChatHandler.
func (h *chatHandlerImpl) Conversations(w http.ResponseWriter, r *http.Request) {
	result, err := h.chatService.Conversations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MarkRead implements ChatHandler.
func (h *chatHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.chatService.MarkRead(r.Context(), chi.URLParam(r, "peerID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Messages marked read", nil)
}

// UnreadCount implements ChatHandler.
func (h *chatHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.chatService.UnreadCount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int64{"unread_count": count})
}

// Presence implements ChatHandler.
func (h *chatHandlerImpl) Presence(w http.ResponseWriter, r *http.Request) {
	result, err := h.chatService.Presence(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
