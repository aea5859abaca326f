package chat

import "context"

// ChatService persists direct messages and pushes them to connected
// recipients over the websocket hub.
type ChatService interface {
	Send(ctx context.Context, req SendMessageRequest) (MessageResponse, error)
	History(ctx context.Context, filter HistoryFilter) ([]MessageResponse, error)
	Conversations(ctx context.Context) ([]ConversationResponse, error)
	MarkRead(ctx context.Context, peerID string) error
	UnreadCount(ctx context.Context) (int64, error)
	Presence(ctx context.Context, userID string) (PresenceResponse, error)
	Heartbeat(ctx context.Context, userID string)
}
