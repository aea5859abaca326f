package chat

import (
	"context"
	"time"
)

type MessageRepository interface {
	Create(ctx context.Context, m Message) (Message, error)

	// ListBetween returns messages exchanged between two users,
	// newest page first, ordered oldest to newest within the page.
	ListBetween(ctx context.Context, userA, userB string, before *time.Time, limit int) ([]Message, error)

	// MarkRead marks every unread message from peerID to userID as read.
	MarkRead(ctx context.Context, userID, peerID string, at time.Time) (int64, error)

	CountUnread(ctx context.Context, userID string) (int64, error)

	ListConversations(ctx context.Context, userID string) ([]Conversation, error)
}
