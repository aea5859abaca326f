package chat

import "time"

// Message is a direct message between two users.
type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Body        string
	SentAt      time.Time
	ReadAt      *time.Time

	SenderName    string
	RecipientName string
}

// PresenceThreshold is how recent a heartbeat must be for a user
// to count as online when they have no open socket.
const PresenceThreshold = 2 * time.Minute

type Conversation struct {
	PeerID      string
	PeerName    string
	LastMessage Message
	UnreadCount int64
}
