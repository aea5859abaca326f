package chat

import (
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/pkg/validator"
)

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Body        string `json:"body"`
}

func (r *SendMessageRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.RecipientID) {
		errs = append(errs, validator.ValidationError{
			Field:   "recipient_id",
			Message: "recipient_id must be a valid uuid",
		})
	}

	if validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body is required",
		})
	}
	if len(r.Body) > 4000 {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body cannot exceed 4000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	PeerID string
	Before *time.Time
	Limit  int
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(f.PeerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "peer_id",
			Message: "peer_id must be a valid uuid",
		})
	}

	if f.Limit < 1 || f.Limit > 200 {
		f.Limit = 50
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MessageResponse struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id"`
	RecipientID string     `json:"recipient_id"`
	Body        string     `json:"body"`
	SentAt      time.Time  `json:"sent_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

func ToResponse(m Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		SentAt:      m.SentAt,
		ReadAt:      m.ReadAt,
	}
}

type ConversationResponse struct {
	PeerID      string          `json:"peer_id"`
	PeerName    string          `json:"peer_name"`
	PeerOnline  bool            `json:"peer_online"`
	LastMessage MessageResponse `json:"last_message"`
	UnreadCount int64           `json:"unread_count"`
}

type PresenceResponse struct {
	UserID     string     `json:"user_id"`
	Online     bool       `json:"online"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}
