package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/chat"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/user"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/jwt"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/observability"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/ws"
)

type ChatServiceImpl struct {
	chat.MessageRepository
	user.UserRepository
	hub *ws.Hub
}

func NewChatService(
	messageRepo chat.MessageRepository,
	userRepo user.UserRepository,
	hub *ws.Hub,
) chat.ChatService {
	return &ChatServiceImpl{
		MessageRepository: messageRepo,
		UserRepository:    userRepo,
		hub:               hub,
	}
}

// Send implements chat.ChatService. The message is persisted first; delivery
// to a connected recipient is best effort on top of that.
func (s *ChatServiceImpl) Send(ctx context.Context, req chat.SendMessageRequest) (chat.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return chat.MessageResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return chat.MessageResponse{}, err
	}
	if req.RecipientID == claims.UserID {
		return chat.MessageResponse{}, chat.ErrSelfMessage
	}

	if _, err := s.UserRepository.GetByID(ctx, req.RecipientID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return chat.MessageResponse{}, chat.ErrRecipientNotFound
		}
		return chat.MessageResponse{}, fmt.Errorf("failed to look up recipient: %w", err)
	}

	saved, err := s.MessageRepository.Create(ctx, chat.Message{
		SenderID:    claims.UserID,
		RecipientID: req.RecipientID,
		Body:        req.Body,
		SentAt:      time.Now().UTC(),
	})
	if err != nil {
		return chat.MessageResponse{}, fmt.Errorf("failed to persist message: %w", err)
	}

	observability.ChatMessages.Inc()

	response := chat.ToResponse(saved)
	s.hub.SendToUser(req.RecipientID, ws.Event{
		Event: "chat.message",
		Data:  response,
	})

	return response, nil
}

// History implements chat.ChatService.
func (s *ChatServiceImpl) History(ctx context.Context, filter chat.HistoryFilter) ([]chat.MessageResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	messages, err := s.MessageRepository.ListBetween(ctx, claims.UserID, filter.PeerID, filter.Before, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	responses := make([]chat.MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, chat.ToResponse(m))
	}
	return responses, nil
}

// Conversations implements chat.ChatService.
func (s *ChatServiceImpl) Conversations(ctx context.Context) ([]chat.ConversationResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	conversations, err := s.MessageRepository.ListConversations(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	responses := make([]chat.ConversationResponse, 0, len(conversations))
	for _, c := range conversations {
		responses = append(responses, chat.ConversationResponse{
			PeerID:      c.PeerID,
			PeerName:    c.PeerName,
			PeerOnline:  s.hub.IsConnected(c.PeerID),
			LastMessage: chat.ToResponse(c.LastMessage),
			UnreadCount: c.UnreadCount,
		})
	}
	return responses, nil
}

// MarkRead implements chat.ChatService.
func (s *ChatServiceImpl) MarkRead(ctx context.Context, peerID string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if _, err := s.MessageRepository.MarkRead(ctx, claims.UserID, peerID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// UnreadCount implements chat.ChatService.
func (s *ChatServiceImpl) UnreadCount(ctx context.Context) (int64, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return 0, err
	}

	return s.MessageRepository.CountUnread(ctx, claims.UserID)
}

// Presence implements chat.ChatService. A user is online when they hold an
// open socket, or when their last heartbeat is recent enough.
func (s *ChatServiceImpl) Presence(ctx context.Context, userID string) (chat.PresenceResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return chat.PresenceResponse{}, err
	}

	online := s.hub.IsConnected(userID)
	if !online && u.LastSeenAt != nil {
		online = time.Since(*u.LastSeenAt) < chat.PresenceThreshold
	}

	return chat.PresenceResponse{
		UserID:     userID,
		Online:     online,
		LastSeenAt: u.LastSeenAt,
	}, nil
}

// Heartbeat implements chat.ChatService. Called by the hub on pongs and
// inbound frames; failures only cost presence accuracy, so they are logged
// by the repository layer and otherwise ignored.
func (s *ChatServiceImpl) Heartbeat(ctx context.Context, userID string) {
	_ = s.UserRepository.TouchLastSeen(ctx, userID, time.Now().UTC())
}
