package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/chat"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/database"
)

type messageRepository struct {
	db *database.DB
}

func NewMessageRepository(db *database.DB) chat.MessageRepository {
	return &messageRepository{db: db}
}

// Create implements chat.MessageRepository.
func (r *messageRepository) Create(ctx context.Context, m chat.Message) (chat.Message, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO messages (sender_id, recipient_id, body, sent_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := q.QueryRow(ctx, query, m.SenderID, m.RecipientID, m.Body, m.SentAt).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return chat.Message{}, chat.ErrRecipientNotFound
		}
		return chat.Message{}, fmt.Errorf("failed to create message: %w", err)
	}

	return m, nil
}

// ListBetween implements chat.MessageRepository. The page is selected newest
// first, then reversed so callers receive chronological order.
func (r *messageRepository) ListBetween(ctx context.Context, userA, userB string, before *time.Time, limit int) ([]chat.Message, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, sender_id, recipient_id, body, sent_at, read_at
		FROM messages
		WHERE ((sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1))
		  AND ($3::timestamptz IS NULL OR sent_at < $3)
		ORDER BY sent_at DESC
		LIMIT $4
	`

	rows, err := q.Query(ctx, query, userA, userB, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.SentAt, &m.ReadAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	// Oldest first within the page.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// MarkRead implements chat.MessageRepository.
func (r *messageRepository) MarkRead(ctx context.Context, userID, peerID string, at time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE messages
		SET read_at = $3
		WHERE recipient_id = $1 AND sender_id = $2 AND read_at IS NULL
	`

	tag, err := q.Exec(ctx, query, userID, peerID, at)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages read: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CountUnread implements chat.MessageRepository.
func (r *messageRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND read_at IS NULL`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}

	return count, nil
}

// ListConversations implements chat.MessageRepository. One row per peer,
// carrying the latest message and the unread count from that peer.
func (r *messageRepository) ListConversations(ctx context.Context, userID string) ([]chat.Conversation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT ON (peer_id)
			peer_id,
			COALESCE(e.full_name, u.email) AS peer_name,
			m.id, m.sender_id, m.recipient_id, m.body, m.sent_at, m.read_at,
			(SELECT COUNT(*) FROM messages
			 WHERE recipient_id = $1 AND sender_id = peer_id AND read_at IS NULL) AS unread_count
		FROM (
			SELECT *,
				CASE WHEN sender_id = $1 THEN recipient_id ELSE sender_id END AS peer_id
			FROM messages
			WHERE sender_id = $1 OR recipient_id = $1
		) m
		JOIN users u ON u.id = m.peer_id
		LEFT JOIN employees e ON e.user_id = u.id
		ORDER BY peer_id, m.sent_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []chat.Conversation
	for rows.Next() {
		var c chat.Conversation
		if err := rows.Scan(
			&c.PeerID, &c.PeerName,
			&c.LastMessage.ID, &c.LastMessage.SenderID, &c.LastMessage.RecipientID,
			&c.LastMessage.Body, &c.LastMessage.SentAt, &c.LastMessage.ReadAt,
			&c.UnreadCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate conversations: %w", err)
	}

	return conversations, nil
}
