package chat

import (
	"context"
	"testing"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/chat"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/user"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/ws"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	senderID    = "0c8ff18c-90ba-4c75-8b11-1b5a4d1a6a01"
	recipientID = "3f2b9a54-7d6e-4f11-9c3d-2a8e5b7c4d02"
)

func userContext(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    string(user.RoleEmployee),
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeUserRepo struct {
	users   map[string]user.User
	touched map[string]time.Time
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		users:   make(map[string]user.User),
		touched: make(map[string]time.Time),
	}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByOAuth(ctx context.Context, provider string, providerID string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) TouchLastSeen(ctx context.Context, id string, at time.Time) error {
	r.touched[id] = at
	return nil
}

type fakeMessageRepo struct {
	messages []chat.Message
	nextID   int
}

func (r *fakeMessageRepo) Create(ctx context.Context, m chat.Message) (chat.Message, error) {
	r.nextID++
	m.ID = "msg-" + string(rune('0'+r.nextID))
	r.messages = append(r.messages, m)
	return m, nil
}

func (r *fakeMessageRepo) ListBetween(ctx context.Context, userA, userB string, before *time.Time, limit int) ([]chat.Message, error) {
	var out []chat.Message
	for _, m := range r.messages {
		if (m.SenderID == userA && m.RecipientID == userB) ||
			(m.SenderID == userB && m.RecipientID == userA) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(ctx context.Context, userID, peerID string, at time.Time) (int64, error) {
	var marked int64
	for i := range r.messages {
		m := &r.messages[i]
		if m.RecipientID == userID && m.SenderID == peerID && m.ReadAt == nil {
			m.ReadAt = &at
			marked++
		}
	}
	return marked, nil
}

func (r *fakeMessageRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.RecipientID == userID && m.ReadAt == nil {
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) ListConversations(ctx context.Context, userID string) ([]chat.Conversation, error) {
	return nil, nil
}

func newTestService() (chat.ChatService, *fakeMessageRepo, *fakeUserRepo) {
	messages := &fakeMessageRepo{}
	users := newFakeUserRepo(
		user.User{ID: senderID, Email: "sender@example.com"},
		user.User{ID: recipientID, Email: "recipient@example.com"},
	)
	svc := NewChatService(messages, users, ws.NewHub(nil))
	return svc, messages, users
}

func TestSendPersistsMessage(t *testing.T) {
	svc, messages, _ := newTestService()
	ctx := userContext(t, senderID)

	result, err := svc.Send(ctx, chat.SendMessageRequest{
		RecipientID: recipientID,
		Body:        "are you on site yet?",
	})
	require.NoError(t, err)
	assert.Equal(t, senderID, result.SenderID)
	assert.Equal(t, recipientID, result.RecipientID)
	assert.Nil(t, result.ReadAt)
	assert.Len(t, messages.messages, 1)
}

func TestSendToSelf(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := userContext(t, senderID)

	_, err := svc.Send(ctx, chat.SendMessageRequest{
		RecipientID: senderID,
		Body:        "note to self",
	})
	assert.ErrorIs(t, err, chat.ErrSelfMessage)
}

func TestSendToUnknownRecipient(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := userContext(t, senderID)

	_, err := svc.Send(ctx, chat.SendMessageRequest{
		RecipientID: "9e107d9d-5a2b-4f8a-8c3e-1b2a3c4d5e06",
		Body:        "hello?",
	})
	assert.ErrorIs(t, err, chat.ErrRecipientNotFound)
}

func TestSendEmptyBody(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := userContext(t, senderID)

	_, err := svc.Send(ctx, chat.SendMessageRequest{
		RecipientID: recipientID,
		Body:        "   ",
	})
	assert.Error(t, err)
}

func TestMarkReadAndUnreadCount(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Send(userContext(t, senderID), chat.SendMessageRequest{
		RecipientID: recipientID,
		Body:        "first",
	})
	require.NoError(t, err)
	_, err = svc.Send(userContext(t, senderID), chat.SendMessageRequest{
		RecipientID: recipientID,
		Body:        "second",
	})
	require.NoError(t, err)

	recipientCtx := userContext(t, recipientID)
	count, err := svc.UnreadCount(recipientCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkRead(recipientCtx, senderID))

	count, err = svc.UnreadCount(recipientCtx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPresence(t *testing.T) {
	recent := time.Now().UTC().Add(-30 * time.Second)
	stale := time.Now().UTC().Add(-chat.PresenceThreshold - time.Minute)

	cases := []struct {
		name       string
		lastSeenAt *time.Time
		online     bool
	}{
		{"recent heartbeat", &recent, true},
		{"stale heartbeat", &stale, false},
		{"never seen", nil, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			users := newFakeUserRepo(user.User{ID: recipientID, LastSeenAt: c.lastSeenAt})
			svc := NewChatService(&fakeMessageRepo{}, users, ws.NewHub(nil))

			result, err := svc.Presence(context.Background(), recipientID)
			require.NoError(t, err)
			assert.Equal(t, c.online, result.Online)
		})
	}
}

func TestHeartbeatTouchesLastSeen(t *testing.T) {
	svc, _, users := newTestService()

	svc.Heartbeat(context.Background(), senderID)
	assert.Contains(t, users.touched, senderID)
}
