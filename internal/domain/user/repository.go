package user

import (
	"context"
	"time"
)

type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByOAuth(ctx context.Context, provider string, providerID string) (User, error)

	// TouchLastSeen refreshes the presence heartbeat timestamp.
	TouchLastSeen(ctx context.Context, id string, at time.Time) error
}
