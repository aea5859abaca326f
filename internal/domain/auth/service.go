package auth

import "context"

// AuthService issues and refreshes tokens. Session storage itself is the
// client's concern; refresh tokens travel in an HttpOnly cookie.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	LoginWithGoogle(ctx context.Context, userAgent string) (redirectURL string, err error)
	OAuthCallbackGoogle(ctx context.Context, code string) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
