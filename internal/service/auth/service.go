package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/auth"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/employee"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/user"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/database"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/jwt"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/oauth"
	"github.com/arketra-labs/workforce-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

const googleProvider = "google"

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	employee.EmployeeRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService
}

func NewAuthService(
	db *database.DB,
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:                 db,
		UserRepository:     userRepo,
		EmployeeRepository: employeeRepo,
		jwtService:         jwtService,
		googleService:      googleService,
	}
}

// Register implements auth.AuthService. New accounts always start as
// employees; role escalation is an admin action, never self-service.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	var created user.User
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.UserRepository.Create(txCtx, user.User{
			Email:        req.Email,
			PasswordHash: &hashStr,
			Role:         user.RoleEmployee,
		})
		if err != nil {
			return err
		}

		emp, err := s.EmployeeRepository.Create(txCtx, employee.Employee{
			UserID:   created.ID,
			FullName: req.FullName,
			Active:   true,
		})
		if err != nil {
			return err
		}
		created.EmployeeID = &emp.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailExists) {
			return auth.TokenResponse{}, user.ErrEmailExists
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to register user: %w", err)
	}

	return s.issueTokens(created)
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if u.PasswordHash == nil {
		// OAuth-only account.
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

// LoginWithGoogle implements auth.AuthService.
func (s *AuthServiceImpl) LoginWithGoogle(ctx context.Context, userAgent string) (string, error) {
	state := s.googleService.GenerateState(userAgent)
	if state == "" {
		return "", fmt.Errorf("failed to generate oauth state")
	}
	return s.googleService.RedirectURL(state), nil
}

// OAuthCallbackGoogle implements auth.AuthService. First-time Google sign-in
// provisions an employee account keyed by the Google identity.
func (s *AuthServiceImpl) OAuthCallbackGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	token, err := s.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	info, err := s.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to verify google user: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrEmailNotVerified
	}

	u, err := s.UserRepository.GetByOAuth(ctx, googleProvider, info.GoogleID)
	if err == nil {
		return s.issueTokens(u)
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("failed to look up oauth user: %w", err)
	}

	provider := googleProvider
	providerID := info.GoogleID
	var created user.User
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.UserRepository.Create(txCtx, user.User{
			Email:           info.Email,
			Role:            user.RoleEmployee,
			OAuthProvider:   &provider,
			OAuthProviderID: &providerID,
		})
		if err != nil {
			return err
		}

		fullName := info.Name
		if fullName == "" {
			fullName = info.Email
		}
		var avatarURL *string
		if info.Picture != "" {
			avatarURL = &info.Picture
		}
		emp, err := s.EmployeeRepository.Create(txCtx, employee.Employee{
			UserID:    created.ID,
			FullName:  fullName,
			AvatarURL: avatarURL,
			Active:    true,
		})
		if err != nil {
			return err
		}
		created.EmployeeID = &emp.ID
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to provision oauth user: %w", err)
	}

	return s.issueTokens(created)
}

// Refresh implements auth.AuthService. Rotation: the presented refresh token
// is revoked and a fresh pair is issued.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := s.jwtService.ParseRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	u, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	s.jwtService.RevokeToken(refreshToken)
	return s.issueTokens(u)
}

// Logout implements auth.AuthService.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	s.jwtService.RevokeToken(refreshToken)
	return nil
}

func (s *AuthServiceImpl) issueTokens(u user.User) (auth.TokenResponse, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExp,
		Role:                  string(u.Role),
		UserID:                u.ID,
		EmployeeID:            u.EmployeeID,
	}, nil
}
