package jwt

import (
	"context"
	"fmt"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// Claims is the decoded identity of the authenticated request.
type Claims struct {
	UserID     string
	Email      string
	EmployeeID string
	Role       user.Role
}

// IsManager reports whether the actor may read other users' data.
func (c Claims) IsManager() bool {
	return c.Role == user.RoleManager || c.Role == user.RoleAdmin
}

// IsAdmin reports whether the actor may change configuration.
func (c Claims) IsAdmin() bool {
	return c.Role == user.RoleAdmin
}

// ClaimsFromContext extracts the verified token claims placed in the
// context by the jwtauth middleware.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return Claims{}, fmt.Errorf("user_id claim is missing or invalid")
	}
	email, _ := claims["email"].(string)
	employeeID, _ := claims["employee_id"].(string)
	role, _ := claims["role"].(string)

	return Claims{
		UserID:     userID,
		Email:      email,
		EmployeeID: employeeID,
		Role:       user.Role(role),
	}, nil
}
