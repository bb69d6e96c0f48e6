package service

import (
	"context"
	"errors"
	"strings"

	customErrors "github.com/abisalde/inventory-service/internal/errors"
	"github.com/abisalde/inventory-service/internal/model"
	"github.com/abisalde/inventory-service/internal/utils/validator"
	"github.com/abisalde/inventory-service/pkg/jwt"
)

type LoginResult struct {
	UserID int64
	Role   model.UserRole
	Token  string
}

// Login checks the credentials of an active, role-approved account and
// issues a session token for it. Unknown usernames and wrong passwords are
// reported identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if validator.IsBlank(username) || password == "" {
		return nil, customErrors.MissingCredentials
	}

	user, err := s.store.Users().GetByUsername(ctx, strings.TrimSpace(username))
	if isNotFound(err) {
		s.comparePlaceholderDigest(password)
		return nil, customErrors.IncorrectCredentials
	}
	if err != nil {
		return nil, fail("lookup user", err)
	}

	if err := s.hasher.CheckPasswordHash(password, user.PasswordHash); err != nil {
		return nil, customErrors.IncorrectCredentials
	}

	switch {
	case user.Status == model.UserStatusInactive || user.Status == model.UserStatusPlaceholder:
		return nil, customErrors.InactiveUser
	case user.Role == model.UserRoleUndecided:
		return nil, customErrors.UndecidedRole
	case user.Status != model.UserStatusActive:
		return nil, customErrors.InactiveUser
	}

	token, err := s.tokens.Issue(user.ID, string(user.Role), 0)
	if err != nil {
		return nil, fail("issue token", err)
	}

	s.recordActivity(ctx, user.ID, activityLoggedIn)

	return &LoginResult{UserID: user.ID, Role: user.Role, Token: token}, nil
}

// Logout only records the event; the session itself lives in the client's
// cookie.
func (s *AuthService) Logout(ctx context.Context, userID int64) {
	if userID <= 0 {
		return
	}
	s.recordActivity(ctx, userID, activityLoggedOut)
}

func (s *AuthService) VerifyToken(token string) (*jwt.Claims, error) {
	if token == "" {
		return nil, customErrors.NoToken
	}

	claims, err := s.tokens.Verify(token)
	switch {
	case errors.Is(err, jwt.ErrExpired):
		return nil, customErrors.ExpiredToken
	case err != nil:
		return nil, customErrors.InvalidToken
	}
	return claims, nil
}
