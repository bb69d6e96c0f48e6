package service

import (
	"context"
	"strings"
	"time"

	"github.com/abisalde/inventory-service/internal/auth"
	"github.com/abisalde/inventory-service/internal/auth/repository"
	customErrors "github.com/abisalde/inventory-service/internal/errors"
	"github.com/abisalde/inventory-service/internal/model"
	"github.com/abisalde/inventory-service/internal/utils/validator"
	"github.com/abisalde/inventory-service/pkg/verification"
	"go.uber.org/zap"
)

// RequestEmailVerification creates a placeholder account for email, issues
// its first code and mails it. If the mail cannot be delivered the
// placeholder is removed again so the address can be retried.
func (s *AuthService) RequestEmailVerification(ctx context.Context, email string) (string, error) {
	if validator.IsBlank(email) {
		return "", customErrors.MissingEmail
	}
	email = validator.Normalize(email)
	if err := validator.ValidateEmail(email); err != nil {
		return "", err
	}

	code, err := verification.GenerateVerificationCode(s.codeLength)
	if err != nil {
		return "", fail("generate code", err)
	}
	username, throwaway := verification.PlaceholderCredentials()
	hash, err := s.hasher.HashPassword(throwaway)
	if err != nil {
		return "", fail("hash placeholder password", err)
	}

	now := s.clock()
	var userID int64
	err = s.store.InTx(ctx, func(ctx context.Context, users repository.UserRepository) error {
		id, err := users.CreatePlaceholder(ctx, &model.PlaceholderUser{
			Email:        email,
			Username:     username,
			PasswordHash: hash,
		}, now)
		if err != nil {
			return err
		}
		userID = id

		if err := users.AppendActivity(ctx, id, activityPlaceholderCreated, now); err != nil {
			return err
		}
		return s.replaceCode(ctx, users, id, code, now)
	})
	if err != nil {
		return "", fail("create placeholder", err)
	}

	if err := s.sendVerificationCode(ctx, email, code); err != nil {
		auth.Logger(ctx, s.logger).Error("verification email delivery failed, removing placeholder",
			zap.Int64("user_id", userID), zap.Error(err))

		if delErr := s.store.Users().DeleteByID(context.WithoutCancel(ctx), userID); delErr != nil {
			auth.Logger(ctx, s.logger).Error("failed to remove placeholder after delivery failure",
				zap.Int64("user_id", userID), zap.Error(delErr))
		}
		return "", customErrors.EmailDeliveryFailed.Wrap(err)
	}

	s.recordActivity(ctx, userID, activityCodeSent)
	return email, nil
}

// ResendCode replaces the live code of a pending signup and mails the new
// one. Delivery failures leave the account in place.
func (s *AuthService) ResendCode(ctx context.Context, email string) error {
	if validator.IsBlank(email) {
		return customErrors.MissingEmail
	}
	email = validator.Normalize(email)

	user, err := s.placeholderByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := verification.GenerateVerificationCode(s.codeLength)
	if err != nil {
		return fail("generate code", err)
	}

	now := s.clock()
	err = s.store.InTx(ctx, func(ctx context.Context, users repository.UserRepository) error {
		return s.replaceCode(ctx, users, user.ID, code, now)
	})
	if err != nil {
		return fail("replace code", err)
	}

	if err := s.sendVerificationCode(ctx, email, code); err != nil {
		auth.Logger(ctx, s.logger).Error("verification email resend failed", zap.Int64("user_id", user.ID), zap.Error(err))
		return customErrors.EmailDeliveryFailed.Wrap(err)
	}

	s.recordActivity(ctx, user.ID, activityCodeSent)
	return nil
}

// replaceCode leaves exactly one live code for userID.
func (s *AuthService) replaceCode(ctx context.Context, users repository.UserRepository, userID int64, code string, now time.Time) error {
	if _, err := users.DeleteCodes(ctx, userID); err != nil {
		return err
	}
	if err := users.AppendActivity(ctx, userID, activityCodesDeleted, now); err != nil {
		return err
	}
	if err := users.InsertCode(ctx, userID, code, now.Add(s.codeTTL)); err != nil {
		return err
	}
	return users.AppendActivity(ctx, userID, activityCodeIssued, now)
}

// VerifyCode consumes a live code and marks the owning account's email as
// verified.
func (s *AuthService) VerifyCode(ctx context.Context, email, code string) error {
	if validator.IsBlank(email) || validator.IsBlank(code) {
		return customErrors.MissingCodeFields
	}
	email = validator.Normalize(email)
	code = strings.TrimSpace(code)

	now := s.clock()
	err := s.store.InTx(ctx, func(ctx context.Context, users repository.UserRepository) error {
		vc, err := users.FindLiveCode(ctx, email, code, now)
		if isNotFound(err) {
			return customErrors.InvalidOrExpiredCode
		}
		if err != nil {
			return err
		}

		// a concurrent verification may have consumed it first
		if err := users.DeleteCode(ctx, vc.ID); isNotFound(err) {
			return customErrors.InvalidOrExpiredCode
		} else if err != nil {
			return err
		}

		if err := users.MarkEmailVerified(ctx, vc.UserID); err != nil {
			return err
		}
		return users.AppendActivity(ctx, vc.UserID, activityEmailVerified, now)
	})
	if err != nil {
		return fail("verify code", err)
	}
	return nil
}

// FinalizeSignup writes the submitted profile over the verified placeholder
// and leaves the account pending admin approval.
func (s *AuthService) FinalizeSignup(ctx context.Context, input *model.SignupInput) error {
	if input == nil || anyBlank(
		input.Credentials.Username, input.Credentials.Password,
		input.Name.First, input.Name.Last,
		input.Location.Address, input.Location.City, input.Location.StateCode, input.Location.Zip,
	) {
		return customErrors.MissingSignupFields
	}
	if validator.IsBlank(input.Email) {
		return customErrors.MissingEmail
	}
	email := validator.Normalize(input.Email)

	user, err := s.placeholderByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !user.IsEmailVerified {
		return customErrors.EmailNotVerified
	}

	if err := validator.ValidatePassword(input.Credentials.Password); err != nil {
		return err
	}
	hash, err := s.hasher.HashPassword(input.Credentials.Password)
	if err != nil {
		return fail("hash password", err)
	}

	profile := &model.Profile{
		Username:     validator.Normalize(input.Credentials.Username),
		PasswordHash: hash,
		FirstName:    validator.Normalize(input.Name.First),
		Initial:      validator.NormalizeOptional(input.Name.Initial),
		LastName:     validator.Normalize(input.Name.Last),
		Phone:        validator.NormalizeOptional(input.Phone),
		Address:      validator.Normalize(input.Location.Address),
		City:         validator.Normalize(input.Location.City),
		StateCode:    strings.ToUpper(strings.TrimSpace(input.Location.StateCode)),
		Zip:          strings.TrimSpace(input.Location.Zip),
	}

	now := s.clock()
	err = s.store.InTx(ctx, func(ctx context.Context, users repository.UserRepository) error {
		if err := users.FinalizeProfile(ctx, user.ID, profile); isNotFound(err) {
			return customErrors.SignupAlreadyCompleted
		} else if err != nil {
			return err
		}
		return users.AppendActivity(ctx, user.ID, activitySignupCompleted, now)
	})
	if err != nil {
		return fail("finalize signup", err)
	}
	return nil
}

// AbandonSignup removes an unfinished signup for email. Removing nothing is
// not an error.
func (s *AuthService) AbandonSignup(ctx context.Context, email string) error {
	if validator.IsBlank(email) {
		return customErrors.MissingEmail
	}
	email = validator.Normalize(email)

	n, err := s.store.Users().DeletePlaceholderByEmail(ctx, email)
	if err != nil {
		return fail("abandon signup", err)
	}
	auth.Logger(ctx, s.logger).Debug("abandoned signup", zap.Int64("deleted", n))
	return nil
}

func (s *AuthService) placeholderByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if isNotFound(err) {
		return nil, customErrors.AccountNotFound
	}
	if err != nil {
		return nil, fail("lookup account", err)
	}
	if user.Status != model.UserStatusPlaceholder {
		return nil, customErrors.SignupAlreadyCompleted
	}
	return user, nil
}

// recordActivity appends to the audit trail outside any transaction.
// Failures are logged and never reach the caller.
func (s *AuthService) recordActivity(ctx context.Context, userID int64, description string) {
	err := s.store.Users().AppendActivity(context.WithoutCancel(ctx), userID, description, s.clock())
	if err != nil {
		auth.Logger(ctx, s.logger).Warn("failed to record activity",
			zap.Int64("user_id", userID),
			zap.String("activity", description),
			zap.Error(err),
		)
	}
}

func anyBlank(values ...string) bool {
	for _, v := range values {
		if validator.IsBlank(v) {
			return true
		}
	}
	return false
}
