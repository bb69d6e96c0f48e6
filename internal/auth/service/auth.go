package service

import (
	"errors"
	"sync"
	"time"

	"github.com/abisalde/inventory-service/internal/auth/repository"
	customErrors "github.com/abisalde/inventory-service/internal/errors"
	"github.com/abisalde/inventory-service/pkg/jwt"
	"github.com/abisalde/inventory-service/pkg/mail"
	"github.com/abisalde/inventory-service/pkg/password"
	"github.com/abisalde/inventory-service/pkg/verification"
	"go.uber.org/zap"
)

const (
	DefaultCodeTTL = 10 * time.Minute

	activityPlaceholderCreated = "Created placeholder account pending email verification"
	activityCodesDeleted       = "Deleted previous verification codes"
	activityCodeIssued         = "Issued verification code"
	activityCodeSent           = "Sent verification code by email"
	activityEmailVerified      = "Verified email address"
	activitySignupCompleted    = "Completed signup, awaiting admin approval"
	activityLoggedIn           = "Logged in"
	activityLoggedOut          = "Logged out"
)

type AuthService struct {
	store      repository.Store
	tokens     *jwt.Manager
	hasher     *password.Hasher
	mailer     mail.Mailer
	logger     *zap.Logger
	now        func() time.Time
	codeTTL    time.Duration
	codeLength int

	dummyOnce sync.Once
	dummyHash string
}

type Option func(*AuthService)

func WithClock(now func() time.Time) Option {
	return func(s *AuthService) { s.now = now }
}

// WithCodePolicy overrides the verification code length and lifetime.
func WithCodePolicy(length int, ttl time.Duration) Option {
	return func(s *AuthService) {
		if length > 0 {
			s.codeLength = length
		}
		if ttl > 0 {
			s.codeTTL = ttl
		}
	}
}

func NewAuthService(
	store repository.Store,
	tokens *jwt.Manager,
	hasher *password.Hasher,
	mailer mail.Mailer,
	logger *zap.Logger,
	opts ...Option,
) *AuthService {
	s := &AuthService{
		store:      store,
		tokens:     tokens,
		hasher:     hasher,
		mailer:     mailer,
		logger:     logger,
		now:        time.Now,
		codeTTL:    DefaultCodeTTL,
		codeLength: verification.DefaultCodeLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

func (s *AuthService) clock() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// fail passes typed errors through and hides everything else behind the
// generic internal error.
func fail(op string, err error) error {
	if _, ok := customErrors.AsTypedError(err); ok {
		return err
	}
	return customErrors.InternalServerError("%s: %w", op, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

// comparePlaceholderDigest spends the same bcrypt work as a real password
// check so unknown usernames answer in similar time.
func (s *AuthService) comparePlaceholderDigest(password string) {
	s.dummyOnce.Do(func() {
		_, pw := verification.PlaceholderCredentials()
		hash, err := s.hasher.HashPassword(pw)
		if err != nil {
			s.logger.Warn("failed to prepare dummy digest", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_ = s.hasher.CheckPasswordHash(password, s.dummyHash)
	}
}
