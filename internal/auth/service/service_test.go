package service

import (
	"context"
	"testing"
	"time"

	"github.com/abisalde/inventory-service/internal/auth/repository"
	"github.com/abisalde/inventory-service/internal/model"
	"github.com/abisalde/inventory-service/internal/testutil"
	"github.com/abisalde/inventory-service/pkg/jwt"
	"github.com/abisalde/inventory-service/pkg/password"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var testStart = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *AuthService
	store  *repository.SQLStore
	mailer *testutil.Mailer
	clock  *testutil.Clock
	hasher *password.Hasher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := testutil.NewClock(testStart)
	tokens, err := jwt.NewManager("test-secret", time.Hour, jwt.WithClock(clock.Now))
	require.NoError(t, err)

	store := repository.NewSQLStore(testutil.SetupTestDB(t))
	mailer := &testutil.Mailer{}
	hasher := password.NewHasher(bcrypt.MinCost)

	return &fixture{
		svc:    NewAuthService(store, tokens, hasher, mailer, zap.NewNop(), WithClock(clock.Now)),
		store:  store,
		mailer: mailer,
		clock:  clock,
		hasher: hasher,
	}
}

func (f *fixture) seedUser(t *testing.T, username, plain string, status model.UserStatus, role model.UserRole) int64 {
	t.Helper()

	hash, err := f.hasher.HashPassword(plain)
	require.NoError(t, err)

	id, err := f.store.Users().CreateUser(context.Background(), &model.User{
		Username:        username,
		PasswordHash:    hash,
		Email:           username + "@example.com",
		Status:          status,
		Role:            role,
		IsEmailVerified: true,
		CreatedAt:       testStart,
	})
	require.NoError(t, err)
	return id
}

// verifiedPlaceholder walks email through request and verify-code.
func (f *fixture) verifiedPlaceholder(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.svc.RequestEmailVerification(ctx, email)
	require.NoError(t, err)
	require.NoError(t, f.svc.VerifyCode(ctx, email, f.mailer.LastCode(email)))
}

func (f *fixture) activity(t *testing.T, userID int64) []string {
	t.Helper()
	entries, err := f.store.Users().ListActivity(context.Background(), userID)
	require.NoError(t, err)

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Description)
	}
	return out
}

func validSignup(email string) *model.SignupInput {
	return &model.SignupInput{
		Credentials: model.Credentials{Username: "  Jane_Doe ", Password: "Password1!"},
		Name:        model.Name{First: " Jane ", Initial: "Q", Last: "Doe"},
		Location: model.Location{
			Address:   "12  Main   Street",
			City:      "Springfield",
			StateCode: "il",
			Zip:       "62701",
		},
		Email: email,
		Phone: "5551234567",
	}
}
