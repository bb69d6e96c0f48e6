package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/abisalde/inventory-service/internal/auth/cookies"
	"github.com/abisalde/inventory-service/internal/auth/repository"
	"github.com/abisalde/inventory-service/internal/auth/service"
	"github.com/abisalde/inventory-service/internal/middleware"
	"github.com/abisalde/inventory-service/internal/model"
	"github.com/abisalde/inventory-service/internal/testutil"
	"github.com/abisalde/inventory-service/pkg/jwt"
	"github.com/abisalde/inventory-service/pkg/password"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	app    *fiber.App
	clock  *testutil.Clock
	store  *repository.SQLStore
	mailer *testutil.Mailer
	hasher *password.Hasher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	clock := testutil.NewClock(time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC))
	tokens, err := jwt.NewManager("handler-secret", time.Hour, jwt.WithClock(clock.Now))
	require.NoError(t, err)

	store := repository.NewSQLStore(testutil.SetupTestDB(t))
	mailer := &testutil.Mailer{}
	hasher := password.NewHasher(bcrypt.MinCost)
	svc := service.NewAuthService(store, tokens, hasher, mailer, zap.NewNop(), service.WithClock(clock.Now))

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(zap.NewNop())})
	api := app.Group("/api/user")
	NewLoginHandler(svc, false).RegisterRoutes(api)
	NewSignupHandler(svc).RegisterRoutes(api, nil)

	return &testServer{app: app, clock: clock, store: store, mailer: mailer, hasher: hasher}
}

type result struct {
	status  int
	body    map[string]interface{}
	cookies map[string]string
	expired map[string]bool
	// Set-Cookie headers seen per cookie name
	setCookies map[string]int
}

func (s *testServer) do(t *testing.T, method, path string, payload interface{}, token string) result {
	t.Helper()

	var reader io.Reader
	if raw, ok := payload.(string); ok {
		reader = bytes.NewBufferString(raw)
	} else if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderCookie, cookies.SessionTokenName+"="+token)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := result{status: resp.StatusCode, cookies: map[string]string{}, expired: map[string]bool{}, setCookies: map[string]int{}}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out.body), string(raw))
	}
	for _, c := range resp.Cookies() {
		out.cookies[c.Name] = c.Value
		out.expired[c.Name] = !c.Expires.IsZero() && c.Expires.Before(time.Now())
		out.setCookies[c.Name]++
	}
	return out
}

func (s *testServer) seedActive(t *testing.T, username, plain string, role model.UserRole) int64 {
	t.Helper()

	hash, err := s.hasher.HashPassword(plain)
	require.NoError(t, err)
	id, err := s.store.Users().CreateUser(context.Background(), &model.User{
		Username:        username,
		PasswordHash:    hash,
		Email:           username + "@example.com",
		Status:          model.UserStatusActive,
		Role:            role,
		IsEmailVerified: true,
		CreatedAt:       time.Now().UTC(),
	})
	require.NoError(t, err)
	return id
}

func TestSignupFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)
	email := map[string]string{"email": " New@Example.com "}

	res := s.do(t, fiber.MethodPost, "/api/user/signup/verify-email", email, "")
	require.Equal(t, fiber.StatusOK, res.status, res.body)
	assert.Equal(t, "new@example.com", res.body["email"])

	res = s.do(t, fiber.MethodPost, "/api/user/signup/verify-email", email, "")
	assert.Equal(t, fiber.StatusConflict, res.status)
	assert.Equal(t, "email", res.body["field"])

	res = s.do(t, fiber.MethodPost, "/api/user/signup/resend-code", email, "")
	require.Equal(t, fiber.StatusOK, res.status, res.body)

	code := s.mailer.LastCode("new@example.com")
	require.NotEmpty(t, code)

	res = s.do(t, fiber.MethodPost, "/api/user/signup/verify-code", map[string]string{"email": "new@example.com", "code": "12345"}, "")
	assert.Equal(t, fiber.StatusNotFound, res.status)

	res = s.do(t, fiber.MethodPost, "/api/user/signup/verify-code", map[string]string{"email": "new@example.com", "code": code}, "")
	require.Equal(t, fiber.StatusOK, res.status, res.body)

	signup := model.SignupInput{
		Credentials: model.Credentials{Username: "new_user", Password: "Password1!"},
		Name:        model.Name{First: "New", Last: "User"},
		Location:    model.Location{Address: "1 Main St", City: "Austin", StateCode: "TX", Zip: "73301"},
		Email:       "new@example.com",
	}
	res = s.do(t, fiber.MethodPut, "/api/user/signup", signup, "")
	require.Equal(t, fiber.StatusOK, res.status, res.body)

	// pending accounts cannot log in until an admin assigns a role
	res = s.do(t, fiber.MethodPost, "/api/user/login", map[string]string{"username": "new_user", "password": "Password1!"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.Empty(t, res.cookies[cookies.SessionTokenName])
}

func TestFinalizeSignup_RequiresVerifiedEmailAndStrongPassword(t *testing.T) {
	s := newTestServer(t)
	email := "weak@example.com"
	input := model.SignupInput{
		Credentials: model.Credentials{Username: "weak_user", Password: "password"},
		Name:        model.Name{First: "Weak", Last: "User"},
		Location:    model.Location{Address: "1 Main St", City: "Austin", StateCode: "TX", Zip: "73301"},
		Email:       email,
	}

	res := s.do(t, fiber.MethodPut, "/api/user/signup", input, "")
	assert.Equal(t, fiber.StatusNotFound, res.status)

	res = s.do(t, fiber.MethodPost, "/api/user/signup/verify-email", map[string]string{"email": email}, "")
	require.Equal(t, fiber.StatusOK, res.status)

	res = s.do(t, fiber.MethodPut, "/api/user/signup", input, "")
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "email", res.body["field"])

	res = s.do(t, fiber.MethodPost, "/api/user/signup/verify-code", map[string]string{"email": email, "code": s.mailer.LastCode(email)}, "")
	require.Equal(t, fiber.StatusOK, res.status)

	res = s.do(t, fiber.MethodPut, "/api/user/signup", input, "")
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "BAD_REQUEST", res.body["code"])
	assert.Equal(t, "password", res.body["field"])
}

func TestAbandonSignup_OverHTTP(t *testing.T) {
	s := newTestServer(t)
	email := map[string]string{"email": "gone@example.com"}

	res := s.do(t, fiber.MethodPost, "/api/user/signup/verify-email", email, "")
	require.Equal(t, fiber.StatusOK, res.status)

	res = s.do(t, fiber.MethodDelete, "/api/user/signup", email, "")
	require.Equal(t, fiber.StatusOK, res.status)

	res = s.do(t, fiber.MethodPost, "/api/user/signup/verify-email", email, "")
	assert.Equal(t, fiber.StatusOK, res.status)
}

func TestLoginVerifyLogout(t *testing.T) {
	s := newTestServer(t)
	userID := s.seedActive(t, "manager1", "Password1!", model.UserRoleManager)

	res := s.do(t, fiber.MethodPost, "/api/user/login", map[string]string{"username": "manager1", "password": "Password1!"}, "")
	require.Equal(t, fiber.StatusOK, res.status, res.body)
	assert.Equal(t, "Login Successful", res.body["message"])
	assert.EqualValues(t, userID, res.body["userID"])
	assert.Equal(t, "manager", res.body["role"])

	token := res.cookies[cookies.SessionTokenName]
	require.NotEmpty(t, token)

	res = s.do(t, fiber.MethodGet, "/api/user/verify-token", nil, token)
	assert.Equal(t, fiber.StatusOK, res.status)

	res = s.do(t, fiber.MethodPost, "/api/user/logout/"+strconv.FormatInt(userID, 10), nil, token)
	assert.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, "Logout success", res.body["message"])
	assert.Empty(t, res.cookies[cookies.SessionTokenName])
	assert.True(t, res.expired[cookies.SessionTokenName])
}

func TestLogin_Rejections(t *testing.T) {
	s := newTestServer(t)
	s.seedActive(t, "employee1", "Password1!", model.UserRoleEmployee)

	res := s.do(t, fiber.MethodPost, "/api/user/login", map[string]string{"username": "employee1", "password": "wrong"}, "")
	assert.Equal(t, fiber.StatusNotFound, res.status)
	assert.Equal(t, "Incorrect credentials!", res.body["message"])

	res = s.do(t, fiber.MethodPost, "/api/user/login", map[string]string{"username": "nobody", "password": "wrong"}, "")
	assert.Equal(t, fiber.StatusNotFound, res.status)

	res = s.do(t, fiber.MethodPost, "/api/user/login", map[string]string{"username": "", "password": ""}, "")
	assert.Equal(t, fiber.StatusBadRequest, res.status)

	res = s.do(t, fiber.MethodPost, "/api/user/login", "{not json", "")
	assert.Equal(t, fiber.StatusBadRequest, res.status)
}

func TestVerifyToken_Rejections(t *testing.T) {
	s := newTestServer(t)

	res := s.do(t, fiber.MethodGet, "/api/user/verify-token", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.Equal(t, "No token detected", res.body["message"])

	res = s.do(t, fiber.MethodGet, "/api/user/verify-token", nil, "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.Equal(t, "Invalid token: Access denied", res.body["message"])
}

func TestVerifyToken_ExpiredSessionIsDistinct(t *testing.T) {
	s := newTestServer(t)
	s.seedActive(t, "employee2", "Password1!", model.UserRoleEmployee)

	res := s.do(t, fiber.MethodPost, "/api/user/login", map[string]string{"username": "employee2", "password": "Password1!"}, "")
	require.Equal(t, fiber.StatusOK, res.status, res.body)
	token := res.cookies[cookies.SessionTokenName]
	require.NotEmpty(t, token)

	s.clock.Advance(time.Hour + time.Second)

	res = s.do(t, fiber.MethodGet, "/api/user/verify-token", nil, token)
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.Equal(t, "Session expired: Please log in again", res.body["message"])
	assert.Equal(t, true, res.body["expired"])

	res = s.do(t, fiber.MethodGet, "/api/user/verify-token", nil, "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.NotContains(t, res.body, "expired")
}

func TestLogin_ReplacesExistingSession(t *testing.T) {
	s := newTestServer(t)
	s.seedActive(t, "admin1", "Password1!", model.UserRoleAdmin)
	creds := map[string]string{"username": "admin1", "password": "Password1!"}

	res := s.do(t, fiber.MethodPost, "/api/user/login", creds, "")
	require.Equal(t, fiber.StatusOK, res.status, res.body)
	first := res.cookies[cookies.SessionTokenName]
	require.NotEmpty(t, first)

	s.clock.Advance(time.Minute)

	res = s.do(t, fiber.MethodPost, "/api/user/login", creds, first)
	require.Equal(t, fiber.StatusOK, res.status, res.body)
	second := res.cookies[cookies.SessionTokenName]
	require.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
	assert.False(t, res.expired[cookies.SessionTokenName])
	assert.Equal(t, 1, res.setCookies[cookies.SessionTokenName])

	res = s.do(t, fiber.MethodGet, "/api/user/verify-token", nil, second)
	assert.Equal(t, fiber.StatusOK, res.status)
}

func TestLogout_WithoutSessionStillSucceeds(t *testing.T) {
	s := newTestServer(t)

	res := s.do(t, fiber.MethodPost, "/api/user/logout/not-a-number", nil, "")
	assert.Equal(t, fiber.StatusOK, res.status)
}
