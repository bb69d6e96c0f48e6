package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	customErrors "github.com/abisalde/inventory-service/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newErrorApp(t *testing.T, handler fiber.Handler) (*fiber.App, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.New(core))})
	app.Get("/", handler)
	return app, logs
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestErrorHandler_AppErrorWithExtensions(t *testing.T) {
	app, logs := newErrorApp(t, func(c *fiber.Ctx) error {
		return customErrors.UsernameExists
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, customErrors.UsernameExists.Message, body["message"])
	assert.Equal(t, "CONFLICT", body["code"])
	assert.Equal(t, "username", body["field"])
	assert.Zero(t, logs.Len())
}

func TestErrorHandler_WrappedInternalErrorHidesCause(t *testing.T) {
	app, logs := newErrorApp(t, func(c *fiber.Ctx) error {
		return customErrors.InternalServerError("insert user: %v", errors.New("disk full"))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, customErrors.ErrSomethingWentWrong.Message, body["message"])
	assert.NotContains(t, body["message"], "disk full")

	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].ContextMap()["error"], "disk full")
}

func TestErrorHandler_DeliveryFailureIsServerError(t *testing.T) {
	app, _ := newErrorApp(t, func(c *fiber.Ctx) error {
		return customErrors.EmailDeliveryFailed
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "DELIVERY_FAILURE", decodeBody(t, resp)["code"])
}

func TestErrorHandler_FiberError(t *testing.T) {
	app, _ := newErrorApp(t, func(c *fiber.Ctx) error { return nil })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, resp)["code"])
}

func TestErrorHandler_UnknownError(t *testing.T) {
	app, logs := newErrorApp(t, func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", decodeBody(t, resp)["code"])
	assert.Equal(t, 1, logs.FilterMessage("unhandled error").Len())
}
