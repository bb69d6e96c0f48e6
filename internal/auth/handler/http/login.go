package http

import (
	"strconv"

	"github.com/abisalde/inventory-service/internal/auth/cookies"
	"github.com/abisalde/inventory-service/internal/auth/service"
	customErrors "github.com/abisalde/inventory-service/internal/errors"
	"github.com/abisalde/inventory-service/internal/model"
	"github.com/gofiber/fiber/v2"
)

type LoginHandler struct {
	authService  *service.AuthService
	cookieSecure bool
}

func NewLoginHandler(authService *service.AuthService, cookieSecure bool) *LoginHandler {
	return &LoginHandler{authService: authService, cookieSecure: cookieSecure}
}

func (h *LoginHandler) settings() cookies.Settings {
	return cookies.Settings{Secure: h.cookieSecure, TTL: h.authService.TokenTTL()}
}

// Login godoc
// @Summary Log in with username and password
// @Tags Session
// @Accept json
// @Produce json
// @Success 200 {object} model.LoginResponse
// @Router /api/user/login [post]
func (h *LoginHandler) Login(c *fiber.Ctx) error {
	var input model.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return customErrors.InvalidRequestBody
	}

	res, err := h.authService.Login(c.UserContext(), input.Username, input.Password)
	if err != nil {
		return err
	}

	// a session already held by this client is replaced, never reused
	if cookies.SessionToken(c) != "" {
		cookies.ClearSessionCookie(c, h.settings())
	}
	cookies.SetSessionCookie(c, res.Token, h.settings())

	return c.JSON(model.LoginResponse{
		Message: "Login Successful",
		UserID:  res.UserID,
		Role:    res.Role,
	})
}

// Logout always succeeds; the activity entry is best effort.
func (h *LoginHandler) Logout(c *fiber.Ctx) error {
	cookies.ClearSessionCookie(c, h.settings())

	userID, err := strconv.ParseInt(c.Params("userId"), 10, 64)
	if err == nil {
		h.authService.Logout(c.UserContext(), userID)
	}

	return c.JSON(model.MessageResponse{Message: "Logout success"})
}

func (h *LoginHandler) VerifyToken(c *fiber.Ctx) error {
	if _, err := h.authService.VerifyToken(cookies.SessionToken(c)); err != nil {
		return err
	}
	return c.JSON(model.MessageResponse{Message: "Successfully entered a secure page."})
}

func (h *LoginHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/login", h.Login)
	router.Post("/logout/:userId", h.Logout)
	router.Get("/verify-token", h.VerifyToken)
}
