package http

import (
	"github.com/abisalde/inventory-service/internal/auth/service"
	customErrors "github.com/abisalde/inventory-service/internal/errors"
	"github.com/abisalde/inventory-service/internal/model"
	"github.com/gofiber/fiber/v2"
)

type SignupHandler struct {
	authService *service.AuthService
}

func NewSignupHandler(authService *service.AuthService) *SignupHandler {
	return &SignupHandler{authService: authService}
}

func (h *SignupHandler) RequestEmailVerification(c *fiber.Ctx) error {
	var input model.EmailInput
	if err := c.BodyParser(&input); err != nil {
		return customErrors.InvalidRequestBody
	}

	email, err := h.authService.RequestEmailVerification(c.UserContext(), input.Email)
	if err != nil {
		return err
	}

	return c.JSON(model.EmailVerificationResponse{
		Message: "Verification code sent. Check your inbox.",
		Email:   email,
	})
}

func (h *SignupHandler) ResendCode(c *fiber.Ctx) error {
	var input model.EmailInput
	if err := c.BodyParser(&input); err != nil {
		return customErrors.InvalidRequestBody
	}

	if err := h.authService.ResendCode(c.UserContext(), input.Email); err != nil {
		return err
	}
	return c.JSON(model.MessageResponse{Message: "A new verification code has been sent."})
}

func (h *SignupHandler) VerifyCode(c *fiber.Ctx) error {
	var input model.VerifyCodeInput
	if err := c.BodyParser(&input); err != nil {
		return customErrors.InvalidRequestBody
	}

	if err := h.authService.VerifyCode(c.UserContext(), input.Email, input.Code); err != nil {
		return err
	}
	return c.JSON(model.MessageResponse{Message: "Email verified."})
}

func (h *SignupHandler) FinalizeSignup(c *fiber.Ctx) error {
	var input model.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return customErrors.InvalidRequestBody
	}

	if err := h.authService.FinalizeSignup(c.UserContext(), &input); err != nil {
		return err
	}
	return c.JSON(model.MessageResponse{Message: "Signup complete. Your account is awaiting admin approval."})
}

func (h *SignupHandler) AbandonSignup(c *fiber.Ctx) error {
	var input model.EmailInput
	if err := c.BodyParser(&input); err != nil {
		return customErrors.InvalidRequestBody
	}

	if err := h.authService.AbandonSignup(c.UserContext(), input.Email); err != nil {
		return err
	}
	return c.JSON(model.MessageResponse{Message: "Signup cancelled."})
}

// RegisterRoutes mounts the signup flow. limit guards the routes that send
// email and may be nil.
func (h *SignupHandler) RegisterRoutes(router fiber.Router, limit fiber.Handler) {
	signup := router.Group("/signup")

	codeRoutes := []fiber.Handler{}
	if limit != nil {
		codeRoutes = append(codeRoutes, limit)
	}

	signup.Post("/verify-email", append(codeRoutes, h.RequestEmailVerification)...)
	signup.Post("/resend-code", append(codeRoutes, h.ResendCode)...)
	signup.Post("/verify-code", append(codeRoutes, h.VerifyCode)...)
	signup.Put("/", h.FinalizeSignup)
	signup.Delete("/", h.AbandonSignup)
}
