package auth

import (
	"fmt"
	"os"
	"time"

	"fastfast-logistics/logger"
	"fastfast-logistics/middleware"
	"fastfast-logistics/services/account"
	"fastfast-logistics/services/session"
	"fastfast-logistics/types"
	authTypes "fastfast-logistics/types/auth"
	"fastfast-logistics/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	accounts *account.Service
}

func NewAuthController(accounts *account.Service) *AuthController {
	return &AuthController{accounts: accounts}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   isProduction,
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return utils.SendBadRequest(c, fmt.Sprintf("Error parsing request body: %v", err))
	}

	u, err := h.accounts.Register(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusCreated, "User registered successfully", u)
}

func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authTypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return utils.SendBadRequest(c, fmt.Sprintf("Error parsing request body: %v", err))
	}

	result, err := h.accounts.Login(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	maxAge := int(h.accounts.Sessions.TTL() / time.Second)
	h.setSecureCookie(c, session.CookieName, result.Token, maxAge)

	currentTime := time.Now().Format("2006-01-02 03:04:05 PM")
	logger.Success("User " + result.User.Uuid + " logged in at " + currentTime)

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   result.Token,
		Data: authTypes.LoginResponse{
			Token:     result.Token,
			ExpiresAt: result.Claims.ExpiresAt.Unix(),
			User:      result.User,
		},
	})
}

func (h *AuthController) LogOut(c *fiber.Ctx) error {
	if err := h.accounts.Logout(c.UserContext(), middleware.CurrentSession(c)); err != nil {
		return utils.SendError(c, err)
	}

	// Clear cookies
	h.setSecureCookie(c, session.CookieName, "", -1)

	logger.Success("User logged out successfully")
	return utils.SendSuccess(c, fiber.StatusOK, "Logged out successfully", nil)
}

func (h *AuthController) Profile(c *fiber.Ctx) error {
	u, err := h.accounts.Profile(c.UserContext(), middleware.CurrentActor(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "User fetched successfully", u)
}
