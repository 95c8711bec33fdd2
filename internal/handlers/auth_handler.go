package handlers

import (
	"errors"

	"sportshop/internal/apperror"
	"sportshop/internal/middleware"
	"sportshop/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// maxPasswordBytes is the longest password bcrypt accepts.
const maxPasswordBytes = 72

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	users *services.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// RegisterRoutes registers the authentication routes. authn is the
// authentication middleware guarding the identity endpoints.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authn fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/me", authn, h.HandleMe)
	authRoutes.Get("/admin-only", authn, middleware.RequireAdmin(), h.HandleAdminOnly)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}
	if len(req.Password) > maxPasswordBytes {
		return apperror.FieldErrors{"password": "must be at most 72 bytes"}
	}

	user, token, err := h.users.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
		"user":    user.Public(),
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.users.Login(c.UserContext(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidLogin) {
		logrus.WithField("event", "login_failed").Info("invalid login attempt")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid credentials"})
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// HandleMe returns the authenticated caller.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user": middleware.CurrentUser(c).Public()})
}

// HandleAdminOnly is a probe route that only administrators reach.
func (h *AuthHandler) HandleAdminOnly(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Welcome admin " + middleware.CurrentUser(c).Email})
}
