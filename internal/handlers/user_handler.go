package handlers

import (
	"sportshop/internal/apperror"
	"sportshop/internal/middleware"
	"sportshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes registers the user routes; all of them require authn.
func (h *UserHandler) RegisterRoutes(router fiber.Router, authn fiber.Handler) {
	userRoutes := router.Group("/users", authn)
	userRoutes.Get("/", middleware.RequireAdmin(), h.HandleGetUsers)
	userRoutes.Get("/:id", middleware.RequireSelfOrAdmin("id"), h.HandleGetUser)
	userRoutes.Put("/:id", middleware.RequireSelfOrAdmin("id"), h.HandleUpdateUser)
	userRoutes.Delete("/:id", middleware.RequireSelfOrAdmin("id"), h.HandleDeleteUser)
}

// HandleGetUsers lists every account.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateUserRequest holds the optional fields of a profile update.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// HandleUpdateUser applies a partial update.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := parseAndValidate(c, &req); err != nil {
		return err
	}
	if req.Password != nil && len(*req.Password) > maxPasswordBytes {
		return apperror.FieldErrors{"password": "must be at most 72 bytes"}
	}

	user, err := h.users.Update(c.UserContext(), middleware.CurrentUser(c), c.Params("id"), services.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
