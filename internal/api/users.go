package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"food-order-service/internal/auth"
	"food-order-service/internal/entity"
	"food-order-service/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser stores a new account --> POST /users
// Any role in the body is ignored; accounts always start as customer.
func (h *UserHandler) CreateUser(c echo.Context) error {
	user := entity.User{}
	if err := c.Bind(&user); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	createdUser, err := h.userService.CreateUser(c.Request().Context(), &user)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(201, createdUser)
}

// ListUsers returns every account --> GET /users (admin)
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, users)
}

// CheckAdmin reports whether the caller is an admin --> GET /users/admin/:email
// The path email must match the verified token's email; a mismatch is 401
// regardless of actual admin status.
func (h *UserHandler) CheckAdmin(c echo.Context) error {
	email := c.Param("email")

	claims, ok := auth.ClaimsFrom(c)
	if !ok || claims.Email != email {
		return jsonError(c, entity.ErrUnauthenticated)
	}

	admin, err := h.userService.IsAdmin(c.Request().Context(), email)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]bool{"admin": admin})
}

// PromoteUser elevates an account to admin --> PATCH /users/admin/:id (admin)
func (h *UserHandler) PromoteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	if err := h.userService.PromoteToAdmin(c.Request().Context(), id); err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]string{"message": "User promoted to admin"})
}

// DeleteUser removes an account --> DELETE /users/:id (admin)
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	user, err := h.userService.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]interface{}{
		"message":     "User deleted successfully",
		"deletedUser": user,
	})
}
