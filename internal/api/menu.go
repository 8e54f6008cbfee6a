package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"food-order-service/internal/entity"
	"food-order-service/internal/service"
)

type MenuHandler struct {
	menuService *service.MenuService
}

// NewMenuHandler creates a new instance of MenuHandler.
func NewMenuHandler(menuService *service.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// ListMenu returns the whole catalog --> GET /menu
func (h *MenuHandler) ListMenu(c echo.Context) error {
	products, err := h.menuService.ListMenu(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, products)
}

// GetMenuItem returns one catalog entry --> GET /menu/:id
func (h *MenuHandler) GetMenuItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	product, err := h.menuService.GetMenuItem(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, product)
}

// AddMenuItem stores a new catalog entry --> POST /menu (admin)
func (h *MenuHandler) AddMenuItem(c echo.Context) error {
	product := entity.Product{}
	if err := c.Bind(&product); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.menuService.AddMenuItem(c.Request().Context(), &product)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(201, created)
}

// UpdateMenuItem applies a partial update --> PATCH /menu/:id (admin)
func (h *MenuHandler) UpdateMenuItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	patch := service.MenuItemPatch{}
	if err := c.Bind(&patch); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	updated, err := h.menuService.UpdateMenuItem(c.Request().Context(), id, &patch)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, updated)
}

// DeleteMenuItem removes a catalog entry --> DELETE /menu/:id (admin)
func (h *MenuHandler) DeleteMenuItem(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	deleted, err := h.menuService.RemoveMenuItem(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]int64{"deletedCount": deleted})
}
