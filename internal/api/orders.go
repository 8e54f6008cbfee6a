package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"food-order-service/internal/entity"
	"food-order-service/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceOrder stores a new pending order --> POST /orders
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	order := entity.Order{}
	if err := c.Bind(&order); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	idempotentKey := c.Request().Header.Get("Idempotent-Key")

	createdOrder, err := h.orderService.PlaceOrder(ctx, &order, idempotentKey)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(201, createdOrder)
}

// ListOrders returns a customer's orders --> GET /orders?email=
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderService.ListOrdersByEmail(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, orders)
}

// DeleteOrder cancels one order before settlement --> DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	order, err := h.orderService.CancelOrder(c.Request().Context(), id)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]interface{}{
		"message":      "Order deleted successfully",
		"deletedOrder": order,
	})
}
