package api

import (
	"github.com/labstack/echo/v4"

	"food-order-service/internal/service"
)

type PaymentHandler struct {
	settlement *service.SettlementService
}

// NewPaymentHandler creates a new instance of PaymentHandler.
func NewPaymentHandler(settlement *service.SettlementService) *PaymentHandler {
	return &PaymentHandler{settlement: settlement}
}

// CreatePaymentIntent requests a payment authorization --> POST /create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	body := struct {
		TotalPrice float64 `json:"totalPrice"`
	}{}

	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid totalPrice"})
	}

	clientSecret, err := h.settlement.Authorize(c.Request().Context(), body.TotalPrice)
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, map[string]string{"clientSecret": clientSecret})
}

// Settle records a completed charge and retires its orders --> POST /payment
func (h *PaymentHandler) Settle(c echo.Context) error {
	req := service.SettleRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	result, err := h.settlement.Settle(c.Request().Context(), &req)
	if err != nil {
		return jsonError(c, err)
	}

	message := "Payment saved & orders deleted successfully"
	switch {
	case result.AlreadySettled:
		message = "Payment already recorded for this transaction"
	case result.Reconciliation:
		message = "Payment saved; order deletion queued for reconciliation"
	}

	return c.JSON(201, map[string]interface{}{
		"message":        message,
		"payment":        result.Payment,
		"deletedCount":   result.DeletedCount,
		"alreadySettled": result.AlreadySettled,
		"reconciliation": result.Reconciliation,
	})
}

// PaymentHistory lists a customer's payments --> GET /payments/:email
func (h *PaymentHandler) PaymentHistory(c echo.Context) error {
	payments, err := h.settlement.PaymentHistory(c.Request().Context(), c.Param("email"))
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(200, payments)
}
