package api

import (
	"github.com/labstack/echo/v4"

	"food-order-service/internal/auth"
)

type AuthHandler struct {
	tokens *auth.TokenService
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// IssueToken signs an identity token for the given email --> POST /jwt
func (h *AuthHandler) IssueToken(c echo.Context) error {
	body := struct {
		Email string `json:"email"`
	}{}

	if err := c.Bind(&body); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if body.Email == "" {
		return c.JSON(400, map[string]string{"error": "email is required"})
	}

	token, err := h.tokens.Issue(body.Email)
	if err != nil {
		return c.JSON(500, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(200, map[string]string{"token": token})
}
