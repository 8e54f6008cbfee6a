package auth

import (
	"context"
	"errors"
	"os"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/golang-jwt/jwt/v5"

	"food-order-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// UserLookup resolves an authenticated email to a stored user. The gate
// consults it for role checks; it never trusts role data from a request.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
}

// Gate guards routes. Token verification and the admin role check are two
// separate middleware stages so routes can require just a valid token.
type Gate struct {
	tokens *TokenService
	users  UserLookup
}

// NewGate creates a new instance of Gate.
func NewGate(tokens *TokenService, users UserLookup) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// RequireToken verifies the bearer token. Missing, malformed, forged and
// expired tokens all map to 401; verified claims land in the echo context.
func (g *Gate) RequireToken() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: g.tokens.Secret(),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(JwtCustomClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(401, map[string]string{"error": "Unauthorized Access"})
		},
	})
}

// RequireAdmin looks the verified subject up and rejects non-admins. It must
// run after RequireToken.
func (g *Gate) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok || claims.Email == "" {
				return c.JSON(401, map[string]string{"error": "Unauthorized Access"})
			}

			user, err := g.users.GetUserByEmail(c.Request().Context(), claims.Email)
			if err != nil {
				// An unknown subject is forbidden; a lookup outage must not be.
				if errors.Is(err, entity.ErrNotFound) {
					return c.JSON(403, map[string]string{"error": "Forbidden Access"})
				}
				logger.Error().Err(err).Msgf("Error looking up user %s for admin check", claims.Email)
				return c.JSON(500, map[string]string{"error": "Internal Server Error"})
			}

			if user.Role != entity.RoleAdmin {
				return c.JSON(403, map[string]string{"error": "Forbidden Access"})
			}

			return next(c)
		}
	}
}

// ClaimsFrom extracts the verified claims that RequireToken stored.
func ClaimsFrom(c echo.Context) (*JwtCustomClaims, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*JwtCustomClaims)
	return claims, ok
}
