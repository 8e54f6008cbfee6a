package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"food-order-service/internal/entity"
)

// jsonError maps the service error taxonomy to a status code and a JSON body.
// Backend failures surface as a generic 500; the wrapped detail stays in the
// logs only.
func jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, entity.ErrInvalidRequest):
		return c.JSON(400, map[string]string{"error": err.Error()})
	case errors.Is(err, entity.ErrUnauthenticated):
		return c.JSON(401, map[string]string{"error": "Unauthorized Access"})
	case errors.Is(err, entity.ErrForbidden):
		return c.JSON(403, map[string]string{"error": "Forbidden Access"})
	case errors.Is(err, entity.ErrNotFound):
		return c.JSON(404, map[string]string{"error": err.Error()})
	case errors.Is(err, entity.ErrConflict):
		return c.JSON(409, map[string]string{"error": err.Error()})
	default:
		return c.JSON(500, map[string]string{"error": "Internal Server Error"})
	}
}
