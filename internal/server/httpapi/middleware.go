package httpapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mlevkov/authgate/internal/server/tokens"
)

const ctxUserID = "user_id"

// Auth requires a valid access token in the Authorization header and
// stores the caller's user id in the request context.
func Auth(minter *tokens.Minter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "missing authorization header"})
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid authorization header"})
			}

			claims, err := minter.Parse(parts[1], tokens.TypeAccess)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid token"})
			}

			c.Set(ctxUserID, claims.UserID)
			return next(c)
		}
	}
}
