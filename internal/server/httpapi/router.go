package httpapi

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/mlevkov/authgate/internal/server/auth"
	"github.com/mlevkov/authgate/internal/server/tokens"
)

// NewRouter builds the Echo instance with all routes registered. The
// trailing slashes on the paths are part of the contract.
func NewRouter(svc *auth.Service, minter *tokens.Minter) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	h := NewHandler(svc)
	requireAuth := Auth(minter)

	e.POST("/signup/", h.Signup)
	e.POST("/login/", h.Login)
	e.POST("/logout/", h.Logout, requireAuth)
	e.GET("/profile/", h.Profile, requireAuth)

	return e
}
