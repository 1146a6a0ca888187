package server

import (
	"app/internal/handler"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New はecho本体を組み立てる。起動はしない（テストでも使うため）。
func New(
	userH *handler.UserHandler,
	tokenH *handler.TokenHandler,
	menuH *handler.MenuHandler,
	cartH *handler.CartHandler,
	healthH *handler.HealthHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = validator.New()

	RegisterRoutes(e, userH, tokenH, menuH, cartH, healthH)

	return e
}

// Start はサーバーを起動する。
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
