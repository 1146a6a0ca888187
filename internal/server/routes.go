package server

import (
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes は全リソースのルートを登録する。
// メソッドはここで列挙されたものだけが通り、それ以外はechoが405を返す。
func RegisterRoutes(
	e *echo.Echo,
	userH *handler.UserHandler,
	tokenH *handler.TokenHandler,
	menuH *handler.MenuHandler,
	cartH *handler.CartHandler,
	healthH *handler.HealthHandler,
) {
	userH.RegisterRoutes(e)
	tokenH.RegisterRoutes(e)
	menuH.RegisterRoutes(e)
	cartH.RegisterRoutes(e)
	healthH.RegisterRoutes(e)
}
