package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /menu のHTTP
type MenuHandler struct {
	uc *usecase.MenuUsecase
}

// DI
func NewMenuHandler(uc *usecase.MenuUsecase) *MenuHandler {
	return &MenuHandler{uc: uc}
}

// /menu を登録
func (h *MenuHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/menu")
	g.Use(middleware.TokenFromHeader())

	g.GET("", h.getMenu)
}

func (h *MenuHandler) getMenu(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), middleware.TokenID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
