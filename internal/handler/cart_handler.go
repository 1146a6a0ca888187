package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /carts のHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// POST /carts/items のリクエストボディ。
// 数量の範囲（1〜20）とmenuIdの実在はusecaseが見る。
type AddItemRequest struct {
	MenuID   int `json:"menuId" validate:"required"`
	Quantity int `json:"quantity" validate:"required"`
}

// /carts を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/carts")
	g.Use(middleware.TokenFromHeader())

	g.POST("", h.openCart)
	g.GET("/:id", h.getCart)
	g.POST("/items", h.addItem)
}

func (h *CartHandler) openCart(c echo.Context) error {
	out, err := h.uc.OpenCart(c.Request().Context(), middleware.TokenID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) getCart(c echo.Context) error {
	out, err := h.uc.GetCart(c.Request().Context(), middleware.TokenID(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required field(s)"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), middleware.TokenID(c), req.MenuID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
