package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /tokens のHTTP
type TokenHandler struct {
	uc *usecase.TokenUsecase
}

// DI
func NewTokenHandler(uc *usecase.TokenUsecase) *TokenHandler {
	return &TokenHandler{uc: uc}
}

// POST /tokens（ログイン）のリクエストボディ。
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// PUT /tokens（延長）のリクエストボディ。extend=true必須。
type RenewTokenRequest struct {
	ID     string `json:"id" validate:"required,len=20"`
	Extend bool   `json:"extend"`
}

// /tokens を登録
func (h *TokenHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/tokens")

	g.POST("", h.login)
	g.GET("", h.getToken)
	g.PUT("", h.renewToken)
	g.DELETE("", h.revokeToken)
}

func (h *TokenHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required field(s)"})
	}

	out, err := h.uc.Issue(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *TokenHandler) getToken(c echo.Context) error {
	id := c.QueryParam("id")

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *TokenHandler) renewToken(c echo.Context) error {
	var req RenewTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil || !req.Extend {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required field(s) or field(s) are invalid"})
	}

	if err := h.uc.Extend(c.Request().Context(), req.ID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *TokenHandler) revokeToken(c echo.Context) error {
	id := c.QueryParam("id")

	if err := h.uc.Revoke(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusOK)
}
