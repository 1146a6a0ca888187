package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /users のHTTP
type UserHandler struct {
	uc *usecase.UserUsecase
}

// DI
func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// POST /users のリクエストボディ。
type SignUpRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Address   string `json:"address" validate:"required"`
}

// PUT /users のリクエストボディ。email以外は任意（最低1つはusecaseが見る）。
type UpdateUserRequest struct {
	Email     string `json:"email" validate:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	Address   string `json:"address"`
}

// /users を登録
func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/users")
	g.Use(middleware.TokenFromHeader())

	g.POST("", h.signUp)
	g.GET("", h.getUser)
	g.PUT("", h.updateUser)
	g.DELETE("", h.deleteUser)
}

func (h *UserHandler) signUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required fields"})
	}

	err := h.uc.SignUp(c.Request().Context(), usecase.SignUpInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Address:   req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *UserHandler) getUser(c echo.Context) error {
	email := c.QueryParam("email")

	out, err := h.uc.Get(c.Request().Context(), email, middleware.TokenID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) updateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required field"})
	}

	err := h.uc.Update(c.Request().Context(), req.Email, middleware.TokenID(c), usecase.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
		Address:   req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusOK)
}

func (h *UserHandler) deleteUser(c echo.Context) error {
	email := c.QueryParam("email")

	if err := h.uc.Delete(c.Request().Context(), email, middleware.TokenID(c)); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusOK)
}
