package handler

import (
	"errors"
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// writeError はusecaseのエラー分類をステータスに変換する。
// Validation/Conflict/Expired/InvalidCredentials→400、Forbidden→403、
// NotFound→404、それ以外（Storage含む）→500。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrExpired),
		errors.Is(err, usecase.ErrInvalidCredentials):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		//500
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
