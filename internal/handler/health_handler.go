package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// /ping のHTTP。固定遅延のあとに応答する
// （長時間の処理を受け付けられることの確認用）。
type HealthHandler struct {
	delay time.Duration
}

func NewHealthHandler(delay time.Duration) *HealthHandler {
	return &HealthHandler{delay: delay}
}

// /ping を登録
func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ping", h.ping)
}

func (h *HealthHandler) ping(c echo.Context) error {
	timer := time.NewTimer(h.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return c.JSON(http.StatusOK, SuccessResponse{Message: "pong"})
	case <-c.Request().Context().Done():
		return c.Request().Context().Err()
	}
}
