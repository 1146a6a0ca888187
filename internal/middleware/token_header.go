package middleware

import (
	"github.com/labstack/echo/v4"
)

const (
	// トークンを運ぶリクエストヘッダ
	TokenHeader = "token"

	// contextキー
	CtxTokenIDKey = "token_id"
)

// TokenFromHeader はtokenヘッダをcontextへ写すだけのミドルウェア。
// ここでは拒否しない。有効性の判定はusecase側で行う
// （検証は所有者スコープの有無で分かれるため）。
func TokenFromHeader() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(CtxTokenIDKey, c.Request().Header.Get(TokenHeader))
			return next(c)
		}
	}
}

// TokenID はミドルウェアが保存したトークンIDを取り出す。
func TokenID(c echo.Context) string {
	v, _ := c.Get(CtxTokenIDKey).(string)
	return v
}
