package model

import "time"

// TokenIDLength はトークンIDの固定長。
const TokenIDLength = 20

// Token は tokens コレクションの1レコード。キーはid。
// Expires はエポックミリ秒の絶対時刻。
type Token struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Expires int64  `json:"expires"`
}

// ExpiredAt はnow時点で期限切れかどうかを返す。
// 有効条件は expires > now（境界ちょうどは期限切れ扱い）。
func (t Token) ExpiredAt(now time.Time) bool {
	return t.Expires <= now.UnixMilli()
}
