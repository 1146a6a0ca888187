package usecase

import "errors"

// エラー分類。handlerがステータスに変換する。
var (
	//400 入力不足・範囲外
	ErrValidation = errors.New("validation error")
	//400 重複（email、activeカート、明細）
	ErrConflict = errors.New("conflict")
	//404 参照先レコードなし
	ErrNotFound = errors.New("not found")
	//403 トークン不正
	ErrForbidden = errors.New("forbidden")
	//400 extend専用。期限切れトークン
	ErrExpired = errors.New("expired")
	//400 ログイン失敗
	ErrInvalidCredentials = errors.New("invalid credentials")
	//500 永続化失敗
	ErrStorage = errors.New("storage error")
)
