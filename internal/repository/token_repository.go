package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type TokenRepository interface {
	Create(ctx context.Context, token model.Token) error
	FindByID(ctx context.Context, id string) (model.Token, error)
	Update(ctx context.Context, token model.Token) error
	Delete(ctx context.Context, id string) error

	// DeleteExpired はnow時点で期限切れのトークンを消して件数を返す。
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
