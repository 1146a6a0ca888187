package repository

import (
	"context"

	"app/internal/domain/model"
)

// MenuRepository は読み取り専用のメニュー表。
type MenuRepository interface {
	List(ctx context.Context) ([]model.MenuItem, error)
	FindByID(ctx context.Context, id int) (model.MenuItem, bool)
}
