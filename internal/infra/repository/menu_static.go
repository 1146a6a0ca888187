package repository

import (
	"context"

	"app/internal/domain/model"
)

// StaticMenuRepository は起動時に渡されたメニュー表をそのまま返す。
// 書き込み操作はない。
type StaticMenuRepository struct {
	items []model.MenuItem
	byID  map[int]model.MenuItem
}

func NewStaticMenuRepository(items []model.MenuItem) *StaticMenuRepository {
	byID := make(map[int]model.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	return &StaticMenuRepository{items: items, byID: byID}
}

func (r *StaticMenuRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	out := make([]model.MenuItem, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *StaticMenuRepository) FindByID(ctx context.Context, id int) (model.MenuItem, bool) {
	item, ok := r.byID[id]
	return item, ok
}
