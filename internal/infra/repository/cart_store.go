package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartRecordRepository はRecordStore上のCartRepository実装。
type CartRecordRepository struct {
	store repo.RecordStore
}

// DI
func NewCartRecordRepository(store repo.RecordStore) *CartRecordRepository {
	return &CartRecordRepository{store: store}
}

func (r *CartRecordRepository) Create(ctx context.Context, cart model.Cart) error {
	return r.store.Create(ctx, repo.CollectionCarts, cart.ID, cart)
}

func (r *CartRecordRepository) FindByID(ctx context.Context, id string) (model.Cart, error) {
	var cart model.Cart
	if err := r.store.Read(ctx, repo.CollectionCarts, id, &cart); err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *CartRecordRepository) Update(ctx context.Context, cart model.Cart) error {
	return r.store.Update(ctx, repo.CollectionCarts, cart.ID, cart)
}

func (r *CartRecordRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, repo.CollectionCarts, id)
}
