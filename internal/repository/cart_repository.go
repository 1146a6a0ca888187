package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	Create(ctx context.Context, cart model.Cart) error
	FindByID(ctx context.Context, id string) (model.Cart, error)
	Update(ctx context.Context, cart model.Cart) error
	Delete(ctx context.Context, id string) error
}
