package usecase

import (
	"context"
	"fmt"

	"app/internal/domain/model"
	"app/internal/repository"
)

// TokenValidator は所有者を問わないトークン検証。
type TokenValidator interface {
	ValidateAny(ctx context.Context, id string) bool
}

// MenuUsecase はメニュー表の公開。トークンが有効なら誰でも読める。
type MenuUsecase struct {
	menu   repository.MenuRepository
	tokens TokenValidator
}

// DI
func NewMenuUsecase(menu repository.MenuRepository, tokens TokenValidator) *MenuUsecase {
	return &MenuUsecase{menu: menu, tokens: tokens}
}

func (u *MenuUsecase) List(ctx context.Context, tokenID string) ([]model.MenuItem, error) {
	if !u.tokens.ValidateAny(ctx, tokenID) {
		return nil, fmt.Errorf("%w: missing required token in header, or token is invalid", ErrForbidden)
	}

	items, err := u.menu.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read the menu", ErrStorage)
	}
	return items, nil
}
