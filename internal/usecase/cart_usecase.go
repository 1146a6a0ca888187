package usecase

import (
	"context"
	"errors"
	"fmt"

	"app/internal/domain/model"
	"app/internal/keylock"
	"app/internal/repository"
)

// 明細の数量の許容範囲
const (
	minItemQuantity = 1
	maxItemQuantity = 20
)

// TokenResolver は有効なトークンから所有者のemailを引く。
type TokenResolver interface {
	Resolve(ctx context.Context, id string) (string, bool)
}

// CartUsecase はカートと明細の状態遷移。
// 「activeは1ユーザー1つ」「menuIdはカート内一意」の検査と書き込みを
// ユーザー単位のキー付きミューテックスの中で行う。レコード単体の
// 直列化だけではcheck-then-actの競合を防げないため。
type CartUsecase struct {
	users  repository.UserRepository
	carts  repository.CartRepository
	menu   repository.MenuRepository
	tokens TokenResolver
	locks  *keylock.KeyedMutex
}

// DI
func NewCartUsecase(
	users repository.UserRepository,
	carts repository.CartRepository,
	menu repository.MenuRepository,
	tokens TokenResolver,
	locks *keylock.KeyedMutex,
) *CartUsecase {
	return &CartUsecase{
		users:  users,
		carts:  carts,
		menu:   menu,
		tokens: tokens,
		locks:  locks,
	}
}

// OpenCart は新しいactiveカートを作ってユーザーに紐付ける。
// カート作成とユーザー更新は非トランザクション（後者が失敗すると
// サマリのない孤立カートが残る。参照実装と同じ挙動）。
func (u *CartUsecase) OpenCart(ctx context.Context, tokenID string) (model.Cart, error) {
	email, ok := u.tokens.Resolve(ctx, tokenID)
	if !ok {
		return model.Cart{}, fmt.Errorf("%w: missing required token in header, or token is invalid", ErrForbidden)
	}

	u.locks.Lock(email)
	defer u.locks.Unlock(email)

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		// トークンは有効だがユーザーがもういない（削除はカスケードしない）
		return model.Cart{}, fmt.Errorf("%w: missing required token in header, or token is invalid", ErrForbidden)
	}
	if err != nil {
		return model.Cart{}, fmt.Errorf("%w: could not read the user", ErrStorage)
	}

	for _, ref := range user.Carts {
		if ref.Status == model.CartStatusActive {
			return model.Cart{}, fmt.Errorf("%w: the user already has an active cart", ErrConflict)
		}
	}

	id, err := newRecordID()
	if err != nil {
		return model.Cart{}, fmt.Errorf("%w: could not generate a cart id", ErrStorage)
	}

	cart := model.Cart{
		ID:        id,
		UserEmail: email,
		Status:    model.CartStatusActive,
		Items:     []model.CartItem{},
	}

	if err := u.carts.Create(ctx, cart); err != nil {
		return model.Cart{}, fmt.Errorf("%w: could not create the new cart", ErrStorage)
	}

	user.Carts = append(user.Carts, model.CartRef{ID: id, Status: model.CartStatusActive})

	if err := u.users.Update(ctx, user); err != nil {
		return model.Cart{}, fmt.Errorf("%w: could not attach the cart to the user", ErrStorage)
	}

	return cart, nil
}

// AddItem はactiveカートに明細を1件追加する。
// 検証はすべてI/Oの前（メニュー表は起動時読み込み済みの静的データ）。
func (u *CartUsecase) AddItem(ctx context.Context, tokenID string, menuID int, quantity int) (model.CartItem, error) {
	if _, ok := u.menu.FindByID(ctx, menuID); !ok {
		return model.CartItem{}, fmt.Errorf("%w: the menu id does not exist", ErrValidation)
	}
	if quantity < minItemQuantity || quantity > maxItemQuantity {
		return model.CartItem{}, fmt.Errorf("%w: quantity must be between %d and %d", ErrValidation, minItemQuantity, maxItemQuantity)
	}

	email, ok := u.tokens.Resolve(ctx, tokenID)
	if !ok {
		return model.CartItem{}, fmt.Errorf("%w: missing required token in header, or token is invalid", ErrForbidden)
	}

	u.locks.Lock(email)
	defer u.locks.Unlock(email)

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return model.CartItem{}, fmt.Errorf("%w: missing required token in header, or token is invalid", ErrForbidden)
	}
	if err != nil {
		return model.CartItem{}, fmt.Errorf("%w: could not read the user", ErrStorage)
	}

	var activeID string
	for _, ref := range user.Carts {
		if ref.Status == model.CartStatusActive {
			activeID = ref.ID
			break
		}
	}
	if activeID == "" {
		return model.CartItem{}, fmt.Errorf("%w: the user has no active shopping cart", ErrValidation)
	}

	cart, err := u.carts.FindByID(ctx, activeID)
	if err != nil {
		// サマリにあるのに読めないのは保存層の異常
		return model.CartItem{}, fmt.Errorf("%w: could not read the shopping cart", ErrStorage)
	}

	for _, item := range cart.Items {
		if item.MenuID == menuID {
			return model.CartItem{}, fmt.Errorf("%w: the item already exists in the cart", ErrConflict)
		}
	}

	item := model.CartItem{MenuID: menuID, Quantity: quantity}
	cart.Items = append(cart.Items, item)

	if err := u.carts.Update(ctx, cart); err != nil {
		return model.CartItem{}, fmt.Errorf("%w: could not update the shopping cart", ErrStorage)
	}

	return item, nil
}

// GetCart は所有者本人にだけカートを返す。
func (u *CartUsecase) GetCart(ctx context.Context, tokenID string, cartID string) (model.Cart, error) {
	email, ok := u.tokens.Resolve(ctx, tokenID)
	if !ok {
		return model.Cart{}, fmt.Errorf("%w: missing required token in header, or token is invalid", ErrForbidden)
	}

	cart, err := u.carts.FindByID(ctx, cartID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Cart{}, fmt.Errorf("%w: cart", ErrNotFound)
	}
	if err != nil {
		return model.Cart{}, fmt.Errorf("%w: could not read the shopping cart", ErrStorage)
	}

	if cart.UserEmail != email {
		return model.Cart{}, fmt.Errorf("%w: the cart belongs to another user", ErrForbidden)
	}

	return cart, nil
}
