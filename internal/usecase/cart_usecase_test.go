package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"app/internal/domain/model"
	infraRepo "app/internal/infra/repository"
	"app/internal/keylock"
	"app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testMenu() repository.MenuRepository {
	return infraRepo.NewStaticMenuRepository([]model.MenuItem{
		{ID: 1, Name: "Margherita", Price: 999},
		{ID: 2, Name: "Pepperoni", Price: 1199},
	})
}

func newCartUsecaseForTest(users *MockUserRepository, carts *MockCartRepository, resolver *MockTokenResolver) *CartUsecase {
	return NewCartUsecase(users, carts, testMenu(), resolver, keylock.New())
}

func TestOpenCart_Success(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	resolver := new(MockTokenResolver)
	uc := newCartUsecaseForTest(users, carts, resolver)

	resolver.On("Resolve", mock.Anything, testTokenID).Return("jo@x.com", true)
	users.On("FindByEmail", mock.Anything, "jo@x.com").Return(model.User{
		Email: "jo@x.com",
		Carts: []model.CartRef{},
	}, nil)
	carts.On("Create", mock.Anything, mock.MatchedBy(func(c model.Cart) bool {
		return len(c.ID) == 20 &&
			c.UserEmail == "jo@x.com" &&
			c.Status == model.CartStatusActive &&
			len(c.Items) == 0
	})).Return(nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return len(u.Carts) == 1 && u.Carts[0].Status == model.CartStatusActive
	})).Return(nil)

	cart, err := uc.OpenCart(context.Background(), testTokenID)

	require.NoError(t, err)
	assert.Len(t, cart.ID, 20)
	assert.Equal(t, model.CartStatusActive, cart.Status)
	users.AssertExpectations(t)
	carts.AssertExpectations(t)
}

func TestOpenCart_AlreadyHasActiveCart(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	resolver := new(MockTokenResolver)
	uc := newCartUsecaseForTest(users, carts, resolver)

	resolver.On("Resolve", mock.Anything, testTokenID).Return("jo@x.com", true)
	users.On("FindByEmail", mock.Anything, "jo@x.com").Return(model.User{
		Email: "jo@x.com",
		Carts: []model.CartRef{
			{ID: "oldcartoldcartoldcar", Status: model.CartStatusCheckedOut},
			{ID: "curcartcurcartcurcar", Status: model.CartStatusActive},
		},
	}, nil)

	_, err := uc.OpenCart(context.Background(), testTokenID)

	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "active cart")
	carts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOpenCart_InvalidToken(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	resolver := new(MockTokenResolver)
	uc := newCartUsecaseForTest(users, carts, resolver)

	resolver.On("Resolve", mock.Anything, "garbage-token").Return("", false)

	_, err := uc.OpenCart(context.Background(), "garbage-token")

	assert.ErrorIs(t, err, ErrForbidden)
	users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAddItem_UnknownMenuID(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	resolver := new(MockTokenResolver)
	uc := newCartUsecaseForTest(users, carts, resolver)

	_, err := uc.AddItem(context.Background(), testTokenID, 99, 1)

	assert.ErrorIs(t, err, ErrValidation)
	// 検証はトークン解決より前
	resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestAddItem_QuantityBounds(t *testing.T) {
	activeUser := model.User{
		Email: "jo@x.com",
		Carts: []model.CartRef{{ID: "cartcartcartcartcart", Status: model.CartStatusActive}},
	}

	tests := []struct {
		quantity int
		wantErr  bool
	}{
		{quantity: 0, wantErr: true},
		{quantity: 1, wantErr: false},
		{quantity: 20, wantErr: false},
		{quantity: 21, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("quantity=%d", tt.quantity), func(t *testing.T) {
			users := new(MockUserRepository)
			carts := new(MockCartRepository)
			resolver := new(MockTokenResolver)
			uc := newCartUsecaseForTest(users, carts, resolver)

			if tt.wantErr {
				_, err := uc.AddItem(context.Background(), testTokenID, 1, tt.quantity)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}

			resolver.On("Resolve", mock.Anything, testTokenID).Return("jo@x.com", true)
			users.On("FindByEmail", mock.Anything, "jo@x.com").Return(activeUser, nil)
			carts.On("FindByID", mock.Anything, "cartcartcartcartcart").Return(model.Cart{
				ID:        "cartcartcartcartcart",
				UserEmail: "jo@x.com",
				Status:    model.CartStatusActive,
				Items:     []model.CartItem{},
			}, nil)
			carts.On("Update", mock.Anything, mock.Anything).Return(nil)

			item, err := uc.AddItem(context.Background(), testTokenID, 1, tt.quantity)
			require.NoError(t, err)
			assert.Equal(t, tt.quantity, item.Quantity)
		})
	}
}

func TestAddItem_NoActiveCart(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	resolver := new(MockTokenResolver)
	uc := newCartUsecaseForTest(users, carts, resolver)

	resolver.On("Resolve", mock.Anything, testTokenID).Return("jo@x.com", true)
	users.On("FindByEmail", mock.Anything, "jo@x.com").Return(model.User{
		Email: "jo@x.com",
		Carts: []model.CartRef{{ID: "oldcartoldcartoldcar", Status: model.CartStatusCheckedOut}},
	}, nil)

	_, err := uc.AddItem(context.Background(), testTokenID, 1, 2)

	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "no active shopping cart")
}

func TestAddItem_UnreadableCartIsStorageError(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	resolver := new(MockTokenResolver)
	uc := newCartUsecaseForTest(users, carts, resolver)

	resolver.On("Resolve", mock.Anything, testTokenID).Return("jo@x.com", true)
	users.On("FindByEmail", mock.Anything, "jo@x.com").Return(model.User{
		Email: "jo@x.com",
		Carts: []model.CartRef{{ID: "cartcartcartcartcart", Status: model.CartStatusActive}},
	}, nil)
	carts.On("FindByID", mock.Anything, "cartcartcartcartcart").Return(model.Cart{}, errors.New("corrupt record"))

	_, err := uc.AddItem(context.Background(), testTokenID, 1, 2)

	assert.ErrorIs(t, err, ErrStorage)
}

func TestAddItem_DuplicateMenuID(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	resolver := new(MockTokenResolver)
	uc := newCartUsecaseForTest(users, carts, resolver)

	resolver.On("Resolve", mock.Anything, testTokenID).Return("jo@x.com", true)
	users.On("FindByEmail", mock.Anything, "jo@x.com").Return(model.User{
		Email: "jo@x.com",
		Carts: []model.CartRef{{ID: "cartcartcartcartcart", Status: model.CartStatusActive}},
	}, nil)
	carts.On("FindByID", mock.Anything, "cartcartcartcartcart").Return(model.Cart{
		ID:        "cartcartcartcartcart",
		UserEmail: "jo@x.com",
		Status:    model.CartStatusActive,
		Items:     []model.CartItem{{MenuID: 1, Quantity: 2}},
	}, nil)

	_, err := uc.AddItem(context.Background(), testTokenID, 1, 3)

	assert.ErrorIs(t, err, ErrConflict)
	// 明細は書き換えない
	carts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetCart_Ownership(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	resolver := new(MockTokenResolver)
	uc := newCartUsecaseForTest(users, carts, resolver)

	resolver.On("Resolve", mock.Anything, testTokenID).Return("jo@x.com", true)
	carts.On("FindByID", mock.Anything, "cartcartcartcartcart").Return(model.Cart{
		ID:        "cartcartcartcartcart",
		UserEmail: "other@x.com",
		Status:    model.CartStatusActive,
	}, nil)

	_, err := uc.GetCart(context.Background(), testTokenID, "cartcartcartcartcart")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGetCart_NotFound(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	resolver := new(MockTokenResolver)
	uc := newCartUsecaseForTest(users, carts, resolver)

	resolver.On("Resolve", mock.Anything, testTokenID).Return("jo@x.com", true)
	carts.On("FindByID", mock.Anything, "missingmissingmissin").Return(model.Cart{}, repository.ErrNotFound)

	_, err := uc.GetCart(context.Background(), testTokenID, "missingmissingmissin")
	assert.ErrorIs(t, err, ErrNotFound)
}

// 同時に同じユーザーがOpenCartしても、activeカートは1つしか出来ないこと。
// ユーザー単位のロックの中でチェックと作成が行われるため、
// 片方は必ずもう片方の結果を見てConflictになる。
func TestOpenCart_ConcurrentSameUser(t *testing.T) {
	resolver := new(MockTokenResolver)
	resolver.On("Resolve", mock.Anything, testTokenID).Return("jo@x.com", true)

	// ロックの中で一貫して見えるインメモリのuser/cart状態
	state := &memoryState{
		user:  model.User{Email: "jo@x.com", Carts: []model.CartRef{}},
		carts: map[string]model.Cart{},
	}
	uc := NewCartUsecase(&memoryUsers{state}, &memoryCarts{state}, testMenu(), resolver, keylock.New())

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.OpenCart(context.Background(), testTokenID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, len(state.user.Carts))
}

// memoryState は並行テスト用の素朴なインメモリ状態。
// memoryUsers / memoryCarts がそれぞれのRepositoryとして被せる。
type memoryState struct {
	mu    sync.Mutex
	user  model.User
	carts map[string]model.Cart
}

type memoryUsers struct {
	s *memoryState
}

func (r *memoryUsers) Create(ctx context.Context, user model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.user = user
	return nil
}

func (r *memoryUsers) FindByEmail(ctx context.Context, email string) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u := r.s.user
	u.Carts = append([]model.CartRef(nil), r.s.user.Carts...)
	return u, nil
}

func (r *memoryUsers) Update(ctx context.Context, user model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.user = user
	return nil
}

func (r *memoryUsers) Delete(ctx context.Context, email string) error {
	return repository.ErrNotFound
}

type memoryCarts struct {
	s *memoryState
}

func (r *memoryCarts) Create(ctx context.Context, cart model.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.carts[cart.ID]; ok {
		return repository.ErrConflict
	}
	r.s.carts[cart.ID] = cart
	return nil
}

func (r *memoryCarts) FindByID(ctx context.Context, id string) (model.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cart, ok := r.s.carts[id]
	if !ok {
		return model.Cart{}, repository.ErrNotFound
	}
	return cart, nil
}

func (r *memoryCarts) Update(ctx context.Context, cart model.Cart) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.carts[cart.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.carts[cart.ID] = cart
	return nil
}

func (r *memoryCarts) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.carts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.carts, id)
	return nil
}
