package usecase

import (
	"context"
	"time"

	"app/internal/domain/model"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// =====================
// Mock: TokenRepository
// =====================

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, token model.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) FindByID(ctx context.Context, id string) (model.Token, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(model.Token)
	return t, args.Error(1)
}

func (m *MockTokenRepository) Update(ctx context.Context, token model.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// =====================
// Mock: CartRepository
// =====================

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(ctx context.Context, cart model.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) FindByID(ctx context.Context, id string) (model.Cart, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) Update(ctx context.Context, cart model.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Mock: TokenVerifier / TokenResolver
// =====================

type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) VerifyForUser(ctx context.Context, id string, email string) bool {
	args := m.Called(ctx, id, email)
	return args.Bool(0)
}

type MockTokenResolver struct {
	mock.Mock
}

func (m *MockTokenResolver) Resolve(ctx context.Context, id string) (string, bool) {
	args := m.Called(ctx, id)
	return args.String(0), args.Bool(1)
}

// =====================
// 固定時刻のClock
// =====================

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
