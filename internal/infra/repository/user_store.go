package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// UserRecordRepository はRecordStore上のUserRepository実装。
type UserRecordRepository struct {
	store repo.RecordStore
}

// DI
func NewUserRecordRepository(store repo.RecordStore) *UserRecordRepository {
	return &UserRecordRepository{store: store}
}

// Create は同一emailが既にあればrepo.ErrConflictを返す。
// 一意性チェックはストアのCreate自体が原子的に行う。
func (r *UserRecordRepository) Create(ctx context.Context, user model.User) error {
	return r.store.Create(ctx, repo.CollectionUsers, user.Email, user)
}

func (r *UserRecordRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	if err := r.store.Read(ctx, repo.CollectionUsers, email, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (r *UserRecordRepository) Update(ctx context.Context, user model.User) error {
	return r.store.Update(ctx, repo.CollectionUsers, user.Email, user)
}

func (r *UserRecordRepository) Delete(ctx context.Context, email string) error {
	return r.store.Delete(ctx, repo.CollectionUsers, email)
}
