package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// TokenRecordRepository はRecordStore上のTokenRepository実装。
type TokenRecordRepository struct {
	store repo.RecordStore
}

// DI
func NewTokenRecordRepository(store repo.RecordStore) *TokenRecordRepository {
	return &TokenRecordRepository{store: store}
}

func (r *TokenRecordRepository) Create(ctx context.Context, token model.Token) error {
	return r.store.Create(ctx, repo.CollectionTokens, token.ID, token)
}

func (r *TokenRecordRepository) FindByID(ctx context.Context, id string) (model.Token, error) {
	var token model.Token
	if err := r.store.Read(ctx, repo.CollectionTokens, id, &token); err != nil {
		return model.Token{}, err
	}
	return token, nil
}

func (r *TokenRecordRepository) Update(ctx context.Context, token model.Token) error {
	return r.store.Update(ctx, repo.CollectionTokens, token.ID, token)
}

func (r *TokenRecordRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, repo.CollectionTokens, id)
}

// DeleteExpired は全トークンを走査してnow時点で期限切れのものを消す。
// 走査中に他所で消されたものは数えない。
func (r *TokenRecordRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	keys, err := r.store.List(ctx, repo.CollectionTokens)
	if err != nil {
		return 0, err
	}

	var deleted int64
	for _, id := range keys {
		var token model.Token
		err := r.store.Read(ctx, repo.CollectionTokens, id, &token)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return deleted, err
		}

		if !token.ExpiredAt(now) {
			continue
		}

		err = r.store.Delete(ctx, repo.CollectionTokens, id)
		if errors.Is(err, repo.ErrNotFound) {
			continue
		}
		if err != nil {
			return deleted, err
		}
		deleted++
	}

	return deleted, nil
}
