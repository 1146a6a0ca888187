package storage

import (
	"context"
	"encoding/json"
	"errors"

	"app/internal/domain/model"
	"app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore は records テーブルに載せるRecordStore実装。
// ファイルストアと同じ成功・失敗セマンティクスをトランザクション内の
// check-and-setで実現する。
type PostgresStore struct {
	db *gorm.DB
}

// DI
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create はINSERT ON CONFLICT DO NOTHING。挿入できなければErrConflict。
func (s *PostgresStore) Create(ctx context.Context, collection, key string, value any) error {
	doc, err := json.Marshal(value)
	if err != nil {
		return err
	}

	rec := model.Record{
		Collection: collection,
		Key:        key,
		Doc:        datatypes.JSON(doc),
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec)

	if res.Error != nil {
		// ON CONFLICT句が拾わない一意制約違反もErrConflictに寄せる
		var pgErr *pgconn.PgError
		if errors.As(res.Error, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrConflict
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrConflict
	}
	return nil
}

func (s *PostgresStore) Read(ctx context.Context, collection, key string, out any) error {
	var rec model.Record

	err := s.db.WithContext(ctx).
		Where("collection = ? AND record_key = ?", collection, key).
		First(&rec).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(rec.Doc, out)
}

// Update は行ロックを取ってから全置換。不在ならErrNotFound。
func (s *PostgresStore) Update(ctx context.Context, collection, key string, value any) error {
	doc, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec model.Record

		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND record_key = ?", collection, key).
			First(&rec).Error

		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return repository.ErrNotFound
		}
		if findErr != nil {
			return findErr
		}

		res := tx.Model(&model.Record{}).
			Where("collection = ? AND record_key = ?", collection, key).
			Update("doc", datatypes.JSON(doc))

		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (s *PostgresStore) Delete(ctx context.Context, collection, key string) error {
	res := s.db.WithContext(ctx).
		Where("collection = ? AND record_key = ?", collection, key).
		Delete(&model.Record{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]string, error) {
	keys := []string{}

	err := s.db.WithContext(ctx).
		Model(&model.Record{}).
		Where("collection = ?", collection).
		Order("record_key asc").
		Pluck("record_key", &keys).Error

	if err != nil {
		return nil, err
	}
	return keys, nil
}
