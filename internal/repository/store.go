package repository

import (
	"context"
	"errors"
)

var (
	// 対象レコードが存在しない
	ErrNotFound = errors.New("record not found")
	// 同一キーのレコードが既に存在する
	ErrConflict = errors.New("record already exists")
)

// コレクション名。1コレクション=1名前空間。
const (
	CollectionUsers  = "users"
	CollectionTokens = "tokens"
	CollectionCarts  = "carts"
)

// RecordStore は (collection, key) 単位のJSONドキュメントCRUD。
// Createは既存キーでErrConflict、Read/Update/Deleteは不在でErrNotFound。
// Updateは全置換（部分書き込みは外から見えない）。
// 同一キーへの操作は実装側で直列化される。別キーは並行してよい。
type RecordStore interface {
	Create(ctx context.Context, collection, key string, value any) error
	Read(ctx context.Context, collection, key string, out any) error
	Update(ctx context.Context, collection, key string, value any) error
	Delete(ctx context.Context, collection, key string) error
	List(ctx context.Context, collection string) ([]string, error)
}
