package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"app/internal/keylock"
	"app/internal/repository"

	"github.com/google/uuid"
)

// FileStore は1レコード=1JSONファイルのRecordStore実装。
// <baseDir>/<collection>/<key>.json に保存する。
// 同一(collection, key)への操作はキー付きミューテックスで直列化する。
type FileStore struct {
	baseDir string
	locks   *keylock.KeyedMutex
}

func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}

	return &FileStore{
		baseDir: baseDir,
		locks:   keylock.New(),
	}, nil
}

func (s *FileStore) dir(collection string) string {
	return filepath.Join(s.baseDir, collection)
}

func (s *FileStore) path(collection, key string) string {
	return filepath.Join(s.dir(collection), key+".json")
}

func lockKey(collection, key string) string {
	return collection + "/" + key
}

// Create は O_EXCL で新規作成。既存ならErrConflict。
func (s *FileStore) Create(ctx context.Context, collection, key string, value any) error {
	s.locks.Lock(lockKey(collection, key))
	defer s.locks.Unlock(lockKey(collection, key))

	if err := os.MkdirAll(s.dir(collection), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path(collection, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return repository.ErrConflict
	}
	if err != nil {
		return err
	}

	if err := writeRecord(f, value); err != nil {
		// 中途半端なファイルは残さない
		_ = os.Remove(f.Name())
		return err
	}

	return nil
}

func (s *FileStore) Read(ctx context.Context, collection, key string, out any) error {
	s.locks.Lock(lockKey(collection, key))
	defer s.locks.Unlock(lockKey(collection, key))

	data, err := os.ReadFile(s.path(collection, key))
	if errors.Is(err, os.ErrNotExist) {
		return repository.ErrNotFound
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}

// Update は既存レコードの全置換。一時ファイルに書いてからrenameするので
// 新しい値全体が見えるか、古い値が残るかのどちらかになる。
func (s *FileStore) Update(ctx context.Context, collection, key string, value any) error {
	s.locks.Lock(lockKey(collection, key))
	defer s.locks.Unlock(lockKey(collection, key))

	target := s.path(collection, key)
	if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
		return repository.ErrNotFound
	} else if err != nil {
		return err
	}

	tmp := target + "." + uuid.NewString() + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if err := writeRecord(f, value); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, target)
}

func (s *FileStore) Delete(ctx context.Context, collection, key string) error {
	s.locks.Lock(lockKey(collection, key))
	defer s.locks.Unlock(lockKey(collection, key))

	err := os.Remove(s.path(collection, key))
	if errors.Is(err, os.ErrNotExist) {
		return repository.ErrNotFound
	}
	return err
}

// List はコレクション内の全キーを返す。コレクション未作成なら空。
func (s *FileStore) List(ctx context.Context, collection string) ([]string, error) {
	entries, err := os.ReadDir(s.dir(collection))
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}

	return keys, nil
}

// writeRecord はJSONを書き込み、fsyncしてからクローズする。
func writeRecord(f *os.File, value any) error {
	enc := json.NewEncoder(f)
	if err := enc.Encode(value); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
