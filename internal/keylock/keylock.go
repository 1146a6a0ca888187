// Package keylock はキー単位の排他制御を提供する。
// ファイルストアの同一レコード直列化と、カートの
// 「activeは1つ」チェックのユーザー単位クリティカルセクションで使う。
package keylock

import "sync"

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutex は文字列キーごとのミューテックス。
// 参照カウントで未使用エントリを回収するのでキー数は膨らまない。
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func New() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*lockEntry)}
}

func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &lockEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock はLockしていないキーに対して呼んではいけない。
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		k.mu.Unlock()
		panic("keylock: unlock of unlocked key " + key)
	}
	e.refs--
	if e.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	e.mu.Unlock()
}
